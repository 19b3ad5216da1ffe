package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/zeepkist/gtr-auth/internal/auth/domain"
	"github.com/zeepkist/gtr-auth/internal/auth/store"
	"github.com/zeepkist/gtr-auth/pkg/slogx"
)

// UserService resolves Steam identities to local user accounts.
type UserService struct {
	Store store.Store
}

// GetOrCreate looks a user up by SteamID64, registering them on first login.
// The stored display name follows the Steam persona name when it changes.
// Runs in a transaction so concurrent first logins cannot register twice.
func (s *UserService) GetOrCreate(ctx context.Context, steamID, steamName string) (domain.User, error) {
	var user domain.User

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		found, err := tx.Users().GetUserBySteamID(ctx, steamID)
		if err == nil {
			user = found
			if steamName != "" && steamName != found.SteamName {
				if err := tx.Users().UpdateSteamName(ctx, found.ID, steamName); err != nil {
					return err
				}
				user.SteamName = steamName
			}
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		created, err := tx.Users().CreateUser(ctx, domain.User{
			SteamID:   steamID,
			SteamName: steamName,
		})
		if err != nil {
			return err
		}
		user = created

		slogx.FromContext(ctx).Info("registered new user",
			slog.Int64("user_id", created.ID),
			slog.String("steam_id", steamID),
		)
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}
