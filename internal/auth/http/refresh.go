package http

import (
	"context"

	"github.com/zeepkist/gtr-auth/internal/auth/domain"
	"github.com/zeepkist/gtr-auth/internal/auth/service"
)

// refreshBySteamID resolves the account behind a SteamID64 and runs the
// refresh rotation with its compound handle. Unknown accounts surface as
// store.ErrNotFound.
func refreshBySteamID(
	ctx context.Context,
	svc *service.TokenService,
	steamID, refreshToken string,
) (*domain.TokenResponse, error) {
	user, err := svc.Store.Users().GetUserBySteamID(ctx, steamID)
	if err != nil {
		return nil, err
	}

	return svc.RefreshToken(ctx, domain.RefreshTokenRequest{
		UserID:       user.Identity().Subject(),
		RefreshToken: refreshToken,
	})
}
