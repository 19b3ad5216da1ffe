package postgres

import (
	"context"

	"github.com/zeepkist/gtr-auth/internal/auth/domain"
)

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) GetUserBySteamID(ctx context.Context, steamID string) (domain.User, error) {
	const query = `
		SELECT id, steam_id, steam_name, created_at, updated_at
		FROM users
		WHERE steam_id = $1`

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, steamID).Scan(
		&u.ID, &u.SteamID, &u.SteamName, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	const query = `
		INSERT INTO users (steam_id, steam_name)
		VALUES ($1, $2)
		RETURNING id, steam_id, steam_name, created_at, updated_at`

	var created domain.User
	err := r.db.QueryRowContext(ctx, query, u.SteamID, u.SteamName).Scan(
		&created.ID, &created.SteamID, &created.SteamName, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	return created, nil
}

func (r *usersRepo) UpdateSteamName(ctx context.Context, userID int64, steamName string) error {
	const query = `
		UPDATE users
		SET steam_name = $1, updated_at = NOW()
		WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, steamName, userID)
	return err
}
