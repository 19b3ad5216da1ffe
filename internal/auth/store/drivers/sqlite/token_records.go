package sqlite

import (
	"context"

	"github.com/zeepkist/gtr-auth/internal/auth/domain"
)

type tokenRecordsRepo struct {
	db dbtx
}

func (r *tokenRecordsRepo) Find(
	ctx context.Context,
	userID int64,
	authType domain.AuthType,
) (domain.TokenRecord, error) {
	const query = `
		SELECT user_id, auth_type, access_token, access_token_expiry,
		       refresh_token, refresh_token_expiry
		FROM token_records
		WHERE user_id = ? AND auth_type = ?`

	var rec domain.TokenRecord
	err := r.db.QueryRowContext(ctx, query, userID, int(authType)).Scan(
		&rec.UserID, &rec.AuthType,
		&rec.AccessToken, &rec.AccessTokenExpiry,
		&rec.RefreshToken, &rec.RefreshTokenExpiry,
	)
	if err != nil {
		return domain.TokenRecord{}, mapNotFound(err)
	}
	return rec, nil
}

// Upsert is a single atomic statement: the composite primary key guarantees
// one row per (user_id, auth_type) even under racing writers, and the last
// committed write wins.
func (r *tokenRecordsRepo) Upsert(ctx context.Context, rec domain.TokenRecord) error {
	const query = `
		INSERT INTO token_records (
			user_id, auth_type, access_token, access_token_expiry,
			refresh_token, refresh_token_expiry
		)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, auth_type) DO UPDATE SET
			access_token = excluded.access_token,
			access_token_expiry = excluded.access_token_expiry,
			refresh_token = excluded.refresh_token,
			refresh_token_expiry = excluded.refresh_token_expiry,
			updated_at = CURRENT_TIMESTAMP`

	_, err := r.db.ExecContext(ctx, query,
		rec.UserID, int(rec.AuthType),
		rec.AccessToken, rec.AccessTokenExpiry,
		rec.RefreshToken, rec.RefreshTokenExpiry,
	)
	return err
}
