package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zeepkist/gtr-auth/internal/auth/domain"
	"github.com/zeepkist/gtr-auth/internal/auth/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestUsersGetOrCreateFlow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Users().GetUserBySteamID(ctx, "76561198000000000")
	require.ErrorIs(t, err, store.ErrNotFound)

	created, err := s.Users().CreateUser(ctx, domain.User{
		SteamID:   "76561198000000000",
		SteamName: "driver",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "76561198000000000", created.SteamID)

	found, err := s.Users().GetUserBySteamID(ctx, "76561198000000000")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
	require.Equal(t, "driver", found.SteamName)

	require.NoError(t, s.Users().UpdateSteamName(ctx, created.ID, "renamed"))
	found, err = s.Users().GetUserBySteamID(ctx, "76561198000000000")
	require.NoError(t, err)
	require.Equal(t, "renamed", found.SteamName)
}

func TestTokenRecordsUpsertKeepsOneRowPerKey(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	user, err := s.Users().CreateUser(ctx, domain.User{SteamID: "76561198000000001"})
	require.NoError(t, err)

	rec := domain.TokenRecord{
		UserID:             user.ID,
		AuthType:           domain.AuthTypeGame,
		AccessToken:        "access-1",
		AccessTokenExpiry:  domain.FormatUnix(time.Now().Add(5 * time.Minute)),
		RefreshToken:       "refresh-1",
		RefreshTokenExpiry: domain.FormatUnix(time.Now().Add(8 * time.Hour)),
	}
	require.NoError(t, s.TokenRecords().Upsert(ctx, rec))

	rec.AccessToken = "access-2"
	rec.RefreshToken = "refresh-2"
	require.NoError(t, s.TokenRecords().Upsert(ctx, rec))

	found, err := s.TokenRecords().Find(ctx, user.ID, domain.AuthTypeGame)
	require.NoError(t, err)
	require.Equal(t, "access-2", found.AccessToken)
	require.Equal(t, "refresh-2", found.RefreshToken)

	var count int
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM token_records WHERE user_id = ? AND auth_type = ?`,
		user.ID, int(domain.AuthTypeGame),
	).Scan(&count))
	require.Equal(t, 1, count)
}

func TestTokenRecordsPartitionedByAuthType(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	user, err := s.Users().CreateUser(ctx, domain.User{SteamID: "76561198000000002"})
	require.NoError(t, err)

	game := domain.TokenRecord{
		UserID:             user.ID,
		AuthType:           domain.AuthTypeGame,
		AccessToken:        "game-access",
		AccessTokenExpiry:  domain.FormatUnix(time.Now().Add(5 * time.Minute)),
		RefreshToken:       "game-refresh",
		RefreshTokenExpiry: domain.FormatUnix(time.Now().Add(8 * time.Hour)),
	}
	external := game
	external.AuthType = domain.AuthTypeExternal
	external.AccessToken = "external-access"
	external.RefreshToken = "external-refresh"

	require.NoError(t, s.TokenRecords().Upsert(ctx, game))
	require.NoError(t, s.TokenRecords().Upsert(ctx, external))

	gotGame, err := s.TokenRecords().Find(ctx, user.ID, domain.AuthTypeGame)
	require.NoError(t, err)
	require.Equal(t, "game-refresh", gotGame.RefreshToken)

	gotExternal, err := s.TokenRecords().Find(ctx, user.ID, domain.AuthTypeExternal)
	require.NoError(t, err)
	require.Equal(t, "external-refresh", gotExternal.RefreshToken)
}

func TestTokenRecordsFindAbsent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.TokenRecords().Find(ctx, 999, domain.AuthTypeGame)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sentinel := context.Canceled
	err := s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Users().CreateUser(ctx, domain.User{SteamID: "76561198000000003"})
		require.NoError(t, err)
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = s.Users().GetUserBySteamID(ctx, "76561198000000003")
	require.ErrorIs(t, err, store.ErrNotFound)
}
