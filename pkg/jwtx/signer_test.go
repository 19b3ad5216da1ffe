package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/zeepkist/gtr-auth/pkg/jwtx"
)

func parseClaims(t *testing.T, token, key string) jwt.MapClaims {
	t.Helper()

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (any, error) {
		return []byte(key), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestNewSignerRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewSigner("")
	require.ErrorIs(t, err, jwtx.ErrMissingSigningKey)

	signer, err := jwtx.NewSigner("test-key-please-ignore")
	require.NoError(t, err)
	require.NotNil(t, signer)
}

func TestSignEmbedsClaimsAndExpiry(t *testing.T) {
	t.Parallel()

	const key = "test-key-please-ignore"
	signer, err := jwtx.NewSigner(key)
	require.NoError(t, err)

	expiresAt := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	token, err := signer.Sign([]jwtx.Claim{
		{Key: "Type", Value: "0"},
		{Key: "UserId", Value: "42"},
		{Key: "ExternalId", Value: "76561198000000000"},
	}, []string{"game"}, expiresAt)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims := parseClaims(t, token, key)
	require.Equal(t, "0", claims["Type"])
	require.Equal(t, "42", claims["UserId"])
	require.Equal(t, "76561198000000000", claims["ExternalId"])
	require.Equal(t, "game", claims[jwtx.RoleClaim])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	require.Equal(t, expiresAt.Unix(), exp.Unix())

	iat, err := claims.GetIssuedAt()
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), iat.Time, 5*time.Second)

	// No issuer or audience are ever set.
	require.NotContains(t, claims, "iss")
	require.NotContains(t, claims, "aud")
}

func TestSignFoldsMultipleRolesIntoArray(t *testing.T) {
	t.Parallel()

	const key = "test-key-please-ignore"
	signer, err := jwtx.NewSigner(key)
	require.NoError(t, err)

	token, err := signer.Sign(nil, []string{"game", "admin"}, time.Now().Add(time.Minute))
	require.NoError(t, err)

	claims := parseClaims(t, token, key)
	require.Equal(t, []any{"game", "admin"}, claims[jwtx.RoleClaim])
}

func TestSignOmitsRoleClaimWithoutRoles(t *testing.T) {
	t.Parallel()

	const key = "test-key-please-ignore"
	signer, err := jwtx.NewSigner(key)
	require.NoError(t, err)

	token, err := signer.Sign([]jwtx.Claim{{Key: "UserId", Value: "1"}}, nil, time.Now().Add(time.Minute))
	require.NoError(t, err)

	claims := parseClaims(t, token, key)
	require.NotContains(t, claims, jwtx.RoleClaim)
}
