package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zeepkist/gtr-auth/internal/auth/domain"
)

func TestSubjectRoundTrip(t *testing.T) {
	t.Parallel()

	identity := domain.UserIdentity{ID: 42, ExternalID: "76561198000000000"}
	require.Equal(t, "42_76561198000000000", identity.Subject())

	parsed, err := domain.ParseSubject(identity.Subject())
	require.NoError(t, err)
	require.Equal(t, identity, parsed)
}

func TestParseSubjectMalformed(t *testing.T) {
	t.Parallel()

	for _, handle := range []string{
		"",
		"42",
		"_abc",
		"notanumber_abc",
	} {
		_, err := domain.ParseSubject(handle)
		require.ErrorIs(t, err, domain.ErrMalformedSubject, "handle %q", handle)
	}
}

func TestParseSubjectAcceptsEmptyExternalID(t *testing.T) {
	t.Parallel()

	// Two parts with an empty external half still parse; only a missing
	// separator or a non-numeric id half is malformed.
	parsed, err := domain.ParseSubject("42_")
	require.NoError(t, err)
	require.Equal(t, domain.UserIdentity{ID: 42, ExternalID: ""}, parsed)
}

func TestParseSubjectKeepsUnderscoresInExternalID(t *testing.T) {
	t.Parallel()

	// Only the first underscore splits; the rest belongs to the external id.
	parsed, err := domain.ParseSubject("7_abc_def")
	require.NoError(t, err)
	require.Equal(t, int64(7), parsed.ID)
	require.Equal(t, "abc_def", parsed.ExternalID)
}

func TestAuthTypeClaimValue(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0", domain.AuthTypeGame.ClaimValue())
	require.Equal(t, "1", domain.AuthTypeExternal.ClaimValue())
	require.Equal(t, "game", domain.AuthTypeGame.String())
	require.Equal(t, "external", domain.AuthTypeExternal.String())
}

func TestUnixEncodingRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Now().Truncate(time.Second)
	encoded := domain.FormatUnix(now)

	decoded, err := domain.ParseUnix(encoded)
	require.NoError(t, err)
	require.True(t, decoded.Equal(now))

	_, err = domain.ParseUnix("not-a-number")
	require.Error(t, err)
}
