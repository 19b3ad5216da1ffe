package cryptox_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeepkist/gtr-auth/pkg/cryptox"
)

func TestNewOpaqueTokenForm(t *testing.T) {
	t.Parallel()

	token := cryptox.NewOpaqueToken()
	require.Len(t, token, 32)
	require.NotContains(t, token, "-")

	// Must be valid lowercase hex.
	raw, err := hex.DecodeString(token)
	require.NoError(t, err)
	require.Len(t, raw, 16)
}

func TestNewOpaqueTokenUniqueness(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		token := cryptox.NewOpaqueToken()
		_, dup := seen[token]
		require.False(t, dup, "duplicate opaque token generated")
		seen[token] = struct{}{}
	}
}
