// Package cryptox provides the random token primitives for the auth service.
package cryptox

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewOpaqueToken returns a fresh random opaque identifier with 128 bits of
// entropy in lowercase hex without dashes (32 characters). It carries no
// claims and is not decodable; its only property is unguessability.
//
// The canonical form matters: refresh tokens are persisted raw and compared
// by exact string match, and external readers consume the same columns.
func NewOpaqueToken() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
