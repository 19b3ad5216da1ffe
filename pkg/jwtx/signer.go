// Package jwtx provides the JWT signing primitives for the auth service.
//
// Access tokens are signed with a single symmetric key (HS256). There is no
// issuer, audience or key rotation surface: clients verify against the same
// shared secret they were provisioned with.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token lifetimes for both auth channels in this deployment.
const (
	// DefaultAccessTokenTTL is the default lifetime for signed access tokens.
	DefaultAccessTokenTTL = 5 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for opaque refresh tokens.
	DefaultRefreshTokenTTL = 8 * time.Hour
)

// RoleClaim is the claim name roles are folded under, one logical claim per
// role rather than a single delimited string.
const RoleClaim = "role"

// ErrMissingSigningKey reports a missing or empty signing key. This is a
// configuration error: it must be surfaced at construction time, never
// swallowed per request.
var ErrMissingSigningKey = errors.New("jwtx: signing key must not be empty")

// Claim is a single ordered (key, value) pair destined for the token payload.
type Claim struct {
	Key   string
	Value string
}

// Signer mints signed, time-bounded access tokens from a claim set. It is
// stateless and safe for concurrent use.
type Signer struct {
	key []byte
}

// NewSigner validates the signing key and returns a Signer. An empty key is
// unrecoverable and callers are expected to abort startup on it.
func NewSigner(signingKey string) (*Signer, error) {
	if signingKey == "" {
		return nil, ErrMissingSigningKey
	}
	return &Signer{key: []byte(signingKey)}, nil
}

// Sign produces an HS256-signed token carrying the given claims, the roles
// folded under the "role" claim, an issued-at of now and the given expiry.
// Deterministic for identical inputs except for the embedded issued-at.
func (s *Signer) Sign(claims []Claim, roles []string, expiresAt time.Time) (string, error) {
	payload := jwt.MapClaims{}
	for _, c := range claims {
		payload[c.Key] = c.Value
	}

	// A single role serializes as a plain string, several as an array. This
	// mirrors how .NET-era consumers of these tokens expect the claim.
	switch len(roles) {
	case 0:
	case 1:
		payload[RoleClaim] = roles[0]
	default:
		payload[RoleClaim] = roles
	}

	payload["iat"] = jwt.NewNumericDate(time.Now().UTC())
	payload["exp"] = jwt.NewNumericDate(expiresAt)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	return token.SignedString(s.key)
}
