// Package domain holds the auth service's core types: identities, auth
// channels, token records and the request/response shapes of the token
// endpoints.
package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zeepkist/gtr-auth/pkg/jwtx"
)

// AuthType partitions token state between the two client channels. A user can
// hold one active token pair per type, expiring independently.
type AuthType int

const (
	AuthTypeGame     AuthType = 0
	AuthTypeExternal AuthType = 1
)

// ClaimValue is the stringified form used in the "Type" token claim and in
// the persisted record.
func (t AuthType) ClaimValue() string { return strconv.Itoa(int(t)) }

func (t AuthType) String() string {
	switch t {
	case AuthTypeGame:
		return "game"
	case AuthTypeExternal:
		return "external"
	default:
		return fmt.Sprintf("auth_type(%d)", int(t))
	}
}

// ErrMalformedSubject reports a compound subject handle that cannot be parsed
// back into an identity.
var ErrMalformedSubject = errors.New("domain: malformed subject handle")

// UserIdentity is the resolved identity of a user. ID is the internal user id
// and is never renumbered; ExternalID is the immutable SteamID64 assigned at
// first login.
type UserIdentity struct {
	ID         int64
	ExternalID string
}

// Subject serializes the identity into the compound "<id>_<externalId>"
// handle used in token claims and refresh requests. The string form exists
// only at that boundary; business logic passes UserIdentity.
func (u UserIdentity) Subject() string {
	return strconv.FormatInt(u.ID, 10) + "_" + u.ExternalID
}

// ParseSubject parses a compound subject handle back into an identity. It
// fails with ErrMalformedSubject when the handle has fewer than two parts or
// the numeric half does not parse. An empty external half is accepted; the
// external id is opaque here and validated where identities are resolved.
func ParseSubject(handle string) (UserIdentity, error) {
	idPart, externalID, found := strings.Cut(handle, "_")
	if !found {
		return UserIdentity{}, ErrMalformedSubject
	}

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return UserIdentity{}, ErrMalformedSubject
	}

	return UserIdentity{ID: id, ExternalID: externalID}, nil
}

// UserPrivileges accumulates the claims and roles a caller grants to a token
// before signing. Order is preserved.
type UserPrivileges struct {
	Claims []jwtx.Claim
	Roles  []string
}

func (p *UserPrivileges) AddClaim(key, value string) {
	p.Claims = append(p.Claims, jwtx.Claim{Key: key, Value: value})
}

func (p *UserPrivileges) AddRole(role string) {
	p.Roles = append(p.Roles, role)
}
