package domain

import (
	"fmt"
	"strconv"
	"time"
)

// TokenRecord is the persisted rotation state for one (user, auth type) pair.
// Exactly one record exists per key; logins and refreshes overwrite it in
// place. Expiries are stored as strings holding decimal unix-second integers,
// not native timestamps; external readers of the table depend on that
// encoding.
type TokenRecord struct {
	UserID             int64
	AuthType           AuthType
	AccessToken        string
	AccessTokenExpiry  string
	RefreshToken       string
	RefreshTokenExpiry string
}

// FormatUnix encodes a timestamp into the persisted decimal unix-second form.
func FormatUnix(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

// ParseUnix decodes a persisted decimal unix-second string.
func ParseUnix(s string) (time.Time, error) {
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("domain: parse unix seconds %q: %w", s, err)
	}
	return time.Unix(secs, 0).UTC(), nil
}

// TokenResponse is returned to the caller after a successful login or
// refresh. It mirrors the persisted TokenRecord but is transient.
type TokenResponse struct {
	UserID        int64     `json:"userId"`
	ExternalID    string    `json:"externalId"`
	AccessToken   string    `json:"accessToken"`
	AccessExpiry  time.Time `json:"accessExpiry"`
	RefreshToken  string    `json:"refreshToken"`
	RefreshExpiry time.Time `json:"refreshExpiry"`
}

// RefreshTokenRequest is the input to the refresh transition. UserID carries
// the compound "<id>_<externalId>" subject handle.
type RefreshTokenRequest struct {
	UserID       string `json:"userId"`
	RefreshToken string `json:"refreshToken"`
}
