package domain

import "time"

// User is a registered player, keyed by the SteamID64 Steam asserted at first
// login. SteamID is immutable once assigned; SteamName is a display name and
// may lag behind Steam.
type User struct {
	ID        int64
	SteamID   string
	SteamName string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity returns the identity half used by the token services.
func (u User) Identity() UserIdentity {
	return UserIdentity{ID: u.ID, ExternalID: u.SteamID}
}
