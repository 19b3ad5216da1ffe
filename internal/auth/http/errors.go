// Package http exposes the auth service over HTTP: the game login and
// refresh endpoints, the browser OpenID flow and the health probes.
package http

import (
	"errors"
	"net/http"

	"github.com/zeepkist/gtr-auth/internal/auth/service"
	"github.com/zeepkist/gtr-auth/pkg/httpx"
	"github.com/zeepkist/gtr-auth/pkg/slogx"
)

// writeServiceError maps token service failures onto HTTP responses. All
// refresh validation failures collapse to 401 so callers cannot probe which
// check failed; only the error code in the body differs.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrMalformedSubject):
		httpx.WriteError(w, http.StatusBadRequest, "malformed_subject",
			"user handle could not be parsed")
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusUnauthorized, "unknown_session",
			"no token state exists for this user")
	case errors.Is(err, service.ErrNoRefreshToken):
		httpx.WriteError(w, http.StatusUnauthorized, "no_refresh_token",
			"no refresh token on record")
	case errors.Is(err, service.ErrInvalidRefreshToken):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_refresh_token",
			"refresh token does not match")
	case errors.Is(err, service.ErrRefreshTokenExpired):
		httpx.WriteError(w, http.StatusUnauthorized, "refresh_token_expired",
			"refresh token has expired")
	default:
		slogx.FromContext(r.Context()).Error("token operation failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error",
			"internal error")
	}
}

func writeOutdatedVersion(w http.ResponseWriter, minimum string) {
	httpx.WriteError(w, http.StatusForbidden, "outdated_mod_version",
		"mod version "+minimum+" or newer is required")
}
