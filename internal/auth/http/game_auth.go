package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/zeepkist/gtr-auth/internal/auth/service"
	"github.com/zeepkist/gtr-auth/internal/auth/store"
	"github.com/zeepkist/gtr-auth/pkg/httpx"
	"github.com/zeepkist/gtr-auth/pkg/slogx"
	"github.com/zeepkist/gtr-auth/pkg/steamx"
)

// TicketVerifier validates a Steam session ticket and resolves the SteamID64
// it was issued to. Satisfied by steamx.Client.
type TicketVerifier interface {
	AuthenticateUserTicket(ctx context.Context, ticket string) (string, error)
}

// GameAuthHandler serves the native game client: ticket login and refresh.
type GameAuthHandler struct {
	TokenService   *service.TokenService
	UserService    *service.UserService
	Verifier       TicketVerifier
	MinimumVersion string
}

type gameLoginRequest struct {
	ModVersion           string `json:"modVersion"`
	SteamID              string `json:"steamId"`
	AuthenticationTicket string `json:"authenticationTicket"`
}

type gameRefreshRequest struct {
	ModVersion   string `json:"modVersion"`
	SteamID      string `json:"steamId"`
	RefreshToken string `json:"refreshToken"`
}

// HandleLogin godoc
//
//	@Summary		Game Login
//	@Description	Authenticates a game client with a Steam session ticket and issues a token pair.
//	@Description	Requests from mod builds older than the configured minimum are rejected.
//	@Tags			Game
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gameLoginRequest		true	"modVersion, steamId, authenticationTicket"
//	@Success		200		{object}	domain.TokenResponse	"token pair"
//	@Failure		400		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse		"error, error_description"
//	@Router			/game/login [post].
func (h *GameAuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	var req gameLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	req.SteamID = strings.TrimSpace(req.SteamID)
	if req.SteamID == "" || req.AuthenticationTicket == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
			"steamId and authenticationTicket are required")
		return
	}

	if !MeetsMinimumVersion(req.ModVersion, h.MinimumVersion) {
		l.Info("rejected outdated mod version",
			slog.String("mod_version", req.ModVersion),
			slog.String("steam_id", req.SteamID),
		)
		writeOutdatedVersion(w, h.MinimumVersion)
		return
	}

	steamID, err := h.Verifier.AuthenticateUserTicket(ctx, req.AuthenticationTicket)
	if err != nil {
		if errors.Is(err, steamx.ErrTicketRejected) {
			l.Info("steam rejected session ticket", slog.String("steam_id", req.SteamID))
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_ticket",
				"steam rejected the authentication ticket")
			return
		}
		l.Error("ticket verification failed", "err", err)
		httpx.WriteError(w, http.StatusBadGateway, "steam_unavailable",
			"could not verify the authentication ticket")
		return
	}

	// The ticket, not the request body, is authoritative for identity.
	if steamID != req.SteamID {
		l.Info("ticket steam id mismatch",
			slog.String("claimed", req.SteamID),
			slog.String("verified", steamID),
		)
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_ticket",
			"ticket was issued to a different account")
		return
	}

	user, err := h.UserService.GetOrCreate(ctx, steamID, "")
	if err != nil {
		l.Error("user lookup failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	identity := user.Identity()
	resp, err := h.TokenService.CreateToken(ctx, identity, h.TokenService.Privileges(identity))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleRefresh godoc
//
//	@Summary		Game Token Refresh
//	@Description	Rotates a game client's token pair. The presented refresh token is single use.
//	@Tags			Game
//	@Accept			json
//	@Produce		json
//	@Param			request	body		gameRefreshRequest		true	"modVersion, steamId, refreshToken"
//	@Success		200		{object}	domain.TokenResponse	"token pair"
//	@Failure		400		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse		"error, error_description"
//	@Router			/game/refresh [post].
func (h *GameAuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	var req gameRefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	req.SteamID = strings.TrimSpace(req.SteamID)
	if req.SteamID == "" || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
			"steamId and refreshToken are required")
		return
	}

	if !MeetsMinimumVersion(req.ModVersion, h.MinimumVersion) {
		writeOutdatedVersion(w, h.MinimumVersion)
		return
	}

	resp, err := refreshBySteamID(ctx, h.TokenService, req.SteamID, req.RefreshToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "unknown_user",
				"no account exists for this steam id")
			return
		}
		writeServiceError(w, r, err)
		return
	}

	l.Info("refreshed game token pair", slog.Int64("user_id", resp.UserID))
	httpx.WriteJSON(w, http.StatusOK, resp)
}
