package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/zeepkist/gtr-auth/internal/auth/service"
	"github.com/zeepkist/gtr-auth/internal/auth/store"
	"github.com/zeepkist/gtr-auth/pkg/httpx"
	"github.com/zeepkist/gtr-auth/pkg/slogx"
	"github.com/zeepkist/gtr-auth/pkg/steamx"
)

// OpenIDVerifier drives the browser login handshake. Satisfied by
// steamx.OpenID.
type OpenIDVerifier interface {
	RedirectURL(realm, returnTo string) string
	Verify(ctx context.Context, callback url.Values) (string, error)
}

// ExternalAuthHandler serves websites and companion tools: the Steam OpenID
// browser flow plus refresh. Realm is the public base URL of this service,
// used as the OpenID realm and to build the confirm callback.
type ExternalAuthHandler struct {
	TokenService *service.TokenService
	UserService  *service.UserService
	OpenID       OpenIDVerifier
	Realm        string
}

type externalRefreshRequest struct {
	SteamID      string `json:"steamId"`
	RefreshToken string `json:"refreshToken"`
}

// HandleLogin godoc
//
//	@Summary		External Login
//	@Description	Starts the Steam OpenID browser login. The browser is redirected to the Steam
//	@Description	community login page and returns to the confirm endpoint, which forwards the
//	@Description	token pair to redirectUrl.
//	@Tags			External
//	@Param			redirectUrl	query	string	true	"absolute URL to send the token to after login"
//	@Success		302
//	@Failure		400	{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/external/login [get].
func (h *ExternalAuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	redirectURL := r.URL.Query().Get("redirectUrl")
	if !isAbsoluteURL(redirectURL) {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
			"redirectUrl must be an absolute URL")
		return
	}

	returnTo := h.Realm + "/external/confirm?redirectUrl=" + url.QueryEscape(redirectURL)
	http.Redirect(w, r, h.OpenID.RedirectURL(h.Realm, returnTo), http.StatusFound)
}

// HandleConfirm godoc
//
//	@Summary		External Login Confirmation
//	@Description	Completes the Steam OpenID handshake. On success the browser is redirected to
//	@Description	the original redirectUrl with the token pair attached as a base64 "token"
//	@Description	query parameter.
//	@Tags			External
//	@Success		302
//	@Failure		400	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/external/confirm [get].
func (h *ExternalAuthHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := slogx.FromContext(ctx)

	query := r.URL.Query()
	redirectURL := query.Get("redirectUrl")
	if !isAbsoluteURL(redirectURL) {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
			"redirectUrl must be an absolute URL")
		return
	}

	steamID, err := h.OpenID.Verify(ctx, query)
	if err != nil {
		switch {
		case errors.Is(err, steamx.ErrOpenIDMalformed):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request",
				"malformed openid callback")
		case errors.Is(err, steamx.ErrOpenIDRejected):
			l.Info("steam rejected openid assertion")
			httpx.WriteError(w, http.StatusUnauthorized, "login_rejected",
				"steam did not confirm the login")
		default:
			l.Error("openid verification failed", "err", err)
			httpx.WriteError(w, http.StatusBadGateway, "steam_unavailable",
				"could not verify the login with steam")
		}
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

	payload, err := json.Marshal(resp)
	if err != nil {
		l.Error("marshal token payload failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}
	token := base64.URLEncoding.EncodeToString(payload)

	l.Info("completed external login", slog.Int64("user_id", user.ID))

	target := redirectURL
	if strings.Contains(target, "?") {
		target += "&token=" + token
	} else {
		target += "?token=" + token
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// HandleRefresh godoc
//
//	@Summary		External Token Refresh
//	@Description	Rotates an external client's token pair. The presented refresh token is single use.
//	@Tags			External
//	@Accept			json
//	@Produce		json
//	@Param			request	body		externalRefreshRequest	true	"steamId, refreshToken"
//	@Success		200		{object}	domain.TokenResponse	"token pair"
//	@Failure		400		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse		"error, error_description"
//	@Router			/external/refresh [post].
func (h *ExternalAuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req externalRefreshRequest
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

	slogx.FromContext(ctx).Info("refreshed external token pair",
		slog.Int64("user_id", resp.UserID))
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
