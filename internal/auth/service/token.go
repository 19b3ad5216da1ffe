// Package service implements the token issuance and refresh orchestration on
// top of the signer and the persistence layer.
package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/zeepkist/gtr-auth/internal/auth/domain"
	"github.com/zeepkist/gtr-auth/internal/auth/store"
	"github.com/zeepkist/gtr-auth/pkg/cryptox"
	"github.com/zeepkist/gtr-auth/pkg/jwtx"
	"github.com/zeepkist/gtr-auth/pkg/slogx"
)

var (
	// ErrMalformedSubject reports a refresh request whose user handle could
	// not be parsed.
	ErrMalformedSubject = errors.New("malformed_subject")

	// ErrNotFound reports that no token state exists for the (user, channel)
	// pair of a refresh request.
	ErrNotFound = errors.New("token_state_not_found")

	// ErrNoRefreshToken reports stored token state without a refresh token.
	ErrNoRefreshToken = errors.New("no_refresh_token")

	// ErrInvalidRefreshToken reports a presented refresh token that does not
	// match the stored one, including tokens already consumed by rotation.
	ErrInvalidRefreshToken = errors.New("invalid_refresh_token")

	// ErrRefreshTokenExpired reports a matching refresh token past its expiry.
	ErrRefreshTokenExpired = errors.New("refresh_token_expired")
)

// Claim keys embedded in every issued access token.
const (
	ClaimType       = "Type"
	ClaimUserID     = "UserId"
	ClaimExternalID = "ExternalId"
)

// TokenService issues and refreshes token pairs for one auth channel. The two
// channels are the same orchestration configured differently; construct with
// NewGameTokenService or NewExternalTokenService.
type TokenService struct {
	Signer     *jwtx.Signer
	Store      store.Store
	AuthType   domain.AuthType
	Role       string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewGameTokenService configures the service for in-game mod clients.
// Non-positive TTLs fall back to the deployment defaults.
func NewGameTokenService(signer *jwtx.Signer, st store.Store, accessTTL, refreshTTL time.Duration) *TokenService {
	return newTokenService(signer, st, domain.AuthTypeGame, "game", accessTTL, refreshTTL)
}

// NewExternalTokenService configures the service for websites and companion
// tools. Non-positive TTLs fall back to the deployment defaults.
func NewExternalTokenService(signer *jwtx.Signer, st store.Store, accessTTL, refreshTTL time.Duration) *TokenService {
	return newTokenService(signer, st, domain.AuthTypeExternal, "external", accessTTL, refreshTTL)
}

func newTokenService(
	signer *jwtx.Signer,
	st store.Store,
	authType domain.AuthType,
	role string,
	accessTTL, refreshTTL time.Duration,
) *TokenService {
	if accessTTL <= 0 {
		accessTTL = jwtx.DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = jwtx.DefaultRefreshTokenTTL
	}
	return &TokenService{
		Signer:     signer,
		Store:      st,
		AuthType:   authType,
		Role:       role,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
}

// Privileges returns the standard claim set for an identity on this channel.
// Login and refresh both grant through here so the resulting tokens carry
// identical claims. UserId carries the bare numeric id; the compound handle
// lives only in refresh requests.
func (s *TokenService) Privileges(identity domain.UserIdentity) *domain.UserPrivileges {
	p := &domain.UserPrivileges{}
	p.AddClaim(ClaimType, s.AuthType.ClaimValue())
	p.AddClaim(ClaimUserID, strconv.FormatInt(identity.ID, 10))
	p.AddClaim(ClaimExternalID, identity.ExternalID)
	p.AddRole(s.Role)
	return p
}

// CreateToken mints a fresh token pair for the identity and overwrites any
// existing state for (identity, channel). Previously issued refresh tokens
// for the pair stop working the moment the new state commits. On persistence
// failure no tokens are returned; nothing signed here ever leaks without a
// matching stored record.
func (s *TokenService) CreateToken(
	ctx context.Context,
	identity domain.UserIdentity,
	privileges *domain.UserPrivileges,
) (*domain.TokenResponse, error) {
	now := time.Now()
	accessExpiry := now.Add(s.AccessTTL)
	refreshExpiry := now.Add(s.RefreshTTL)

	accessToken, err := s.Signer.Sign(privileges.Claims, privileges.Roles, accessExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken := cryptox.NewOpaqueToken()

	rec := domain.TokenRecord{
		UserID:             identity.ID,
		AuthType:           s.AuthType,
		AccessToken:        accessToken,
		AccessTokenExpiry:  domain.FormatUnix(accessExpiry),
		RefreshToken:       refreshToken,
		RefreshTokenExpiry: domain.FormatUnix(refreshExpiry),
	}

	if err := s.Store.TokenRecords().Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist token state: %w", err)
	}

	slogx.FromContext(ctx).Info("issued token pair",
		slog.Int64("user_id", identity.ID),
		slog.String("auth_type", s.AuthType.String()),
		slog.Time("access_expiry", accessExpiry),
		slog.Time("refresh_expiry", refreshExpiry),
	)

	return &domain.TokenResponse{
		UserID:        identity.ID,
		ExternalID:    identity.ExternalID,
		AccessToken:   accessToken,
		AccessExpiry:  accessExpiry,
		RefreshToken:  refreshToken,
		RefreshExpiry: refreshExpiry,
	}, nil
}

// RefreshToken validates a presented refresh token against the stored state
// and, when valid, rotates the whole pair. Each refresh token is single use;
// the rotation consumes it.
//
// Checks run in a fixed order so each failure maps to exactly one error:
// parse the handle, load the state, require a stored refresh token, compare,
// then check expiry.
func (s *TokenService) RefreshToken(
	ctx context.Context,
	req domain.RefreshTokenRequest,
) (*domain.TokenResponse, error) {
	l := slogx.FromContext(ctx)

	identity, err := domain.ParseSubject(req.UserID)
	if err != nil {
		return nil, ErrMalformedSubject
	}

	rec, err := s.Store.TokenRecords().Find(ctx, identity.ID, s.AuthType)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load token state: %w", err)
	}

	if rec.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	if subtle.ConstantTimeCompare([]byte(rec.RefreshToken), []byte(req.RefreshToken)) != 1 {
		l.Info("refresh token mismatch",
			slog.Int64("user_id", identity.ID),
			slog.String("auth_type", s.AuthType.String()),
		)
		return nil, ErrInvalidRefreshToken
	}

	expiry, err := domain.ParseUnix(rec.RefreshTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("parse stored refresh expiry: %w", err)
	}
	if !expiry.After(time.Now()) {
		return nil, ErrRefreshTokenExpired
	}

	return s.CreateToken(ctx, identity, s.Privileges(identity))
}
