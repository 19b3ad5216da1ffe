package steamx

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	openIDLoginURL = "https://steamcommunity.com/openid/login"
	openIDNS       = "http://specs.openid.net/auth/2.0"
	identifierAny  = "http://specs.openid.net/auth/2.0/identifier_select"

	// claimedIDPrefix is the fixed prefix of Steam OpenID claimed ids; the
	// SteamID64 is the final path segment.
	claimedIDPrefix = "https://steamcommunity.com/openid/id/"
)

var (
	// ErrOpenIDRejected reports an assertion Steam did not confirm.
	ErrOpenIDRejected = errors.New("steamx: openid assertion rejected")

	// ErrOpenIDMalformed reports a callback missing or mangling required fields.
	ErrOpenIDMalformed = errors.New("steamx: malformed openid callback")
)

// OpenID implements the provider side of Steam's OpenID 2.0 login. It holds
// no state beyond the endpoint override used by tests.
type OpenID struct {
	httpClient *http.Client
	loginURL   string
}

func NewOpenID() *OpenID {
	return &OpenID{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		loginURL:   openIDLoginURL,
	}
}

// NewOpenIDWithEndpoint is for tests pointing at a fake provider.
func NewOpenIDWithEndpoint(loginURL string) *OpenID {
	o := NewOpenID()
	o.loginURL = loginURL
	return o
}

// RedirectURL builds the checkid_setup URL that sends the browser to the
// Steam login page. returnTo must be an absolute URL under realm.
func (o *OpenID) RedirectURL(realm, returnTo string) string {
	query := url.Values{}
	query.Set("openid.ns", openIDNS)
	query.Set("openid.mode", "checkid_setup")
	query.Set("openid.return_to", returnTo)
	query.Set("openid.realm", realm)
	query.Set("openid.identity", identifierAny)
	query.Set("openid.claimed_id", identifierAny)
	return o.loginURL + "?" + query.Encode()
}

// Verify replays the positive assertion back to Steam with
// check_authentication and returns the asserted SteamID64.
func (o *OpenID) Verify(ctx context.Context, callback url.Values) (string, error) {
	if callback.Get("openid.mode") != "id_res" {
		return "", ErrOpenIDMalformed
	}

	steamID, err := steamIDFromClaimedID(callback.Get("openid.claimed_id"))
	if err != nil {
		return "", err
	}

	form := url.Values{}
	for key, values := range callback {
		if strings.HasPrefix(key, "openid.") && len(values) > 0 {
			form.Set(key, values[0])
		}
	}
	form.Set("openid.mode", "check_authentication")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.loginURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("steamx: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("steamx: check authentication: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("steamx: check authentication: unexpected status %d", resp.StatusCode)
	}

	// The response is a key:value document; is_valid:true confirms it.
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), ":")
		if ok && key == "is_valid" && value == "true" {
			return steamID, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("steamx: read response: %w", err)
	}

	return "", ErrOpenIDRejected
}

func steamIDFromClaimedID(claimedID string) (string, error) {
	rest, found := strings.CutPrefix(claimedID, claimedIDPrefix)
	if !found || rest == "" || strings.Contains(rest, "/") {
		return "", ErrOpenIDMalformed
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return "", ErrOpenIDMalformed
		}
	}
	return rest, nil
}
