// Package steamx talks to the Steam Web API and Steam OpenID. It covers the
// two handshakes this service needs: session-ticket verification for the
// native game client and OpenID 2.0 login for the browser flow.
package steamx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const webAPIBaseURL = "https://api.steampowered.com"

var (
	// ErrTicketRejected reports a session ticket Steam refused to validate.
	ErrTicketRejected = errors.New("steamx: authentication ticket rejected")

	// ErrMissingAPIKey reports a client constructed without a Web API key.
	ErrMissingAPIKey = errors.New("steamx: web api key must not be empty")
)

type Config struct {
	APIKey  string // Steam Web API key, required
	AppID   uint32 // app the session tickets are issued for
	BaseURL string // override for tests; defaults to the public Web API
	Timeout time.Duration
}

// Client is a minimal Steam Web API client. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	apiKey     string
	appID      uint32
	baseURL    string
}

func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = webAPIBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		appID:      cfg.AppID,
		baseURL:    baseURL,
	}, nil
}

// authenticateUserTicketResponse mirrors the Web API envelope. A successful
// validation carries params, a rejected ticket carries error.
type authenticateUserTicketResponse struct {
	Response struct {
		Params *struct {
			Result          string `json:"result"`
			SteamID         string `json:"steamid"`
			OwnerSteamID    string `json:"ownersteamid"`
			VACBanned       bool   `json:"vacbanned"`
			PublisherBanned bool   `json:"publisherbanned"`
		} `json:"params"`
		Error *struct {
			ErrorCode int    `json:"errorcode"`
			ErrorDesc string `json:"errordesc"`
		} `json:"error"`
	} `json:"response"`
}

// AuthenticateUserTicket validates a session ticket issued by the Steam
// client for our app and returns the SteamID64 it belongs to.
func (c *Client) AuthenticateUserTicket(ctx context.Context, ticket string) (string, error) {
	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("appid", fmt.Sprint(c.appID))
	query.Set("ticket", ticket)

	endpoint := c.baseURL + "/ISteamUserAuth/AuthenticateUserTicket/v1/?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("steamx: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("steamx: authenticate user ticket: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("steamx: authenticate user ticket: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("steamx: read response: %w", err)
	}

	var parsed authenticateUserTicketResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("steamx: decode response: %w", err)
	}

	if parsed.Response.Error != nil {
		return "", fmt.Errorf("%w: %d %s", ErrTicketRejected,
			parsed.Response.Error.ErrorCode, parsed.Response.Error.ErrorDesc)
	}
	params := parsed.Response.Params
	if params == nil || params.Result != "OK" || params.SteamID == "" {
		return "", ErrTicketRejected
	}

	return params.SteamID, nil
}
