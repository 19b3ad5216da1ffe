package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zeepkist/gtr-auth/pkg/httpx"
)

func TestRateLimitByIP(t *testing.T) {
	t.Parallel()

	limited := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
		httpx.RateLimitByIP(httpx.RateLimitConfig{
			RequestsPerWindow: 2,
			Window:            time.Minute,
			Burst:             2,
		}),
	)

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/game/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, do("10.0.0.1:1234"))
	require.Equal(t, http.StatusOK, do("10.0.0.1:1234"))
	require.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1234"))

	// Other clients are unaffected.
	require.Equal(t, http.StatusOK, do("10.0.0.2:1234"))
}

func TestRateLimitHonorsForwardedFor(t *testing.T) {
	t.Parallel()

	limited := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
		httpx.RateLimitByIP(httpx.RateLimitConfig{
			RequestsPerWindow: 1,
			Window:            time.Minute,
			Burst:             1,
		}),
	)

	do := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/game/login", nil)
		req.RemoteAddr = "127.0.0.1:9999"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, do("203.0.113.7, 10.0.0.1"))
	require.Equal(t, http.StatusTooManyRequests, do("203.0.113.7, 10.0.0.1"))
	require.Equal(t, http.StatusOK, do("203.0.113.8"))
}
