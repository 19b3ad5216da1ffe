package steamx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeepkist/gtr-auth/pkg/steamx"
)

func TestRedirectURL(t *testing.T) {
	t.Parallel()

	o := steamx.NewOpenID()
	raw := o.RedirectURL("https://auth.example.com", "https://auth.example.com/external/confirm?redirectUrl=x")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "steamcommunity.com", parsed.Host)

	query := parsed.Query()
	require.Equal(t, "checkid_setup", query.Get("openid.mode"))
	require.Equal(t, "https://auth.example.com", query.Get("openid.realm"))
	require.Equal(t, "https://auth.example.com/external/confirm?redirectUrl=x", query.Get("openid.return_to"))
	require.Equal(t, "http://specs.openid.net/auth/2.0/identifier_select", query.Get("openid.claimed_id"))
}

func TestVerify(t *testing.T) {
	t.Parallel()

	const steamID = "76561198000000000"

	valid := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "check_authentication", r.PostForm.Get("openid.mode"))

		if valid {
			_, _ = w.Write([]byte("ns:http://specs.openid.net/auth/2.0\nis_valid:true\n"))
		} else {
			_, _ = w.Write([]byte("ns:http://specs.openid.net/auth/2.0\nis_valid:false\n"))
		}
	}))
	t.Cleanup(srv.Close)

	o := steamx.NewOpenIDWithEndpoint(srv.URL)

	callback := url.Values{}
	callback.Set("openid.mode", "id_res")
	callback.Set("openid.claimed_id", "https://steamcommunity.com/openid/id/"+steamID)
	callback.Set("openid.sig", "sig")

	got, err := o.Verify(context.Background(), callback)
	require.NoError(t, err)
	require.Equal(t, steamID, got)

	valid = false
	_, err = o.Verify(context.Background(), callback)
	require.ErrorIs(t, err, steamx.ErrOpenIDRejected)
}

func TestVerifyRejectsMalformedCallbacks(t *testing.T) {
	t.Parallel()

	o := steamx.NewOpenID()

	cases := map[string]url.Values{
		"wrong mode": {
			"openid.mode":       {"cancel"},
			"openid.claimed_id": {"https://steamcommunity.com/openid/id/76561198000000000"},
		},
		"missing claimed id": {
			"openid.mode": {"id_res"},
		},
		"foreign claimed id": {
			"openid.mode":       {"id_res"},
			"openid.claimed_id": {"https://evil.example.com/openid/id/76561198000000000"},
		},
		"non numeric steam id": {
			"openid.mode":       {"id_res"},
			"openid.claimed_id": {"https://steamcommunity.com/openid/id/not-a-steamid"},
		},
	}

	for name, callback := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := o.Verify(context.Background(), callback)
			require.ErrorIs(t, err, steamx.ErrOpenIDMalformed)
		})
	}
}
