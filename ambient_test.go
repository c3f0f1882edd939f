package attest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: these tests mutate the process environment via t.Setenv, so
// they cannot run in parallel.

func TestAmbientCredentials_NoEnvironment(t *testing.T) {
	t.Setenv("ACTIONS_ID_TOKEN_REQUEST_URL", "")
	t.Setenv("ACTIONS_ID_TOKEN_REQUEST_TOKEN", "")

	_, err := AmbientCredentials{}.Token(context.Background())
	require.ErrorContains(t, err, "no ambient OIDC credentials")
}

func TestAmbientCredentials_Token(t *testing.T) {
	var gotAuth, gotAudience string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAudience = r.URL.Query().Get("audience")
		fmt.Fprint(w, `{"value":"the-oidc-token"}`)
	}))
	defer srv.Close()

	t.Setenv("ACTIONS_ID_TOKEN_REQUEST_URL", srv.URL+"?api-version=2")
	t.Setenv("ACTIONS_ID_TOKEN_REQUEST_TOKEN", "runner-token")

	token, err := AmbientCredentials{}.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "the-oidc-token", token)
	assert.Equal(t, "Bearer runner-token", gotAuth)
	assert.Equal(t, "sigstore", gotAudience)
}

func TestAmbientCredentials_CustomAudience(t *testing.T) {
	var gotAudience string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAudience = r.URL.Query().Get("audience")
		fmt.Fprint(w, `{"value":"tok"}`)
	}))
	defer srv.Close()

	t.Setenv("ACTIONS_ID_TOKEN_REQUEST_URL", srv.URL)
	t.Setenv("ACTIONS_ID_TOKEN_REQUEST_TOKEN", "runner-token")

	_, err := AmbientCredentials{Audience: "testing"}.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "testing", gotAudience)
}

func TestAmbientCredentials_RequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	t.Setenv("ACTIONS_ID_TOKEN_REQUEST_URL", srv.URL)
	t.Setenv("ACTIONS_ID_TOKEN_REQUEST_TOKEN", "runner-token")

	_, err := AmbientCredentials{}.Token(context.Background())
	require.ErrorContains(t, err, "status 403")
}

func TestAmbientCredentials_EmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"value":""}`)
	}))
	defer srv.Close()

	t.Setenv("ACTIONS_ID_TOKEN_REQUEST_URL", srv.URL)
	t.Setenv("ACTIONS_ID_TOKEN_REQUEST_TOKEN", "runner-token")

	_, err := AmbientCredentials{}.Token(context.Background())
	require.ErrorContains(t, err, "empty token")
}
