package attest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// defaultAudience is the audience requested for identity tokens. The
// signing authority only accepts tokens minted for sigstore.
const defaultAudience = "sigstore"

// AmbientCredentials retrieves an OIDC identity token from the ambient
// CI environment. Currently supports GitHub Actions.
type AmbientCredentials struct {
	// Audience overrides the requested token audience. Defaults to
	// "sigstore".
	Audience string

	// Client overrides the HTTP client used for token requests.
	Client *http.Client
}

// Token implements TokenProvider.
func (a AmbientCredentials) Token(ctx context.Context) (string, error) {
	token, err := a.gitHubActionsToken(ctx)
	if err == nil {
		return token, nil
	}
	return "", fmt.Errorf("no ambient OIDC credentials found (not running in GitHub Actions?): %w", err)
}

// gitHubActionsToken fetches an OIDC token from GitHub Actions.
// Requires ACTIONS_ID_TOKEN_REQUEST_URL and ACTIONS_ID_TOKEN_REQUEST_TOKEN
// env vars, which are only present when the workflow has id-token
// permission.
func (a AmbientCredentials) gitHubActionsToken(ctx context.Context) (string, error) {
	requestURL := os.Getenv("ACTIONS_ID_TOKEN_REQUEST_URL")
	requestToken := os.Getenv("ACTIONS_ID_TOKEN_REQUEST_TOKEN")

	if requestURL == "" || requestToken == "" {
		return "", errors.New("GitHub Actions OIDC environment variables not set")
	}

	audience := a.Audience
	if audience == "" {
		audience = defaultAudience
	}

	u, err := url.Parse(requestURL)
	if err != nil {
		return "", fmt.Errorf("parse token request URL: %w", err)
	}
	q := u.Query()
	q.Set("audience", audience)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+requestToken)
	req.Header.Set("Accept", "application/json")

	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("GitHub Actions OIDC request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	if tokenResp.Value == "" {
		return "", errors.New("empty token returned from GitHub Actions")
	}

	return tokenResp.Value, nil
}

// Ensure AmbientCredentials implements TokenProvider.
var _ TokenProvider = AmbientCredentials{}
