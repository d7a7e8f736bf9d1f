// Package oauth performs the client-credentials token exchange against the
// Amadeus test API.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Amadeus self-service test host.
	DefaultBaseURL = "https://test.api.amadeus.com"
	// TokenPath is the client-credentials token endpoint.
	TokenPath = "/v1/security/oauth2/token"
)

// Token is the parsed token endpoint response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	State       string `json:"state,omitempty"`
}

// Client exchanges client credentials for access tokens. Each call is a fresh
// exchange; tokens are neither cached nor refreshed.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client for baseURL, or DefaultBaseURL when empty.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// ExchangeCredentials returns a fresh access token for the client credentials.
func (c *Client) ExchangeCredentials(ctx context.Context, clientID, clientSecret string) (string, error) {
	token, err := c.Exchange(ctx, clientID, clientSecret)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// Exchange posts the client-credentials grant and parses the response.
func (c *Client) Exchange(ctx context.Context, clientID, clientSecret string) (*Token, error) {
	body := fmt.Sprintf("grant_type=client_credentials&client_id=%s&client_secret=%s",
		url.QueryEscape(clientID), url.QueryEscape(clientSecret))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+TokenPath, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("token request returned %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}
	return &token, nil
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}
