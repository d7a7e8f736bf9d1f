// Package weather wraps the tomorrow.io forecast API as a skill.
package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the tomorrow.io forecast endpoint.
const DefaultBaseURL = "https://api.tomorrow.io/v4/weather/forecast"

const userAgent = "gate-agent"

// Skill fetches daily forecasts for a latitude/longitude pair.
type Skill struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// New returns a Skill using key, with DefaultBaseURL when baseURL is empty.
func New(key, baseURL string, timeout time.Duration) *Skill {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Skill{
		BaseURL:    baseURL,
		APIKey:     key,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// ForecastURL builds the request URL. latlon is embedded as given.
func (s *Skill) ForecastURL(latlon string) string {
	base := s.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s?timesteps=1d&location=%s&apikey=%s", base, latlon, s.APIKey)
}

// GetForecast returns the raw JSON forecast for latlon ("lat,lon").
func (s *Skill) GetForecast(ctx context.Context, latlon string) (string, error) {
	if strings.TrimSpace(latlon) == "" {
		return "", errors.New("latlon is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.ForecastURL(latlon), nil)
	if err != nil {
		return "", fmt.Errorf("building forecast request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("forecast request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading forecast response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("forecast request returned %s", resp.Status)
	}
	return string(body), nil
}
