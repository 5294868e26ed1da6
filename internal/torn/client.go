// Package torn provides a minimal Torn API client for profile lookups.
package torn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://api.torn.com"

var (
	// ErrUnexpectedStatus is returned for non-2xx responses.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrMalformed is returned when the body is not JSON or has no faction object.
	ErrMalformed = errors.New("malformed profile response")
)

// APIError is an error payload returned by the Torn API.
type APIError struct {
	Code    int64
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("torn API error %d: %s", e.Code, e.Message)
}

// Profile holds the profile fields the exporter needs.
type Profile struct {
	Level   int64
	Faction string
}

// Client is a Torn API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. An empty baseURL uses the public
// API. A zero timeout means requests never time out.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Profile fetches the profile of the user with the given id.
func (c *Client) Profile(ctx context.Context, id, apiKey string) (*Profile, error) {
	q := url.Values{}
	q.Set("selections", "profile")
	q.Set("key", apiKey)
	endpoint := fmt.Sprintf("%s/user/%s?%s", c.baseURL, url.PathEscape(id), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return parseProfile(body)
}

func parseProfile(body []byte) (*Profile, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrMalformed
	}

	if apiErr := gjson.GetBytes(body, "error"); apiErr.Exists() {
		return nil, &APIError{
			Code:    apiErr.Get("code").Int(),
			Message: apiErr.Get("error").String(),
		}
	}

	faction := gjson.GetBytes(body, "faction")
	if !faction.IsObject() {
		return nil, ErrMalformed
	}

	return &Profile{
		Level:   gjson.GetBytes(body, "level").Int(),
		Faction: faction.Get("faction_name").String(),
	}, nil
}
