package lastfm

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the Last.fm web service root
const DefaultBaseURL = "https://ws.audioscrobbler.com/2.0"

// DefaultTimeout bounds every call so a stalled Last.fm response cannot
// hold up the caller indefinitely
const DefaultTimeout = 10 * time.Second

//go:generate mockgen -package=mocks -destination=mocks/mock_client.go github.com/macawbot/macaw/internal/lastfm Client

// Client is the interface for the Last.fm web service
type Client interface {
	// AuthURL returns the page where a user authorizes a token for this
	// application
	AuthURL() string

	// GetSession exchanges a user-authorized token for a durable session key
	GetSession(ctx context.Context, token string) (string, error)

	// Scrobble submits a single listen
	Scrobble(ctx context.Context, input *ScrobbleInput) error
}

// ScrobbleInput contains parameters for submitting a listen
type ScrobbleInput struct {
	// Artist is the performing artist
	Artist string

	// Title is the track title
	Title string

	// SessionKey authenticates the listening user
	SessionKey string

	// Timestamp is when the track was played
	Timestamp time.Time
}

// APIError is an error payload returned by the Last.fm web service
type APIError struct {
	Code    int    `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lastfm: %s (error %d)", e.Message, e.Code)
}

// Config holds configuration for the Last.fm client
type Config struct {
	// APIKey is the application key
	APIKey string

	// SharedSecret signs every authenticated request
	SharedSecret string

	// BaseURL overrides the web service root (used in tests)
	BaseURL string

	// HTTPClient overrides the HTTP client (used in tests)
	HTTPClient *http.Client
}

// client implements the Client interface over HTTP
type client struct {
	apiKey       string
	sharedSecret string
	baseURL      string
	http         *http.Client
}

// New creates a new Last.fm client
func New(cfg *Config) (*client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, errors.New("API key cannot be empty")
	}

	if cfg.SharedSecret == "" {
		return nil, errors.New("shared secret cannot be empty")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &client{
		apiKey:       cfg.APIKey,
		sharedSecret: cfg.SharedSecret,
		baseURL:      baseURL,
		http:         httpClient,
	}, nil
}

// AuthURL returns the page where a user authorizes a token for this
// application
func (c *client) AuthURL() string {
	return fmt.Sprintf("https://www.last.fm/api/auth/?api_key=%s", c.apiKey)
}

type sessionResponse struct {
	Session struct {
		Name       string `json:"name"`
		Key        string `json:"key"`
		Subscriber int    `json:"subscriber"`
	} `json:"session"`
}

// GetSession exchanges a user-authorized token for a durable session key
func (c *client) GetSession(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", errors.New("token cannot be empty")
	}

	params := map[string]string{
		"method":  "auth.getSession",
		"token":   token,
		"api_key": c.apiKey,
	}
	params["api_sig"] = c.sign(params)
	params["format"] = "json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+encodeParams(params), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	var parsed sessionResponse
	if err := c.do(req, &parsed); err != nil {
		return "", err
	}

	if parsed.Session.Key == "" {
		return "", errors.New("lastfm: session response missing key")
	}

	return parsed.Session.Key, nil
}

// Scrobble submits a single listen
func (c *client) Scrobble(ctx context.Context, input *ScrobbleInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	if input.SessionKey == "" {
		return errors.New("session key cannot be empty")
	}

	params := map[string]string{
		"method":    "track.scrobble",
		"artist":    input.Artist,
		"track":     input.Title,
		"timestamp": strconv.FormatInt(input.Timestamp.Unix(), 10),
		"api_key":   c.apiKey,
		"sk":        input.SessionKey,
	}
	params["api_sig"] = c.sign(params)
	params["format"] = "json"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(encodeParams(params)))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, &struct{}{})
}

// do executes a request and decodes the JSON response into out, converting
// Last.fm error payloads into APIError
func (c *client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("lastfm request failed: %w", err)
	}
	defer resp.Body.Close()

	var apiErr APIError
	body := json.NewDecoder(resp.Body)

	if resp.StatusCode != http.StatusOK {
		if err := body.Decode(&apiErr); err == nil && apiErr.Code != 0 {
			return &apiErr
		}
		return fmt.Errorf("lastfm request failed: %s", resp.Status)
	}

	raw := json.RawMessage{}
	if err := body.Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	// Errors can arrive with a 200 status
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Code != 0 {
		return &apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// sign computes the api_sig for a parameter set: the MD5 hex digest of the
// parameters concatenated as key-value pairs in key order, followed by the
// shared secret. The format parameter is never part of the signature.
func (c *client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		sb.WriteString(key)
		sb.WriteString(params[key])
	}
	sb.WriteString(c.sharedSecret)

	return fmt.Sprintf("%x", md5.Sum([]byte(sb.String())))
}

func encodeParams(params map[string]string) string {
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}
	return values.Encode()
}
