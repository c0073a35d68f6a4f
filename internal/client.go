package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// directBaseURL serves live aircraft data without authentication, with
	// rate limits.
	directBaseURL = "https://globe.adsbexchange.com/data"
	// rapidAPIBaseURL serves the commercial v2 API, which requires a key.
	rapidAPIBaseURL = "https://adsbexchange-com1.p.rapidapi.com/v2"
	rapidAPIHost    = "adsbexchange-com1.p.rapidapi.com"

	requestTimeout = 30 * time.Second
)

// Errors used by the Client.
var (
	ErrAPIKeyRequired    = errors.New("API key required for RapidAPI access")
	ErrNonOkResponse     = errors.New("non-OK response")
	ErrEmptyResponseBody = errors.New("empty response body")
	ErrNonJSONContent    = errors.New("non-JSON content type")
)

// ClientOptions configures a Client.
type ClientOptions struct {
	// APIKey is the RapidAPI key. Required when UseRapidAPI is set.
	APIKey string
	// UseRapidAPI selects the commercial endpoint over the direct one.
	UseRapidAPI bool
	// BaseURL overrides the endpoint, mainly for tests. Empty selects the
	// endpoint matching UseRapidAPI.
	BaseURL string
	// HTTPClient overrides the transport. Nil selects a client with a fixed
	// 30 second timeout.
	HTTPClient *http.Client
	// Logger receives transport diagnostics. Nil selects slog.Default.
	Logger *slog.Logger
}

// Client fetches raw aircraft payloads from the tracking service. It holds
// no mutable state after construction; any fetch error is fatal for that
// fetch cycle, the Client never retries and never substitutes partial
// results.
type Client struct {
	apiKey      string
	useRapidAPI bool
	baseURL     string
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewClient validates the options and returns a ready Client. Requesting
// RapidAPI mode without a key fails here, before any fetch is attempted.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.UseRapidAPI && opts.APIKey == "" {
		return nil, fmt.Errorf("newClient: %w", ErrAPIKeyRequired)
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		if opts.UseRapidAPI {
			baseURL = rapidAPIBaseURL
		} else {
			baseURL = directBaseURL
		}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout} //nolint:exhaustruct // defaults suffice
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		apiKey:      opts.APIKey,
		useRapidAPI: opts.UseRapidAPI,
		baseURL:     baseURL,
		httpClient:  httpClient,
		logger:      logger,
	}, nil
}

// aircraftEnvelope mirrors the JSON envelope around the raw aircraft list.
// Depending on the endpoint the list arrives under "aircraft" or "ac"; the
// payloads themselves stay untyped maps for the normalizer to resolve.
type aircraftEnvelope struct {
	Aircraft []map[string]any `json:"aircraft"`
	Ac       []map[string]any `json:"ac"`
}

// FetchAll returns the raw payloads of all currently tracked aircraft.
// An empty list is a valid, successful result and is distinct from an error.
func (c *Client) FetchAll(ctx context.Context) ([]map[string]any, error) {
	endpoint := "all"
	if !c.useRapidAPI {
		endpoint = "aircraft.json"
	}

	return c.fetch(ctx, endpoint)
}

// FetchByAddress returns the raw payloads matching the given ICAO hex
// address, possibly empty.
func (c *Client) FetchByAddress(ctx context.Context, icao string) ([]map[string]any, error) {
	return c.fetch(ctx, "icao/"+strings.ToLower(icao))
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]map[string]any, error) {
	body, err := c.sendRequest(ctx, c.baseURL+"/"+endpoint)
	if err != nil {
		return nil, err
	}

	var envelope aircraftEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("fetch: failed to unmarshal response: %w", err)
	}

	if envelope.Aircraft != nil {
		return envelope.Aircraft, nil
	}

	if envelope.Ac != nil {
		return envelope.Ac, nil
	}

	return []map[string]any{}, nil
}

// sendRequest sends an HTTP GET request and returns a valid byte slice of
// the response body.
func (c *Client) sendRequest(ctx context.Context, url string) ([]byte, error) {
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if reqErr != nil {
		return nil, fmt.Errorf("sendRequest: invalid request error: %s : %w", url, reqErr)
	}

	if c.useRapidAPI {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
		req.Header.Set("X-RapidAPI-Host", rapidAPIHost)
	}

	resp, respErr := c.httpClient.Do(req)
	if respErr != nil {
		return nil, fmt.Errorf("sendRequest: failed to send GET request: %s: %w", url, respErr)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("sendRequest: error while closing response body", slog.Any("error", closeErr))
		}
	}()

	// Check if the request was successful (status code 200 OK)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sendRequest: %w %s", ErrNonOkResponse, resp.Status)
	}

	body, bodyErr := io.ReadAll(resp.Body)
	if bodyErr != nil {
		return nil, fmt.Errorf("sendRequest: failed to read response body: %w", bodyErr)
	}

	if len(body) == 0 {
		return nil, fmt.Errorf("sendRequest: %w", ErrEmptyResponseBody)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return nil, fmt.Errorf("sendRequest: %w, %s", ErrNonJSONContent, contentType)
	}

	return body, nil
}
