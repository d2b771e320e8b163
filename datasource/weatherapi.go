package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/shyamyadavji/weather/payload"
)

// DefaultBaseURL is the fixed upstream base for all three endpoints.
const DefaultBaseURL = "http://api.weatherapi.com/v1"

// DefaultTimeout bounds a single fetch end to end.
const DefaultTimeout = 15 * time.Second

// forecastDays is the day span requested from the forecast endpoint. Only
// day 0 hours feed the hourly view, but the daily view consumes all of them.
const forecastDays = 7

// topLevelKey is the key a well-formed response must carry for each kind.
var topLevelKey = map[EndpointKind]string{
	KindCurrent:   "current",
	KindForecast:  "forecast",
	KindAstronomy: "astronomy",
}

// WeatherAPIClient is the Gateway implementation for WeatherAPI.com.
type WeatherAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Ensure WeatherAPIClient implements Gateway
var _ Gateway = (*WeatherAPIClient)(nil)

// NewWeatherAPIClient creates a gateway for the given credential. A zero
// timeout falls back to DefaultTimeout.
func NewWeatherAPIClient(apiKey string, timeout time.Duration) *WeatherAPIClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &WeatherAPIClient{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetBaseURL overrides the upstream base, primarily for tests.
func (c *WeatherAPIClient) SetBaseURL(base string) {
	c.baseURL = base
}

// Name returns the gateway name
func (c *WeatherAPIClient) Name() string {
	return "WeatherAPI"
}

// Fetch issues one GET for the requested endpoint kind and returns the raw
// decoded body. No retries are performed here; retry policy belongs to the
// caller.
func (c *WeatherAPIClient) Fetch(ctx context.Context, location string, kind EndpointKind) (payload.Tree, error) {
	key, ok := topLevelKey[kind]
	if !ok {
		return nil, fmt.Errorf("invalid endpoint kind: %q", kind)
	}

	// Build URL
	endpoint := fmt.Sprintf("%s/%s.json", c.baseURL, kind)
	params := url.Values{}
	params.Add("key", c.apiKey)
	params.Add("q", location)
	if kind == KindForecast {
		params.Add("days", fmt.Sprintf("%d", forecastDays))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyTransport(err, location, kind)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: ErrNetworkUnreachable, Endpoint: kind, Location: location, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.classifyStatus(resp.StatusCode, location, kind)
	}

	tree, err := payload.Decode(body)
	if err != nil {
		return nil, &FetchError{Kind: ErrMalformedResponse, Endpoint: kind, Location: location, Err: err}
	}
	if _, ok := tree[key]; !ok {
		return nil, &FetchError{
			Kind:     ErrMalformedResponse,
			Endpoint: kind,
			Location: location,
			Err:      fmt.Errorf("response missing %q key", key),
		}
	}

	return tree, nil
}

// Probe issues a single current-conditions fetch for a known-good reference
// location. The caller maps the classified error onto a startup category.
func (c *WeatherAPIClient) Probe(ctx context.Context, location string) error {
	_, err := c.Fetch(ctx, location, KindCurrent)
	return err
}

func (c *WeatherAPIClient) classifyTransport(err error, location string, kind EndpointKind) error {
	fe := &FetchError{Kind: ErrNetworkUnreachable, Endpoint: kind, Location: location, Err: err}

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fe.Kind = ErrTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		fe.Kind = ErrTimeout
	}
	return fe
}

func (c *WeatherAPIClient) classifyStatus(status int, location string, kind EndpointKind) error {
	fe := &FetchError{Endpoint: kind, Location: location, Status: status}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		fe.Kind = ErrAuth
	case status == http.StatusBadRequest:
		fe.Kind = ErrNotFound
	default:
		fe.Kind = ErrUpstream
	}
	return fe
}
