package tago

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"go.uber.org/zap"
)

// ErrQuotaExceeded means the daily API quota is used up. Every further call
// would fail the same way, so callers abort the run.
var ErrQuotaExceeded = errors.New("api token quota exceeded")

// FetchError ties a fatal fetch failure to the endpoint that produced it
type FetchError struct {
	Endpoint string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client performs provider GETs and classifies the responses. Only a quota
// exceeded response is ever returned as an error; every other failure is
// logged (unless silent) and treated as no data.
type Client struct {
	http   *http.Client
	logger *zap.SugaredLogger
}

// NewClient creates a client. A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, logger *zap.SugaredLogger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, logger: logger}
}

// Fetch requests rawURL and returns the response items. silent suppresses
// logging for calls whose failure is routine, such as schedule probes.
func (c *Client) Fetch(ctx context.Context, rawURL string, silent bool) ([]json.RawMessage, error) {
	return c.fetch(ctx, rawURL, silent, ShapeStandard)
}

// FetchAirport is Fetch for the airport bus service, whose items field
// comes in more shapes.
func (c *Client) FetchAirport(ctx context.Context, rawURL string, silent bool) ([]json.RawMessage, error) {
	return c.fetch(ctx, rawURL, silent, ShapeAirport)
}

func (c *Client) fetch(ctx context.Context, rawURL string, silent bool, shape ItemShape) ([]json.RawMessage, error) {
	endpoint := endpointName(rawURL)

	body, err := c.get(ctx, rawURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !silent {
			c.logger.Warnw("TAGO: fetch failed", "endpoint", endpoint, "error", err)
		}
		return nil, nil
	}

	resp := Classify(body, shape)
	switch resp.Outcome {
	case OutcomeItems:
		return resp.Items, nil
	case OutcomeQuotaExceeded:
		c.logger.Errorw("TAGO: daily API quota exceeded, try again tomorrow", "endpoint", endpoint)
		return nil, &FetchError{Endpoint: endpoint, Err: ErrQuotaExceeded}
	case OutcomeServiceError, OutcomeXML:
		if !silent {
			c.logger.Warnw("TAGO: unusable response", "endpoint", endpoint, "outcome", resp.Outcome.String())
		}
	case OutcomeResultError:
		if !silent {
			c.logger.Warnw("TAGO: API error",
				"endpoint", endpoint,
				"resultCode", resp.ResultCode,
				"resultMsg", resp.ResultMsg,
			)
		}
	}
	// empty and malformed bodies are routine
	return nil, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// endpointName returns the operation name (last path segment) of a URL
func endpointName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return rawURL
	}
	return path.Base(u.Path)
}

// FetchInto fetches rawURL and decodes every item into T. Items that fail
// to decode are dropped.
func FetchInto[T any](ctx context.Context, c *Client, rawURL string, silent bool) ([]T, error) {
	raw, err := c.Fetch(ctx, rawURL, silent)
	if err != nil {
		return nil, err
	}
	return decodeItems[T](raw), nil
}

func decodeItems[T any](raw []json.RawMessage) []T {
	out := make([]T, 0, len(raw))
	for _, item := range raw {
		if string(bytes.TrimSpace(item)) == "null" {
			continue
		}
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
