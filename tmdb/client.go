package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the root of the TMDB v3 API
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultTimeout bounds every request
	DefaultTimeout = 10 * time.Second
	// DefaultConcurrency bounds batch operations
	DefaultConcurrency = 4
)

// Cache stores raw response bodies keyed by request URL
type Cache interface {
	Get(key string) ([]byte, bool)
	Put(key string, body []byte) error
}

// Client represents a TMDB API client. It holds no mutable state once
// constructed and is safe for concurrent use.
type Client struct {
	baseURL     string
	accessToken string
	userAgent   string
	language    string
	region      string
	concurrency int

	builder    *RequestBuilder
	httpClient *http.Client
	images     ImageConfig
	cache      Cache
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client authenticated with a v4 read access token
func NewClient(accessToken string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("tmdb access token is required")
	}

	c := &Client{
		baseURL:     DefaultBaseURL,
		accessToken: accessToken,
		concurrency: DefaultConcurrency,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		images: DefaultImageConfig(),
		logger: logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == "" {
		return nil, fmt.Errorf("tmdb base URL is required")
	}

	c.builder = NewRequestBuilder(c.baseURL, c.accessToken)
	c.builder.userAgent = c.userAgent

	return c, nil
}

// Images returns the image CDN configuration used by the client
func (c *Client) Images() ImageConfig {
	return c.images
}

// Do executes the request for an endpoint and returns the raw body of a
// 2xx response. Any other status is returned as an *APIError.
func (c *Client) Do(ctx context.Context, e Endpoint) ([]byte, error) {
	if e.localized() {
		e = e.withDefault("language", c.language)
	}
	if e.regional() {
		e = e.withDefault("region", c.region)
	}

	req, err := c.builder.Build(ctx, e)
	if err != nil {
		return nil, err
	}
	key := req.URL.String()

	// token checks always go to the network
	cacheable := c.cache != nil && e.Kind() != KindAuthentication

	if cacheable {
		if body, ok := c.cache.Get(key); ok {
			c.logger.Debug().Str("url", key).Msg("Serving TMDB response from cache")
			return body, nil
		}
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("url", key).
		Msg("Making TMDB API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknown, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrUnknown, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, body)
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Str("url", key).
			Str("message", apiErr.Message).
			Msg("TMDB API request failed")
		return nil, apiErr
	}

	if len(body) == 0 {
		return nil, ErrNoData
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Str("url", key).
		Msg("TMDB API request succeeded")

	if cacheable {
		if err := c.cache.Put(key, body); err != nil {
			c.logger.Warn().Err(err).Str("url", key).Msg("Failed to cache TMDB response")
		}
	}

	return body, nil
}

// TestConnection verifies the access token against the authentication endpoint
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.Do(ctx, Authentication())
	return err
}
