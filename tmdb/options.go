package tmdb

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client entirely.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithDefaultLanguage sets the language applied to every localized request.
func WithDefaultLanguage(language string) Option {
	return func(c *Client) {
		c.language = language
	}
}

// WithDefaultRegion sets the region applied to regional listings.
func WithDefaultRegion(region string) Option {
	return func(c *Client) {
		c.region = region
	}
}

// WithImageConfig overrides the image CDN configuration.
func WithImageConfig(images ImageConfig) Option {
	return func(c *Client) {
		c.images = images
	}
}

// WithCache stores successful response bodies in cache.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithConcurrency bounds the number of requests issued by batch operations.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}
