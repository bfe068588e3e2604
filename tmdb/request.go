package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// RequestBuilder turns endpoints into authenticated HTTP requests
type RequestBuilder struct {
	baseURL     string
	accessToken string
	userAgent   string
}

// NewRequestBuilder creates a builder for the given API base URL and bearer token
func NewRequestBuilder(baseURL, accessToken string) *RequestBuilder {
	return &RequestBuilder{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
	}
}

// Build assembles the request for an endpoint. It fails only when the
// resulting string is not an absolute URL.
func (b *RequestBuilder) Build(ctx context.Context, e Endpoint) (*http.Request, error) {
	raw := b.baseURL + e.Path()
	if q := e.Query(); len(q) > 0 {
		raw += "?" + q.Encode()
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrInvalidURL, raw)
	}

	req, err := http.NewRequestWithContext(ctx, e.Method(), u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.accessToken)
	if b.userAgent != "" {
		req.Header.Set("User-Agent", b.userAgent)
	}

	return req, nil
}
