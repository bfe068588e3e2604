package tmdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors. Every error returned by the client matches exactly one of
// these through errors.Is.
var (
	// ErrInvalidURL indicates the request URL could not be formed
	ErrInvalidURL = errors.New("invalid URL")
	// ErrNoData indicates a successful response without any usable payload
	ErrNoData = errors.New("no data was found")
	// ErrDecoding indicates the response body matched none of the known shapes
	ErrDecoding = errors.New("error decoding response")
	// ErrEncoding indicates a value could not be encoded
	ErrEncoding = errors.New("error encoding")
	// ErrServer indicates a 5xx response
	ErrServer = errors.New("server error")
	// ErrUnauthorized indicates a 401 response
	ErrUnauthorized = errors.New("unauthorized: invalid access token")
	// ErrNotFound indicates a 404 response
	ErrNotFound = errors.New("resource not found")
	// ErrUnexpectedResponse indicates any other non-2xx response
	ErrUnexpectedResponse = errors.New("unexpected response")
	// ErrUnknown wraps transport failures
	ErrUnknown = errors.New("unknown error")

	// ErrMissingImagePath indicates a media record without the requested image
	ErrMissingImagePath = errors.New("missing image path")
	// ErrInvalidImageSize indicates a size token that is not valid for the image kind
	ErrInvalidImageSize = errors.New("invalid image size")
)

// APIError represents a non-2xx response from the TMDB API
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tmdb API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.Message)
}

// Unwrap returns the sentinel matching the status code
func (e *APIError) Unwrap() error {
	return classifyStatus(e.StatusCode)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsServerError checks if the error indicates a 5xx response
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode <= 599
}

func classifyStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500 && code <= 599:
		return ErrServer
	default:
		return ErrUnexpectedResponse
	}
}

// statusBody is the error payload TMDB attaches to failed requests
type statusBody struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

func newAPIError(code int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: code,
		Body:       string(body),
	}

	var sb statusBody
	if err := json.Unmarshal(body, &sb); err == nil && sb.StatusMessage != "" {
		apiErr.Message = sb.StatusMessage
	} else {
		apiErr.Message = http.StatusText(code)
	}

	return apiErr
}

// Describe renders err as the short message shown in place of content.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	hasStatus := errors.As(err, &apiErr)

	switch {
	case errors.Is(err, ErrInvalidURL):
		return "Invalid URL"
	case errors.Is(err, ErrNoData):
		return "No data was found"
	case errors.Is(err, ErrDecoding):
		return "Error decoding"
	case errors.Is(err, ErrEncoding):
		return "Error encoding"
	case errors.Is(err, ErrServer) && hasStatus:
		return fmt.Sprintf("Server Error: %d", apiErr.StatusCode)
	case errors.Is(err, ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, ErrNotFound):
		return "Not Found"
	case errors.Is(err, ErrUnexpectedResponse) && hasStatus:
		return fmt.Sprintf("Unexpected Response: %d", apiErr.StatusCode)
	case errors.Is(err, ErrMissingImagePath):
		return "Missing Image"
	}

	msg := err.Error()
	msg = strings.TrimPrefix(msg, ErrUnknown.Error()+": ")
	return "Unknown Error: " + msg
}
