package zermelo

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyAccessToken is returned (wrapped in an AuthError) when the token
// endpoint answers 2xx without a usable access_token.
var ErrEmptyAccessToken = errors.New("token endpoint returned an empty access_token")

// AuthError reports a failed authorization code exchange. StatusCode is the
// HTTP status when the server answered with a non-2xx response, else 0.
type AuthError struct {
	StatusCode int
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("token exchange failed (HTTP %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("token exchange failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// FetchError reports a failed appointments query. StatusCode is the HTTP
// status when the server answered with a non-2xx response, else 0.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("appointments query failed (HTTP %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("appointments query failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Unauthorized reports whether the server rejected the credentials.
func (e *FetchError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
