package upstream

import "fmt"

// AuthError means no usable access token could be obtained. It is the only
// fatal error in the pipeline; everything else is retried per segment.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("upstream auth: %s", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// HTTPStatusError is a non-success transport status from the upstream.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("upstream returned HTTP %d", e.StatusCode)
}

// APIError is a well-formed upstream response reporting an
// application-level failure (returnCode outside the accepted set).
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream returnCode %d", e.Code)
	}
	return fmt.Sprintf("upstream returnCode %d: %s", e.Code, e.Message)
}
