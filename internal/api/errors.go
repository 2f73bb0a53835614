package api

import "fmt"

// The three failure classes every caller sees. All are terminal for the
// user action that triggered them: the client never retries on its own.

// ValidationError is bad local input caught before any network call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// RequestError is an unreachable backend (connection refused, DNS,
// timeout). It is the most common developer-environment failure, so its
// message carries the actionable hint.
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request to %s failed: %v (is the backend running?)", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// APIError is a reachable backend returning non-2xx. Detail carries the
// backend-provided message verbatim when present.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}
