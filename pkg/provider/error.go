package provider

import (
	"fmt"
)

// AuthError reports a missing or rejected upstream credential.
type AuthError struct {
	Provider string
	Message  string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Provider + ": " + e.Message
	}

	return e.Provider + ": invalid or missing api key"
}

// RateLimitError reports upstream throttling. Callers may retry later,
// this package never retries on its own.
type RateLimitError struct {
	Provider string
}

func (e *RateLimitError) Error() string {
	return e.Provider + ": rate limit exceeded"
}

// TimeoutError reports an upstream call that exceeded its deadline.
type TimeoutError struct {
	Provider string
}

func (e *TimeoutError) Error() string {
	return e.Provider + ": request timed out"
}

// RequestError is any other upstream failure, carrying the upstream's
// parsed diagnostic text when one could be extracted.
type RequestError struct {
	Provider string
	Status   int
	Message  string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}

	return fmt.Sprintf("%s: request failed (status %d)", e.Provider, e.Status)
}
