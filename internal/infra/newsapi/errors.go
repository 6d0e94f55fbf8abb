package newsapi

import (
	"errors"
	"fmt"
)

// ErrAPIKeyMissing indicates that no upstream API key is configured.
// Any fetch attempt without a key is refused at client construction.
var ErrAPIKeyMissing = errors.New("newsapi: API key not configured")

// SourceUnavailableError indicates that the upstream could not be reached:
// transport failure, timeout, or an open circuit breaker. Retryable by the
// scheduled task.
type SourceUnavailableError struct {
	Err error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("news source unavailable: %v", e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// SourceRejectedError indicates that the upstream answered but reported a
// logical error in its payload. Not usefully retryable without changing
// request parameters.
type SourceRejectedError struct {
	Code    string
	Message string
}

func (e *SourceRejectedError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("news source rejected request (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("news source rejected request: %s", e.Message)
}
