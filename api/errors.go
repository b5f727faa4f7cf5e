package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingAccessToken = errors.New("response did not contain an access token")
	ErrInvalidBaseURL     = errors.New("invalid base URL")
)

// Error is an application-level failure reported by the API: either an
// envelope with success=false or a non-2xx status.
type Error struct {
	Status  int
	Message string
	Errors  []string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	if len(e.Errors) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(e.Errors, "; "))
	}
	return fmt.Sprintf("api %d: %s", e.Status, msg)
}

// StatusOf returns the HTTP status carried by an *Error in err's chain, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
