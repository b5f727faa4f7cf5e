package session

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrIncompleteAuth   = errors.New("user and token must be set together")
)
