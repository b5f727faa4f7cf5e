package selection

import "errors"

var (
	ErrSwitchFailed = errors.New("store switch failed")
	ErrNoStore      = errors.New("no store given")
)
