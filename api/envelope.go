package api

// Envelope is the shape of every response produced by the remote API.
// On success=false, Data is null and Errors lists human readable messages.
type Envelope[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data"`
	Errors  []string `json:"errors"`
}

func OK[T any](message string, data T) Envelope[T] {
	return Envelope[T]{Success: true, Message: message, Data: &data}
}

func Fail(message string, errs ...string) Envelope[struct{}] {
	if len(errs) == 0 {
		errs = []string{message}
	}
	return Envelope[struct{}]{Success: false, Message: message, Errors: errs}
}
