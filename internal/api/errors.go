package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers network failures and non-envelope HTTP errors.
	ErrTransport = errors.New("backend unreachable")
	// ErrRejected is wrapped by every *RejectedError.
	ErrRejected = errors.New("backend rejected request")
	// ErrMalformed means the response envelope itself could not be read.
	ErrMalformed = errors.New("malformed backend response")
)

// RejectedError is a `success: false` answer from the backend.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend rejected request (status %d)", e.Status)
	}
	return fmt.Sprintf("backend rejected request (status %d): %s", e.Status, e.Message)
}

func (e *RejectedError) Unwrap() error { return ErrRejected }
