package api

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when a request requires a credential and
// none is stored. No network call is made in that case.
var ErrUnauthenticated = errors.New("not authenticated")

// RemoteError is a non-success response from the ordering service. The
// message comes from the response's detail field when present.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// UnreachableError means no response was received at all.
type UnreachableError struct {
	Cause error
}

func (e *UnreachableError) Error() string {
	return "api: service unreachable: " + e.Cause.Error()
}

func (e *UnreachableError) Unwrap() error {
	return e.Cause
}
