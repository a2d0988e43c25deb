package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an update targets a date that is not cached.
var ErrNotFound = errors.New("photo not found")

// RemoteFetchError wraps every failure of a call to the APOD API.
type RemoteFetchError struct {
	Op     string
	Status int
	Err    error
}

func (e *RemoteFetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote fetch %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("remote fetch %s: %v", e.Op, e.Err)
}

func (e *RemoteFetchError) Unwrap() error {
	return e.Err
}

// StoreWriteError is returned when the storage engine rejects a write.
type StoreWriteError struct {
	Op  string
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}
