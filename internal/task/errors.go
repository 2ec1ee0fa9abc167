package task

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTitle rejects an Add or Edit whose trimmed title is empty.
	// The store is left untouched.
	ErrEmptyTitle = errors.New("title is required")

	// ErrNotFound reports an operation targeting an id that is not in
	// the list.
	ErrNotFound = errors.New("task not found")
)

// PersistError wraps a failed save. The in-memory mutation that
// triggered the save is kept; callers report the failure and carry on
// with the list as the source of truth.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
