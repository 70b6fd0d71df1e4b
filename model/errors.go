package model

import (
	"errors"
	"fmt"
)

// ErrNoPath is returned by Persist when the document has no path and none
// was given.
var ErrNoPath = errors.New("document has no path")

// PersistError represents a failed save.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// LoadError represents a failed open.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
