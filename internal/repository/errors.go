package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that no record matches the given id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey reports a unique index violation.
	ErrDuplicateKey = errors.New("duplicate key")
)

// PersistenceError wraps a backend connectivity or query failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistenceErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

func duplicateKeyErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrDuplicateKey, err)
}
