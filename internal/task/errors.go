package task

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors for errors.Is checks.
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrStorage           = errors.New("storage error")
	ErrMalformedDocument = errors.New("malformed document")
)

// TaskNotFoundError reports an identifier missing from the store.
type TaskNotFoundError struct {
	ID int
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("Task with ID %d not found", e.ID)
}

func (e *TaskNotFoundError) Is(target error) bool {
	return target == ErrTaskNotFound
}

// StorageError reports a failed read or write of the persisted document.
type StorageError struct {
	Op   string // "read", "encode" or "write"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	var pe *fs.PathError
	if errors.As(e.Err, &pe) {
		return fmt.Sprintf("IO error: %v", e.Err)
	}
	return fmt.Sprintf("IO error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// MalformedDocumentError reports persisted content that does not have the
// shape of a store document.
type MalformedDocumentError struct {
	Path string
	Err  error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("JSON error: %s: %v", e.Path, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}
