package model

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrStorage      = errors.New("storage failure")
	ErrNotification = errors.New("notification delivery failed")

	// ErrStoreUnavailable is returned by every store call after a restore
	// left no open handle behind.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports caller input that was rejected before touching storage.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports an operation that targeted a missing row.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StorageError wraps I/O failures against the persisted store, backup and
// restore included.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// NotificationDeliveryError is logged and swallowed by the reminder checks.
type NotificationDeliveryError struct {
	Sink string
	Err  error
}

func (e *NotificationDeliveryError) Error() string {
	return fmt.Sprintf("deliver notification via %s: %v", e.Sink, e.Err)
}

func (e *NotificationDeliveryError) Unwrap() error { return e.Err }

func (e *NotificationDeliveryError) Is(target error) bool { return target == ErrNotification }

// Storage wraps err as a StorageError unless it is nil or already classified.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorage) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
