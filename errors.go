package facecam

import (
	"errors"
	"fmt"
)

var (
	// ErrCameraUnavailable is returned when the camera can not be opened or
	// returns no frame.  It is fatal to the capture loop
	ErrCameraUnavailable = errors.New("camera unavailable")
	// ErrDisplaySurface is returned when a frame can not be rendered.  It is
	// fatal to the capture loop
	ErrDisplaySurface = errors.New("display surface error")
	// ErrRemoteService wraps face analysis failures.  They are contained in
	// the annotation loop which skips the cycle
	ErrRemoteService = errors.New("remote service error")
	// ErrPaced is returned when an annotation cycle ends waiting for the
	// request limit.  It is local pacing, not a service failure
	ErrPaced = errors.New("request paced")
	// ErrSlotClosed is returned when a closed Slot is accessed
	ErrSlotClosed = errors.New("slot closed")
)

// OperationError annotates an error with the operation it occurred in and
// the annotation cycle, if any
type OperationError struct {
	Operation string
	CycleID   string
	Err       error
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}

	if e.CycleID != "" {
		return fmt.Sprintf("%s (cycle_id=%s): %v", e.Operation, e.CycleID, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

// NewOperationError wraps err with the operation and cycle it occurred in.
// Returns nil if err is nil
func NewOperationError(operation, cycleID string, err error) error {
	if err == nil {
		return nil
	}

	return &OperationError{Operation: operation, CycleID: cycleID, Err: err}
}

// wrapKind ensures err matches kind with errors.Is
func wrapKind(kind, err error) error {
	if errors.Is(err, kind) {
		return err
	}

	return fmt.Errorf("%w: %w", kind, err)
}
