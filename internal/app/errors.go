package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the editor should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrNoWindows indicates the editor was started without any window.
	ErrNoWindows = errors.New("no windows")

	// ErrTerminalTooSmall indicates the terminal cannot hold a window
	// and the echo line.
	ErrTerminalTooSmall = errors.New("terminal too small")
)

// OperationError represents an error that occurred during a specific
// operation.
type OperationError struct {
	Op     string // operation name, e.g. "resize", "update"
	Target string // target of the operation, e.g. a file path
	Err    error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
