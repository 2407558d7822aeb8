package model

import "fmt"

// ValidationError is a user-input precondition failure. Recovered locally:
// the operation is aborted, the user is alerted, nothing else changes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ProtocolError means watson's output did not match its expected shape.
// The offending operation is halted and prior state kept; the external
// source of truth could not be read reliably, so no retry is attempted.
type ProtocolError struct {
	Op     string
	Detail string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("unexpected output from 'watson %s': %s", e.Op, e.Detail)
}

// ExecutionError means a mutating watson invocation could not run at all.
type ExecutionError struct {
	Op  string
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("'watson %s' failed: %v", e.Op, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
