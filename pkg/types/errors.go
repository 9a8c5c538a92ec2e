package types

import "fmt"

// PrereqError reports a missing prerequisite detected before the execution
// service is invoked (no signer, or an uninitialized execution client).
type PrereqError struct {
	Message string
}

func (e *PrereqError) Error() string {
	return e.Message
}

// ExecutionError wraps a rejection from the execution service (wallet denial,
// simulation failure, network error). The original cause is preserved.
type ExecutionError struct {
	Message string
	Cause   error
}

func (e *ExecutionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("execution rejected: %v", e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}
