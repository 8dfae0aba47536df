package cmd

import "fmt"

// ExitError carries a process exit code out of a command. Quiet errors have
// already been reported to the user and should not be printed again.
type ExitError struct {
	Code  int
	Err   error
	Quiet bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}
