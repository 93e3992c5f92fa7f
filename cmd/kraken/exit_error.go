package main

import "fmt"

// ExitError signals a non-zero exit code without calling os.Exit inside
// RunE handlers. Err is nil when the user has already been told why.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
