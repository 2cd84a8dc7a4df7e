package main

import "fmt"

// exitCodeError propagates a process exit code through cobra without printing
// an extra error line.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
