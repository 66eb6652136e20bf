// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ExitCoder is implemented by errors that carry their own exit code.
type ExitCoder interface {
	ExitCode() int
}

// UsageError is a command-line mistake. It exits with status 2.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// ExitCode implements ExitCoder.
func (e *UsageError) ExitCode() int { return 2 }

// Usage returns a *UsageError with a formatted message.
func Usage(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// Fatal writes "error: err" to stderr and exits with ExitCode(err).
func Fatal(err error) {
	os.Exit(report(os.Stderr, err))
}

// ExitCode is the exit status for err: 0 for nil, the code of the first
// ExitCoder in the chain, otherwise 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

func report(output io.Writer, err error) int {
	fmt.Fprintf(output, "error: %v\n", err)
	return ExitCode(err)
}
