// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package messaging

import (
	"errors"
	"fmt"
)

// Error codes the bot distinguishes. Everything else is reported to the
// operator through Reason and not acted on.
const (
	// ErrCodeForbidden is returned for rooms the bot may not read, join,
	// or leave.
	ErrCodeForbidden = "M_FORBIDDEN"
	// ErrCodeUnknownToken means the access token was revoked or expired.
	ErrCodeUnknownToken = "M_UNKNOWN_TOKEN"
	// ErrCodeNotFound is returned for missing state events and unknown
	// room aliases.
	ErrCodeNotFound = "M_NOT_FOUND"
)

// MatrixError is a non-2xx homeserver response that carried a JSON
// error body. Use errors.As or IsMatrixError to inspect it.
type MatrixError struct {
	Code       string `json:"errcode"`
	Message    string `json:"error"`
	StatusCode int    `json:"-"`
}

func (e *MatrixError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// IsMatrixError reports whether err wraps a *MatrixError with code.
func IsMatrixError(err error, code string) bool {
	var matrixErr *MatrixError
	return errors.As(err, &matrixErr) && matrixErr.Code == code
}

// Reason is the operator-facing text for a failed call: the
// homeserver's own message when err wraps a *MatrixError that has one,
// otherwise err.Error().
func Reason(err error) string {
	var matrixErr *MatrixError
	if errors.As(err, &matrixErr) && matrixErr.Message != "" {
		return matrixErr.Message
	}
	return err.Error()
}
