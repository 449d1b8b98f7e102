package services

import (
	"errors"
	"fmt"
)

var (
	ErrReportNotFound     = errors.New("report not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrEvidenceNotFound   = errors.New("evidence not found")
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
