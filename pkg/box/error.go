package model

import (
	"errors"
	"fmt"
	"strings"
)

// BoxError represents an error response from the box service
type BoxError struct {
	Code    string `json:"code"`              // Error code
	Message string `json:"message"`           // Error message
	Details string `json:"details,omitempty"` // Additional error details
}

var (
	// ErrToolTimeout is returned when the geometry tool does not finish in time
	ErrToolTimeout = errors.New("box tool timed out")
	// ErrNoOutput is returned when the tool exits cleanly without writing the PDF
	ErrNoOutput = errors.New("box tool produced no output file")
	// ErrNotPDF is returned when the tool output is not a PDF document
	ErrNotPDF = errors.New("box tool output is not a PDF")
	// ErrBoxNotFound is returned when a rendered box is no longer on disk
	ErrBoxNotFound = errors.New("box not found")
)

// ValidationErrors holds user-facing messages in form field order
type ValidationErrors []string

func (e ValidationErrors) Error() string {
	return strings.Join(e, " ")
}

// ToolError reports a geometry tool run that exited with a non-zero status
type ToolError struct {
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("box tool exited with status %d", e.ExitCode)
	}
	return fmt.Sprintf("box tool exited with status %d: %s", e.ExitCode, e.Stderr)
}
