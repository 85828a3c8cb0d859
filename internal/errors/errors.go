package errors

import (
	"errors"
	"fmt"
)

// PipelineError is a structured error with a stable code, used everywhere the
// pipeline needs to classify a failure for the summary or the exit path.
type PipelineError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause for errors.Is/As
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is matches any PipelineError carrying the same code
func (e *PipelineError) Is(target error) bool {
	var pe *PipelineError
	if errors.As(target, &pe) {
		return pe.Code == e.Code
	}
	return false
}

// New creates a new PipelineError with the given code and message
func New(code, message string) *PipelineError {
	return &PipelineError{Code: code, Message: message}
}

// Wrap creates a new PipelineError wrapping a cause
func Wrap(code, message string, err error) *PipelineError {
	return &PipelineError{Code: code, Message: message, Err: err}
}

// Predefined error types for common scenarios
var (
	// Per-file, recoverable: the file is skipped and recorded in the summary
	ErrHeaderNotFound = New("HEADER_NOT_FOUND", "header row not found")
	ErrMissingColumns = New("MISSING_COLUMNS", "mandatory columns not found")

	// Fatal: nothing to process
	ErrNoInputFiles = New("NO_INPUT_FILES", "no spreadsheet files found in input directory")

	// Fatal: cannot produce output
	ErrWriteFailed = New("WRITE_ERROR", "failed to write output")
)

// HeaderNotFound creates a per-file header detection error
func HeaderNotFound(file string) *PipelineError {
	return Wrap("HEADER_NOT_FOUND", "header row not found", fmt.Errorf("file %s", file))
}

// MissingColumns creates a per-file mandatory column error
func MissingColumns(file string, missing []string) *PipelineError {
	return Wrap("MISSING_COLUMNS", "mandatory columns not found", fmt.Errorf("file %s missing %v", file, missing))
}

// NoInputFiles creates the fatal empty-input-directory error
func NoInputFiles(dir string) *PipelineError {
	return Wrap("NO_INPUT_FILES", "no spreadsheet files found in input directory", fmt.Errorf("directory %s", dir))
}

// WriteFailed creates the fatal output error
func WriteFailed(path string, err error) *PipelineError {
	return Wrap("WRITE_ERROR", fmt.Sprintf("failed to write %s", path), err)
}
