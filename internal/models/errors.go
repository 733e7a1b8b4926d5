package models

import "fmt"

// ExtractionFailedError reports bytes that could not be parsed as the claimed format.
type ExtractionFailedError struct {
	Format FileType
	Cause  error
}

func (e *ExtractionFailedError) Error() string {
	return fmt.Sprintf("failed to extract %s text: %v", e.Format, e.Cause)
}

func (e *ExtractionFailedError) Unwrap() error { return e.Cause }

// UnsupportedTypeError reports an upload no extractor accepts.
type UnsupportedTypeError struct {
	MimeType string
	Filename string
}

func (e *UnsupportedTypeError) Error() string {
	mimeType := e.MimeType
	if mimeType == "" {
		mimeType = "unknown"
	}
	return fmt.Sprintf("unsupported file type: %s", mimeType)
}

// ModelUnavailableError wraps a failed call to the language model.
// Its message is the cause's message, unchanged.
type ModelUnavailableError struct {
	Cause error
}

func (e *ModelUnavailableError) Error() string {
	if e.Cause == nil {
		return "model unavailable"
	}
	return e.Cause.Error()
}

func (e *ModelUnavailableError) Unwrap() error { return e.Cause }
