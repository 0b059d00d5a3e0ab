package services

import "fmt"

// Typed errors returned by services. Handlers map these to HTTP statuses.

type ConfigError struct{ Message string }

func (e *ConfigError) Error() string { return e.Message }

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

type EmptyDocumentError struct{ Filename string }

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("no text could be extracted from %s", e.Filename)
}

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }

type TransportError struct{ Err error }

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to connect to Gemini API: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Gemini API returned status %d: %s", e.StatusCode, e.Body)
}

type MalformedResponseError struct{}

func (e *MalformedResponseError) Error() string {
	return "unexpected response format from Gemini API"
}
