package llm

import "errors"

var (
	// ErrNotConfigured indicates the provider has no credentials.
	ErrNotConfigured = errors.New("AI service is not configured. Please set the API_KEY environment variable")

	// ErrProviderUnavailable indicates the model provider could not be reached
	// or refused the request.
	ErrProviderUnavailable = errors.New("AI service unavailable")

	// ErrTimeout indicates the caller's deadline passed before the model answered.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")
)
