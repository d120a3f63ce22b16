package ai

import "fmt"

// GenerationError signals that the model call itself failed.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generationError: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ParseError signals that the cleaned model output was not usable JSON.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parseError: %s", e.Message)
}

// FormatError signals that a present analysis field had the wrong shape.
type FormatError struct {
	Field string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("formatError: field %q must be a list", e.Field)
}
