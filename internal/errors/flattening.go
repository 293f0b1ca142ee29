package errors

import (
	"fmt"
	"strings"
)

// SyntaxError represents a malformed dispatch marker or annotation
type SyntaxError struct {
	*BaseError
}

// NewSyntaxError creates a syntax error for a malformed marker
func NewSyntaxError(message string, loc SourceLocation) *SyntaxError {
	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message).WithLocation(loc),
	}
}

// WithSuggestion adds a suggestion while preserving the concrete type
func (e *SyntaxError) WithSuggestion(suggestion string) *SyntaxError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// ValidationError represents invalid extracted metadata
type ValidationError struct {
	*BaseError
	Field string // the field that failed validation
}

// NewValidationError creates a validation error for a specific field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		BaseError: New(ValidationErrorCode, message).WithContext("field", field),
		Field:     field,
	}
}

// CyclicInheritanceError reports a cycle in the base-reference graph. The
// recursive resolver assumes a DAG; a genuine cycle would recurse without
// bound, so resolution fails fast with the offending path instead.
type CyclicInheritanceError struct {
	*BaseError
	Path []string // interface names along the cycle, in resolution order
}

// NewCyclicInheritanceError creates a cycle error from the resolution path
func NewCyclicInheritanceError(path []string) *CyclicInheritanceError {
	message := fmt.Sprintf("cyclic inheritance detected: %s", strings.Join(path, " -> "))
	return &CyclicInheritanceError{
		BaseError: New(CyclicInheritanceErrorCode, message).
			WithContext("path", path).
			WithSuggestion("Remove the embedding that closes the cycle"),
		Path: path,
	}
}

// GenerationError represents a failure while rendering generated code
type GenerationError struct {
	*BaseError
	TargetFile string // file that failed to generate
}

// NewGenerationError creates a generation error for a target file
func NewGenerationError(targetFile, message string) *GenerationError {
	return &GenerationError{
		BaseError:  New(GenerationErrorCode, message).WithContext("target_file", targetFile),
		TargetFile: targetFile,
	}
}
