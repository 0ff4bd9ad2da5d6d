package errors

import "fmt"

// ValidationError represents a profile or configuration validation error
type ValidationError struct {
	*BaseError
	Field      string      // field that failed validation
	Value      interface{} // the value that failed validation
	Expected   string      // what was expected
	Actual     string      // what was provided
	Constraint string      // the validation constraint that failed
}

// NewValidationError creates a new validation error
func NewValidationError(field, expected, actual string) *ValidationError {
	message := fmt.Sprintf("validation failed for field '%s': expected %s, got %s", field, expected, actual)

	return &ValidationError{
		BaseError: New(ValidationErrorCode, message),
		Field:     field,
		Expected:  expected,
		Actual:    actual,
	}
}

// NewValidationErrorWithValue creates a validation error with the actual value
func NewValidationErrorWithValue(field string, value interface{}, constraint string) *ValidationError {
	message := fmt.Sprintf("validation failed for field '%s': %s", field, constraint)

	return &ValidationError{
		BaseError:  New(ValidationErrorCode, message),
		Field:      field,
		Value:      value,
		Constraint: constraint,
	}
}

// WithValue sets the value that failed validation
func (e *ValidationError) WithValue(value interface{}) *ValidationError {
	e.Value = value
	return e
}

// WithConstraint sets the constraint that failed
func (e *ValidationError) WithConstraint(constraint string) *ValidationError {
	e.Constraint = constraint
	return e
}

// WithLocation adds location information to the error
func (e *ValidationError) WithLocation(loc SourceLocation) *ValidationError {
	e.BaseError.WithLocation(loc)
	return e
}

// WithContext adds context data to the error
func (e *ValidationError) WithContext(key string, value interface{}) *ValidationError {
	e.BaseError.WithContext(key, value)
	return e
}

// WithSuggestion adds a helpful suggestion
func (e *ValidationError) WithSuggestion(suggestion string) *ValidationError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// SyntaxError represents a parse error in an emitted artifact
type SyntaxError struct {
	*BaseError
	Token    string // the token that caused the error
	Position int    // position in the input where error occurred
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message),
	}
}

// NewSyntaxErrorWithToken creates a syntax error with token information
func NewSyntaxErrorWithToken(message, token string, position int) *SyntaxError {
	if token != "" {
		message = fmt.Sprintf("%s (near token '%s')", message, token)
	}

	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message),
		Token:     token,
		Position:  position,
	}
}

// WithToken sets the problematic token
func (e *SyntaxError) WithToken(token string) *SyntaxError {
	e.Token = token
	return e
}

// WithPosition sets the position where the error occurred
func (e *SyntaxError) WithPosition(position int) *SyntaxError {
	e.Position = position
	return e
}

// WithLocation adds location information to the error
func (e *SyntaxError) WithLocation(loc SourceLocation) *SyntaxError {
	e.BaseError.WithLocation(loc)
	return e
}

// WithContext adds context data to the error
func (e *SyntaxError) WithContext(key string, value interface{}) *SyntaxError {
	e.BaseError.WithContext(key, value)
	return e
}

// VerificationError represents a structural violation found in an artifact
type VerificationError struct {
	*BaseError
	Artifact string // path of the artifact being verified
	Rule     string // the structural rule that was violated
}

// NewVerificationError creates a new verification error
func NewVerificationError(artifact, rule, message string) *VerificationError {
	full := fmt.Sprintf("verification failed for '%s': %s", artifact, message)

	return &VerificationError{
		BaseError: New(VerificationErrorCode, full).
			WithContext("artifact", artifact).
			WithContext("rule", rule),
		Artifact: artifact,
		Rule:     rule,
	}
}

// WithLocation adds location information to the error
func (e *VerificationError) WithLocation(loc SourceLocation) *VerificationError {
	e.BaseError.WithLocation(loc)
	return e
}

// DriftError reports a divergence between an artifact on disk and the
// output the current configuration would produce
type DriftError struct {
	*BaseError
	Artifact string // path of the artifact that drifted
	LineNum  int    // first divergent line (1-based, 0 when sizes differ)
	Expected string // line the generator would emit
	Actual   string // line found on disk
}

// NewDriftError creates a new drift error for the first divergent line
func NewDriftError(artifact string, lineNum int, expected, actual string) *DriftError {
	message := fmt.Sprintf("artifact '%s' is out of date (first difference at line %d)", artifact, lineNum)
	if lineNum == 0 {
		message = fmt.Sprintf("artifact '%s' is out of date (line count differs)", artifact)
	}

	return &DriftError{
		BaseError: New(DriftErrorCode, message).
			WithLocation(SourceLocation{File: artifact, Line: lineNum}).
			WithContext("expected", expected).
			WithContext("actual", actual).
			WithSuggestion("Re-run the generator to refresh the artifact"),
		Artifact: artifact,
		LineNum:  lineNum,
		Expected: expected,
		Actual:   actual,
	}
}
