package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Validator represents a validation function
type Validator[T any] func(T) error

// ValidatorChain allows chaining multiple validators
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add adds a validator to the chain
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate runs all validators in the chain
func (vc *ValidatorChain[T]) Validate(value T) error {
	for _, validator := range vc.validators {
		if err := validator(value); err != nil {
			return err
		}
	}
	return nil
}

// Common validation functions

// NotEmpty validates that a string is not empty
func NotEmpty(field string) Validator[string] {
	return func(value string) error {
		if value == "" {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: "cannot be empty",
			}
		}
		return nil
	}
}

// HasSuffix validates that a string has a specific suffix
func HasSuffix(field, suffix string) Validator[string] {
	return func(value string) error {
		if !strings.HasSuffix(value, suffix) {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: fmt.Sprintf("must end with '%s'", suffix),
			}
		}
		return nil
	}
}

// MatchesPattern validates that a string matches a regular expression
func MatchesPattern(field, pattern string) Validator[string] {
	re := regexp.MustCompile(pattern)
	return func(value string) error {
		if !re.MatchString(value) {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: fmt.Sprintf("must match pattern '%s'", pattern),
			}
		}
		return nil
	}
}

// NonNegative validates that an integer is zero or greater
func NonNegative(field string) Validator[int] {
	return func(value int) error {
		if value < 0 {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: "cannot be negative",
			}
		}
		return nil
	}
}

// UniqueStrings validates that all entries in a slice are distinct
func UniqueStrings(field string) Validator[[]string] {
	return func(values []string) error {
		seen := make(map[string]bool, len(values))
		for _, v := range values {
			if seen[v] {
				return ValidationError{
					Field:   field,
					Value:   v,
					Message: fmt.Sprintf("duplicate entry '%s'", v),
				}
			}
			seen[v] = true
		}
		return nil
	}
}

// NonEmptySlice validates that a slice has at least one element
func NonEmptySlice[T any](field string) Validator[[]T] {
	return func(values []T) error {
		if len(values) == 0 {
			return ValidationError{
				Field:   field,
				Value:   values,
				Message: "must have at least one entry",
			}
		}
		return nil
	}
}

// ValidIdentifier validates that a string is usable as a macro identifier
func ValidIdentifier(field string) Validator[string] {
	return MatchesPattern(field, `^[A-Za-z_][A-Za-z0-9_]*$`)
}
