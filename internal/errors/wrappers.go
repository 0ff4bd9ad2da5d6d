package errors

import "fmt"

// Common error wrapping patterns used throughout the codebase

// WrapParseError wraps an error with a "failed to parse" message
func WrapParseError(item string, cause error) *SyntaxError {
	message := fmt.Sprintf("failed to parse %s", item)
	return &SyntaxError{
		BaseError: Wrap(SyntaxErrorCode, message, cause),
	}
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// WrapProfileError wraps profile loading errors with the profile path
func WrapProfileError(path, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s profile '%s'", operation, path)
	return Wrap(ProfileErrorCode, message, cause).
		WithLocation(SourceLocation{File: path}).
		WithContext("operation", operation)
}

// WrapGenerationError wraps an error raised while producing the artifact
func WrapGenerationError(stage string, cause error) *BaseError {
	message := fmt.Sprintf("generation failed during %s", stage)
	return Wrap(GenerationErrorCode, message, cause).
		WithContext("stage", stage)
}

// Convenience functions for common operations

// ConfigurationError creates a configuration error without wrapping
func ConfigurationError(configType, message string) *BaseError {
	fullMessage := fmt.Sprintf("configuration error in '%s': %s", configType, message)
	return New(ConfigurationErrorCode, fullMessage).
		WithContext("config_type", configType)
}

// FileSystemError creates a file system error without wrapping
func FileSystemError(operation, path, message string) *BaseError {
	fullMessage := fmt.Sprintf("failed to %s file '%s': %s", operation, path, message)
	return New(FileSystemErrorCode, fullMessage).
		WithContext("operation", operation).
		WithContext("path", path)
}

// ProfileError creates a profile error without wrapping
func ProfileError(path, message string) *BaseError {
	fullMessage := fmt.Sprintf("profile error in '%s': %s", path, message)
	return New(ProfileErrorCode, fullMessage).
		WithLocation(SourceLocation{File: path})
}

// Error collection helpers

// AddToMultiple adds an error to a MultipleErrors, creating it if nil
func AddToMultiple(multiple **MultipleErrors, err GenError) {
	if *multiple == nil {
		*multiple = NewMultipleErrors()
	}
	(*multiple).Add(err)
}

// AddValidationError adds a validation error to a collection
func AddValidationError(multiple **MultipleErrors, field, expected, actual string) {
	AddToMultiple(multiple, NewValidationError(field, expected, actual))
}

// AddVerificationError adds a verification error to a collection
func AddVerificationError(multiple **MultipleErrors, artifact, rule, message string) {
	AddToMultiple(multiple, NewVerificationError(artifact, rule, message))
}
