package errors

import (
	"errors"
	"fmt"
)

// Standard service-related errors
var (
	ErrNotConfigured     = errors.New("Sublight login has not been configured")
	ErrServiceResponse   = errors.New("sublight: response indicates error")
	ErrIllegalLanguage   = errors.New("sublight: illegal language")
	ErrTicketWaitTooLong = errors.New("sublight: download ticket wait exceeds limit")

	// Application/Flow specific errors
	ErrUnsupported  = errors.New("client: operation not supported")
	ErrNoSubtitle   = errors.New("archive: no subtitle file found")
	ErrInvalidImdb  = errors.New("sublight: invalid imdb id")
	ErrInvalidInput = errors.New("client: invalid input")
)

// ServiceError is returned when a remote response carries an error indicator.
type ServiceError struct {
	Op      string
	Message string
}

func (e *ServiceError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("Response indicates error: %s", e.Message)
	}
	return fmt.Sprintf("%s: Response indicates error: %s", e.Op, e.Message)
}

// Is lets errors.Is match ErrServiceResponse.
func (e *ServiceError) Is(target error) bool {
	return target == ErrServiceResponse
}

// LanguageError reports a language name that maps to no remote language.
type LanguageError struct {
	Name string
}

func (e *LanguageError) Error() string {
	return "Illegal language: " + e.Name
}

func (e *LanguageError) Is(target error) bool {
	return target == ErrIllegalLanguage
}

// CheckError converts a remote error indicator into a ServiceError.
// A nil or empty indicator means success.
func CheckError(op string, indicator *string) error {
	if indicator == nil || *indicator == "" {
		return nil
	}
	return &ServiceError{Op: op, Message: *indicator}
}
