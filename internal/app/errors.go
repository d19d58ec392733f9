package app

import "fmt"

// DomainError is a user-correctable failure. Message is the reply sent
// back to the user; anything that is not a DomainError is an internal
// failure and must not leak its details into chat.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func validationError(message string) *DomainError {
	return &DomainError{Code: "VALIDATION", Message: message}
}

func notFoundError(message string) *DomainError {
	return &DomainError{Code: "NOT_FOUND", Message: message}
}
