package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("access denied")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrAssigneeNotFound   = errors.New("assigned user does not exist")
	ErrUserHasTasks       = errors.New("user still has assigned tasks")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violated field of a request, not just the
// first one found.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
