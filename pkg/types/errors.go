package types

import "errors"

// UserError is an error whose message is safe to show to API clients.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError returns a UserError with the given message.
func NewUserError(msg string) error {
	return &UserError{Message: msg}
}

// IsUserError reports whether err wraps a UserError.
func IsUserError(err error) bool {
	var ue *UserError
	return errors.As(err, &ue)
}

// Store lifecycle errors.
var (
	ErrDetached        = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Data errors.
var (
	ErrMalformedID    = errors.New("malformed ID")
	ErrInvalidData    = errors.New("invalid document data")
	ErrInvalidName    = errors.New("invalid name")
	ErrInvalidKind    = errors.New("invalid type kind")
	ErrInvalidField   = errors.New("invalid field definition")
	ErrDuplicateField = errors.New("duplicate field definition")
	ErrInvalidTable   = errors.New("invalid table name")
	ErrTypeNotFound   = errors.New("type not found")
	ErrInvalidIndex   = errors.New("invalid index definition")
)
