package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Validation errors
	ErrBadRequest = errors.New("bad request")

	// Soft-auth failures. These map to 202 responses for frontend
	// compatibility, not to 401.
	ErrEmailNotVerified  = errors.New("email not verified")
	ErrIncorrectPassword = errors.New("incorrect password")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Token errors
	ErrTokenInvalid = errors.New("invalid or expired token")
)

// Classroom errors
var (
	ErrClassroomAlreadyExists = errors.New("private classroom already exists")
)

// Chat errors
var (
	ErrChatFieldsRequired = errors.New("all fields are required")
)

// Room errors
var (
	ErrRoomNotFound = errors.New("room not found")
)

// Note errors
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrFileNotFound = errors.New("file not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewBadRequestError creates a validation error carrying a specific message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewNotFoundError creates a not-found error carrying a specific message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// ContentRejectedError is returned when the moderation gateway classifies
// uploaded content as inappropriate. The result code and details are
// surfaced to the caller.
type ContentRejectedError struct {
	Reason  string
	Details string
}

func (e *ContentRejectedError) Error() string {
	return "Content flagged as inappropriate for educational use."
}

// IsContentRejected reports whether err is a moderation rejection
func IsContentRejected(err error) (*ContentRejectedError, bool) {
	var cr *ContentRejectedError
	if errors.As(err, &cr) {
		return cr, true
	}
	return nil, false
}
