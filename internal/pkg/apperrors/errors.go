package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")
	ErrRoleNotAllowed   = errors.New("role not allowed for this action")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Course errors
var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrNotCourseTeacher  = errors.New("user is not a teacher of this course")
	ErrNotCourseStudent  = errors.New("user is not enrolled in this course")
	ErrMemberRoleInvalid = errors.New("user role does not match the membership set")
)

// Enrollment errors
var (
	ErrEnrollmentNotFound     = errors.New("enrollment request not found")
	ErrEnrollmentFinalized    = errors.New("enrollment request has already been finalized")
	ErrEnrollmentResubmission = errors.New("a rejected enrollment request blocks resubmission")
)

// Domain resource errors
var (
	ErrAssignmentNotFound     = errors.New("assignment not found")
	ErrSubmissionNotFound     = errors.New("submission not found")
	ErrAlreadySubmitted       = errors.New("submission already exists for this student")
	ErrQuizNotFound           = errors.New("quiz not found")
	ErrQuestionNotFound       = errors.New("question not found")
	ErrThreadNotFound         = errors.New("discussion thread not found")
	ErrPostNotFound           = errors.New("discussion post not found")
	ErrForumNotFound          = errors.New("forum not found")
	ErrEventNotFound          = errors.New("event not found")
	ErrCourseResourceNotFound = errors.New("course resource not found")
	ErrProfileNotFound        = errors.New("profile not found")
	ErrFriendRequestNotFound  = errors.New("friend request not found")
	ErrFriendRequestExists    = errors.New("friend request already exists")
	ErrAlreadyFollowing       = errors.New("already following this user")
	ErrAlreadyConnected       = errors.New("users are already connected")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}
