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
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrExaminerNotFound   = errors.New("examiner not found")
	ErrStudentNotFound    = errors.New("student not found")
)

// Module errors
var (
	ErrModuleNotFound       = errors.New("module not found")
	ErrModuleAlreadyExists  = errors.New("module with this code already exists")
	ErrWrongModulePassword  = errors.New("incorrect module password")
	ErrAlreadyRegistered    = errors.New("student is already registered for this module")
	ErrNoRegisteredStudents = errors.New("module has no registered students")
)

// Event and schedule errors
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrEventWindowInvalid  = errors.New("event end must be after its start")
	ErrEventWindowTooSmall = errors.New("event window cannot fit all schedules")
	ErrEventNoExaminers    = errors.New("event has no assigned examiners")
	ErrScheduleNotFound    = errors.New("schedule not found")
)

// Availability errors
var (
	ErrAvailabilityInPast = errors.New("availability date must be in the future")
	ErrNoSlotsProvided    = errors.New("at least one time slot is required")
	ErrInvalidTimeSlot    = errors.New("invalid time slot format")
)

// Reschedule errors
var (
	ErrRescheduleNotFound = errors.New("reschedule request not found")
	ErrReschedulePending  = errors.New("a pending reschedule request already exists for this schedule")
	ErrRescheduleTerminal = errors.New("reschedule request has already been decided")
)

// Evaluation errors
var (
	ErrGradeOutOfRange    = errors.New("grade must be between 0 and 100")
	ErrEvaluationNotFound = errors.New("evaluation not found")
)

// Notification and assignment errors
var (
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrAssignmentNotFound    = errors.New("assignment not found")
	ErrAssignmentDecided     = errors.New("assignment has already been responded to")
	ErrDeclineReasonRequired = errors.New("a reason is required when declining an assignment")
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

// NewValidationError creates a new custom error for failed input validation with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
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
