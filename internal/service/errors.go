package service

const (
	ErrInternalMessage         = "internal error"
	ErrTaskNotFoundMessage     = "task not found"
	ErrSubtaskNotFoundMessage  = "subtask not found"
	ErrContactNotFoundMessage  = "contact not found"
	ErrInvalidStatusMessage    = "unknown status, expected one of: to do, in progress, await feedback, done"
	ErrInvalidPrioMessage      = "priority must be urgent, medium or low"
	ErrInvalidCategoryMessage  = "category must be Technical Task or User Story"
	ErrInvalidTitleMessage     = "title is required and must not be too long"
	ErrInvalidDueDateMessage   = "due date is required in YYYY-MM-DD format"
	ErrDueDateInPastMessage    = "due date must not be in the past"
	ErrInvalidSubtaskMessage   = "subtask description is required"
	ErrUnknownAssigneeMessage  = "assigned contact does not exist"
	ErrInvalidNameMessage      = "name is required and must not be too long"
	ErrInvalidEmailMessage     = "email address is invalid"
	ErrInvalidPhoneMessage     = "phone may only contain digits, spaces and + - / ( )"
	ErrInvalidPasswordMessage  = "password length is invalid"
	ErrPasswordMismatchMessage = "passwords do not match"
	ErrPolicyMessage           = "the privacy policy must be accepted"
	ErrUserExistsMessage       = "email is already registered"
	ErrWrongCredentialsMessage = "wrong email or password"
	ErrInvalidTokenMessage     = "invalid or expired token"
)
