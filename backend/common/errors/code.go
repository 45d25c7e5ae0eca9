package errors

// Generic error codes
const (
	ErrInternalServer = "ERR_INTERNAL_SERVER"
	ErrInvalidParam   = "ERR_INVALID_PARAM"
)

// Account error codes
const (
	ErrEmptyID            = "ERR_EMPTY_ID"
	ErrUserNotFound       = "ERR_USER_NOT_FOUND"
	ErrEmptyCredentials   = "ERR_EMPTY_CREDENTIALS"
	ErrInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrUserDisabled       = "ERR_USER_DISABLED"
	ErrUsernameTaken      = "ERR_USERNAME_TAKEN"
	ErrUnauthenticated    = "ERR_UNAUTHENTICATED"
)

// Catalog error codes
const (
	ErrNoteNotFound          = "ERR_NOTE_NOT_FOUND"
	ErrSubjectNotFound       = "ERR_SUBJECT_NOT_FOUND"
	ErrProfileNotFound       = "ERR_PROFILE_NOT_FOUND"
	ErrProfileCreationFailed = "ERR_PROFILE_CREATION_FAILED"
	ErrStorageUnavailable    = "ERR_STORAGE_UNAVAILABLE"
)
