package admin

import "fmt"

// Process exit codes for fatal command outcomes.
const (
	ExitUserExists        = 3
	ExitDuplicateUser     = 66
	ExitValidation        = 67
	ExitSecurityViolation = 68
	ExitBadCredentials    = 456
	ExitNoGroup           = 504
	ExitInvalidUserID     = 512
	ExitUnknownUser       = 513
)

// ExitError is a fatal, user-facing failure with a process exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitf(code int, cause error, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...), Err: cause}
}
