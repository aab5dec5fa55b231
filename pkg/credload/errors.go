package credload

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := l.Load(ctx, "users.txt", store)
//	if errors.Is(err, credload.ErrLeadingZeroPin) {
//	    // Handle a PIN such as 0123
//	}
var (
	// ErrSourceUnavailable indicates the source could not be opened or read.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrInvalidRecord is matched by every record validation failure below.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrMalformedRecord indicates a line does not split into exactly two fields on the delimiter.
	ErrMalformedRecord = errors.New("malformed record: expected <username>!<pin>")

	// ErrInvalidPinLength indicates the PIN field is not exactly PINLength characters.
	ErrInvalidPinLength = errors.New("PIN must be exactly 4 characters")

	// ErrLeadingZeroPin indicates the PIN starts with 0.
	ErrLeadingZeroPin = errors.New("PIN must not start with 0")

	// ErrNonNumericPin indicates the PIN contains a non-digit character.
	ErrNonNumericPin = errors.New("PIN must contain only digits")

	// ErrEmptyUsername indicates an empty username under a strict policy.
	ErrEmptyUsername = errors.New("username is empty")

	// ErrDuplicateUsername indicates a username repeated within one source under a strict policy.
	ErrDuplicateUsername = errors.New("username appears more than once")

	// ErrCommitFailed indicates the store rejected the commit. The store is unchanged.
	ErrCommitFailed = errors.New("commit failed")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the credential store could not be reached.
	ErrConnectionFailed = errors.New("connection failed")
)

// RecordError reports the line that failed validation and why.
// The message deliberately omits the record content so PINs never reach logs.
type RecordError struct {
	// Line is the 1-based line number within the source.
	Line int

	// Kind is one of the record sentinel errors.
	Kind error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Kind)
}

func (e *RecordError) Unwrap() error {
	return e.Kind
}

// Is makes every RecordError match ErrInvalidRecord in addition to its Kind.
func (e *RecordError) Is(target error) bool {
	return target == ErrInvalidRecord
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrSourceUnavailable):
		return ExitSourceUnavailable
	case errors.Is(err, ErrInvalidRecord):
		return ExitInvalidRecords
	case errors.Is(err, ErrCommitFailed):
		return ExitCommitFailed
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	usagePatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"required flag",
		"invalid argument",
		"missing required argument",
	}
	for _, pattern := range usagePatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
