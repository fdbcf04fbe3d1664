package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/moodlog/internal/logger"
)

var (
	// ErrConflict is returned when a compare-and-swap write keeps losing to
	// concurrent writers
	ErrConflict = stderrors.New("store was modified concurrently")
	// ErrMalformed is returned when a stored value cannot be decoded
	ErrMalformed = stderrors.New("stored value is malformed")
	// ErrUnknownMood is returned when a mood label is not in the catalog
	ErrUnknownMood = stderrors.New("unknown mood")
)

// StorageReadError reports that the store could not be read or that its
// contents could not be decoded.
type StorageReadError struct {
	Key string
	Err error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("failed to read %q: %v", e.Key, e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }

// StorageWriteError reports that the store could not be persisted.
type StorageWriteError struct {
	Key string
	Err error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("failed to write %q: %v", e.Key, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

// IsReadError reports whether err is or wraps a StorageReadError
func IsReadError(err error) bool {
	var target *StorageReadError
	return stderrors.As(err, &target)
}

// IsWriteError reports whether err is or wraps a StorageWriteError
func IsWriteError(err error) bool {
	var target *StorageWriteError
	return stderrors.As(err, &target)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
