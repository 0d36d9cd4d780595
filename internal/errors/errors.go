package errors

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/lifedash/internal/logger"
)

var (
	// ErrNotFound is returned by stores when a requested record does not exist.
	ErrNotFound = stderrors.New("record not found")
	// ErrNotInitialized is returned when the store has not been created yet.
	ErrNotInitialized = stderrors.New("storage not initialized, run 'lifedash init' first")
)

// Format formats an error message with a consistent "Error: " prefix.
// sql.ErrNoRows is reported as ErrNotFound so users never see driver text.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if stderrors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
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
