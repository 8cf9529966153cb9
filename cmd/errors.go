package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/josephgoksu/smarttask/internal/util"
	"github.com/josephgoksu/smarttask/models"
	"github.com/spf13/viper"
)

// HandleError prints the error and exits with status 1.
func HandleError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// PrintError prints an error message without exiting, allowing for recovery.
// With --verbose the underlying technical error is printed instead.
func PrintError(userMsg string, technicalErr error) {
	if technicalErr != nil {
		slog.Error(userMsg, "error", technicalErr)
	}
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// LogError logs an error without printing to stderr if verbose mode is off.
func LogError(msg string, err error) {
	if err != nil {
		slog.Debug(msg, "error", err)
	} else {
		slog.Debug(msg)
	}
	if viper.GetBool("verbose") {
		if err != nil {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s: %v\n", msg, err)
		} else {
			fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)
		}
	}
}

// userMessage turns an error from a command into a short message for people.
func userMessage(err error) string {
	var (
		verr *task.ValidationError
		derr *models.DeserializationError
	)
	switch {
	case errors.Is(err, task.ErrNotFound):
		return fmt.Sprintf("Error: %v. Run 'smarttask list --all' to see task ids.", err)
	case errors.As(err, &verr):
		return fmt.Sprintf("Error: %v.", verr)
	case errors.Is(err, util.ErrInvalidID), errors.Is(err, util.ErrSelfRef):
		return fmt.Sprintf("Error: %v.", err)
	case errors.As(err, &derr):
		return fmt.Sprintf("Error: the task data is invalid at %s. Run 'smarttask doctor' for details.", derr.Path)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
