package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/aliskhannn/termquiz/internal/repository"
	"github.com/aliskhannn/termquiz/internal/service"
)

// errReported marks an error whose message has already been shown to the user.
var errReported = errors.New("already reported")

func reported(err error) error {
	return fmt.Errorf("%w: %w", errReported, err)
}

type HandlerFunc func(ctx context.Context) error

// withErrorHandling runs fn and turns its error into a user message and an exit code.
func (h *Handler) withErrorHandling(command string, fn HandlerFunc) func(ctx context.Context) int {
	return func(ctx context.Context) int {
		err := fn(ctx)
		if err == nil {
			return ExitOK
		}

		logFn := h.logger.Error
		if expectedError(err) {
			logFn = h.logger.Debug
		}
		logFn("handle error",
			zap.String("command", command),
			zap.Error(err),
		)

		if errors.Is(err, errReported) {
			return ExitError
		}
		h.reportError(err)
		return ExitError
	}
}

// expectedError reports whether err is one the player is told about in plain
// words, so it only needs a debug entry.
func expectedError(err error) bool {
	var fileErr *repository.FileError
	var rangeErr *service.OutOfRangeError
	switch {
	case errors.Is(err, errReported),
		errors.As(err, &fileErr),
		errors.As(err, &rangeErr),
		errors.Is(err, service.ErrNotEnoughQuestions),
		errors.Is(err, context.Canceled),
		errors.Is(err, io.EOF):
		return true
	}
	return false
}

// reportError prints the message matching err to stderr.
func (h *Handler) reportError(err error) {
	var fileErr *repository.FileError
	if errors.As(err, &fileErr) {
		h.printError(fileErrorMessage(fileErr))
		h.printError(msgFatal)
		return
	}

	var rangeErr *service.OutOfRangeError
	if errors.As(err, &rangeErr) {
		if rangeErr.BelowMinimum() {
			h.printError(msgMinQuestionNumber)
		} else {
			h.printError(msgMaxQuestionNumber(rangeErr.Max))
		}
		return
	}

	switch {
	case errors.Is(err, service.ErrNotEnoughQuestions):
		h.printError(msgNotEnoughQuestions)
	case errors.Is(err, context.Canceled), errors.Is(err, io.EOF):
		h.printError(msgGameEnded)
	default:
		h.printError(fmt.Sprintf("Error: %v", err))
	}
}

func fileErrorMessage(err *repository.FileError) string {
	switch {
	case errors.Is(err.Kind, repository.ErrNotFound):
		return msgFileNotFound(err.Path)
	case errors.Is(err.Kind, repository.ErrMalformedData):
		return msgFileMalformed(err.Path)
	default:
		return msgInvalidData(err.Path)
	}
}

func (h *Handler) printError(msg string) {
	fmt.Fprintln(h.stderr, h.palette.failure(msg))
}
