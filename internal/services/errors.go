package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTransient     = errors.New("transient failure")
)

// ErrorClassifier allows errors to declare their classification. Lifecycle
// errors implement this so callers can tell user mistakes (validation,
// forbidden) from retryable conflicts without matching concrete types.
type ErrorClassifier interface {
	ErrorKind() string
}

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps an error to the sentinel marker that best describes it,
// consulting ErrorClassifier implementations first.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		switch classifier.ErrorKind() {
		case "validation":
			return ErrValidation
		case "forbidden":
			return ErrForbidden
		case "conflict":
			return ErrConflict
		}
	}
	switch {
	case errors.Is(err, ErrValidation):
		return ErrValidation
	case errors.Is(err, ErrForbidden):
		return ErrForbidden
	case errors.Is(err, ErrConflict):
		return ErrConflict
	case errors.Is(err, ErrConfiguration):
		return ErrConfiguration
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	default:
		return ErrTransient
	}
}

// Retryable reports whether the caller should re-fetch and retry rather than
// surface the error to the user. Only optimistic-concurrency conflicts are
// retryable; user and configuration mistakes are not.
func Retryable(err error) bool {
	return Classify(err) == ErrConflict
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
