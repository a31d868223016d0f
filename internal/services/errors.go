package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCredentialMissing indicates no TMDB credential is configured and the
	// user declined to supply one.
	ErrCredentialMissing = errors.New("credential missing")
	// ErrLookup indicates a transport or service failure during search or
	// details. Always recoverable by retry or cancel; never mutates the store.
	ErrLookup = errors.New("lookup failed")
	// ErrDuplicate indicates an add was rejected because the title exists.
	// A normal negative result, not an exception.
	ErrDuplicate = errors.New("duplicate title")
	// ErrValidation indicates input was rejected before persistence.
	ErrValidation = errors.New("validation error")
	// ErrPosterFetch indicates poster image bytes could not be retrieved.
	// Purely cosmetic; callers degrade to a placeholder.
	ErrPosterFetch = errors.New("poster fetch failed")
	// ErrConfiguration indicates unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound indicates a referenced record does not exist.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrLookup
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsUserFacing reports whether an error represents a normal negative result
// that should be presented as information rather than a failure.
func IsUserFacing(err error) bool {
	return errors.Is(err, ErrDuplicate) || errors.Is(err, ErrNotFound)
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
		return "operation failure"
	}
	return strings.Join(parts, ": ")
}
