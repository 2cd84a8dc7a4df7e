package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput marks unusable arguments: malformed digest literals,
	// unreadable or undersized video files.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a service that answered but has no matching subtitle.
	ErrNotFound = errors.New("subtitle not found")
	// ErrNetwork marks transport failures and non-2xx service responses.
	ErrNetwork = errors.New("network error")
	// ErrProtocol marks responses the client could not interpret.
	ErrProtocol = errors.New("protocol error")
	// ErrExtraction marks corrupt or empty subtitle archives.
	ErrExtraction = errors.New("extraction error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrNetwork
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Retriable reports whether a second service may still be worth asking after
// this failure. Invalid inputs stay invalid no matter who answers.
func Retriable(err error) bool {
	return err != nil && !errors.Is(err, ErrInvalidInput)
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
