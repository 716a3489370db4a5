package providers

import (
	"fmt"
	"strings"
)

// UnknownProviderError reports a provider id missing from the registry.
type UnknownProviderError struct {
	ID        string
	Available []string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q (available: %s)", e.ID, strings.Join(e.Available, ", "))
}

// MissingCredentialError reports an unset or empty API key variable.
type MissingCredentialError struct {
	Provider string
	EnvKey   string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing %s environment variable for provider %s", e.EnvKey, e.Provider)
}

// ResponseTooLargeError reports that the response body exceeded the read limit.
type ResponseTooLargeError struct {
	Limit int64
}

func (e ResponseTooLargeError) Error() string {
	return fmt.Sprintf("response body exceeded limit of %d bytes", e.Limit)
}
