package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sasanktumpati/delegate/internal/providers"
)

// UsageError reports invalid command-line input.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func usageError(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// PrintError writes err to w in the form users see on stderr.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}

	var (
		usage   *UsageError
		unknown *providers.UnknownProviderError
		missing *providers.MissingCredentialError
	)
	switch {
	case errors.As(err, &unknown):
		fmt.Fprintf(w, "Unknown provider: %s\n", unknown.ID)
		fmt.Fprintf(w, "Available: %s\n", strings.Join(unknown.Available, ", "))
	case errors.As(err, &missing):
		fmt.Fprintf(w, "Missing %s environment variable\n", missing.EnvKey)
	case errors.As(err, &usage):
		fmt.Fprintf(w, "Error: %s\n", usage.Msg)
	default:
		fmt.Fprintf(w, "\n  Error: %v\n", err)
	}
}
