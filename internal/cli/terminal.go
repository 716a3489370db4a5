package cli

import (
	"io"

	"golang.org/x/term"
)

const defaultTerminalWidth = 100

func isTerminalWriter(w io.Writer) bool {
	fdw, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(fdw.Fd()))
}

// terminalWidth returns the column count of w, or a default when w is not
// a terminal.
func terminalWidth(w io.Writer) int {
	fdw, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return defaultTerminalWidth
	}
	width, _, err := term.GetSize(int(fdw.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}
