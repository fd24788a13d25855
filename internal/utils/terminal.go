package utils

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTerminalWriter returns true if w is an *os.File connected to a terminal.
// Buffers and pipes used in tests always report false.
func IsTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
