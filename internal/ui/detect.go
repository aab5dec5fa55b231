package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ColorEnabled reports whether styled output should be written to w.
//
// Returns false if:
//   - NO_COLOR is set (https://no-color.org)
//   - CREDLOAD_PLAIN=1 is set
//   - TERM is "dumb"
//   - w is not a terminal (pipes, files, buffers)
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("CREDLOAD_PLAIN") == "1" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}

	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
