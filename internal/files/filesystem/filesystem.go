package filesystem

import (
	"io"
)

// StdinPath is the source identifier that reads standard input.
const StdinPath = "-"

// Provider opens credential sources for reading.
type Provider interface {
	// Open opens the source at path. The caller owns the returned handle and
	// must Close it.
	Open(path string) (io.ReadCloser, error)
}
