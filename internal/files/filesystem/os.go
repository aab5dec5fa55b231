package filesystem

import (
	"fmt"
	"io"
	"os"
)

// OSFileSystem implements Provider for the OS filesystem.
type OSFileSystem struct {
	// stdin serves StdinPath when set; otherwise "-" is an ordinary file name
	stdin io.Reader
}

// NewOSFileSystem creates a provider that opens every path as a file,
// including one named "-".
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// NewOSFileSystemWithStdin creates a provider that reads "-" from r.
// Panics if r is nil.
func NewOSFileSystemWithStdin(r io.Reader) *OSFileSystem {
	if r == nil {
		panic("stdin reader cannot be nil")
	}
	return &OSFileSystem{stdin: r}
}

// Open implements Provider.Open. Directories are rejected up front since
// reading them fails on some platforms only after a successful open.
func (p *OSFileSystem) Open(path string) (io.ReadCloser, error) {
	if p.stdin != nil && path == StdinPath {
		// stdin belongs to the process; closing it is not ours to do
		return io.NopCloser(p.stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s is a directory", path)
	}

	return f, nil
}
