package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// memoryFile is a registered in-memory source
type memoryFile struct {
	content []byte
	readErr error // returned after content is consumed, simulating a failing device
}

// memoryHandle is an open handle on a memoryFile
type memoryHandle struct {
	io.Reader
	fs   *MemoryFileSystem
	once sync.Once
}

func (h *memoryHandle) Close() error {
	h.once.Do(func() {
		h.fs.mu.Lock()
		h.fs.open--
		h.fs.mu.Unlock()
	})
	return nil
}

// failingReader yields content and then err instead of io.EOF
type failingReader struct {
	r   io.Reader
	err error
}

func (f *failingReader) Read(p []byte) (int, error) {
	n, err := f.r.Read(p)
	if err == io.EOF {
		return n, f.err
	}
	return n, err
}

// MemoryFileSystem implements Provider for in-memory testing.
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu     sync.Mutex
	files  map[string]*memoryFile // map of absolute path -> file
	root   string                 // root directory path
	open   int
	opened int
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = filepath.ToSlash(root)
	root = path.Clean(root)

	return &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  root,
	}
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.add(filePath, &memoryFile{content: []byte(content)})
}

// AddFailingFile adds a file whose reads return content and then fail with err.
func (mfs *MemoryFileSystem) AddFailingFile(filePath string, content string, err error) {
	mfs.add(filePath, &memoryFile{content: []byte(content), readErr: err})
}

func (mfs *MemoryFileSystem) add(filePath string, file *memoryFile) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[mfs.resolve(filePath)] = file
}

// resolve maps a path to its absolute location within the virtual filesystem
func (mfs *MemoryFileSystem) resolve(filePath string) string {
	filePath = filepath.ToSlash(filePath)
	if strings.HasPrefix(filePath, "/") || path.IsAbs(filePath) {
		return path.Clean(filePath)
	}
	return path.Clean(path.Join(mfs.root, filePath))
}

// Open implements Provider.Open
func (mfs *MemoryFileSystem) Open(filePath string) (io.ReadCloser, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	file, exists := mfs.files[mfs.resolve(filePath)]
	if !exists {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}

	var r io.Reader = bytes.NewReader(file.content)
	if file.readErr != nil {
		r = &failingReader{r: r, err: file.readErr}
	}

	mfs.open++
	mfs.opened++
	return &memoryHandle{Reader: r, fs: mfs}, nil
}

// OpenHandles returns the number of handles opened and not yet closed.
func (mfs *MemoryFileSystem) OpenHandles() int {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	return mfs.open
}

// TotalOpens returns how many times any file was opened.
func (mfs *MemoryFileSystem) TotalOpens() int {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	return mfs.opened
}
