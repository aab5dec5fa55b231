package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOSFileSystem_Open_File(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "users.txt")
	if err := os.WriteFile(filePath, []byte("alice!1234\n"), 0600); err != nil {
		t.Fatal(err)
	}

	fs := NewOSFileSystem()

	rc, err := fs.Open(filePath)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", filePath, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll error = %v", err)
	}
	if string(content) != "alice!1234\n" {
		t.Errorf("content = %q, want %q", content, "alice!1234\n")
	}
}

func TestOSFileSystem_Open_NonexistentPath(t *testing.T) {
	fs := NewOSFileSystem()

	_, err := fs.Open(filepath.Join(t.TempDir(), "nonexistent"))
	if err == nil {
		t.Error("Open(nonexistent) should return error")
	}
}

func TestOSFileSystem_Open_Directory(t *testing.T) {
	fs := NewOSFileSystem()

	_, err := fs.Open(t.TempDir())
	if err == nil {
		t.Fatal("Open(directory) should return error")
	}
	if !strings.Contains(err.Error(), "is a directory") {
		t.Errorf("error = %v, want 'is a directory'", err)
	}
}

func TestOSFileSystem_Open_Stdin(t *testing.T) {
	fs := NewOSFileSystemWithStdin(strings.NewReader("bob!4321\n"))

	rc, err := fs.Open(StdinPath)
	if err != nil {
		t.Fatalf("Open(-) error = %v", err)
	}

	content, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll error = %v", err)
	}
	if err := rc.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if string(content) != "bob!4321\n" {
		t.Errorf("content = %q", content)
	}
}

func TestOSFileSystem_Open_DashIsFileWithoutStdin(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(StdinPath, []byte("carol!5555\n"), 0600); err != nil {
		t.Fatal(err)
	}

	rc, err := NewOSFileSystem().Open(StdinPath)
	if err != nil {
		t.Fatalf("Open(-) error = %v", err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll error = %v", err)
	}
	if string(content) != "carol!5555\n" {
		t.Errorf("content = %q, want the file named -", content)
	}
}
