package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"unicode"
)

// Calculator is an interface for computing source checksums.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of normalized content.
	CalculateNormalized(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of normalized content.
func (c SHA256) CalculateNormalized(content []byte) string {
	hash := sha256.Sum256(c.normalize(content))
	return hex.EncodeToString(hash[:])
}

// normalize rewrites line endings to LF and strips trailing whitespace per line.
// A final newline is always present on non-empty output so that a missing
// newline at end of file does not change the fingerprint.
func (c SHA256) normalize(content []byte) []byte {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	content = bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))

	lines := bytes.Split(content, []byte("\n"))
	if n := len(lines); n > 0 && len(lines[n-1]) == 0 {
		lines = lines[:n-1]
	}

	var b bytes.Buffer
	b.Grow(len(content) + 1)
	for _, line := range lines {
		b.Write(bytes.TrimRightFunc(line, unicode.IsSpace))
		b.WriteByte('\n')
	}
	return b.Bytes()
}
