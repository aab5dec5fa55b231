package store

import (
	"context"
	"fmt"

	"github.com/vvka-141/credload/pkg/credload"
)

// Map commits entries into a caller-owned credload.Credentials.
// Not safe for concurrent use.
type Map struct {
	creds credload.Credentials
}

// NewMap wraps creds. The map is written in place and never copied.
func NewMap(creds credload.Credentials) *Map {
	return &Map{creds: creds}
}

// Name returns credload.StoreMemory.
func (m *Map) Name() string {
	return credload.StoreMemory
}

// Commit assigns every entry in order. Assignment into an existing map cannot
// fail part way, so the only failure is a nil map, detected before any write.
func (m *Map) Commit(_ context.Context, entries []credload.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if m.creds == nil {
		return fmt.Errorf("%w: credentials map is nil", credload.ErrCommitFailed)
	}
	for _, e := range entries {
		m.creds[e.Username] = e.PIN
	}
	return nil
}

// Snapshot returns a copy of the wrapped map.
func (m *Map) Snapshot(_ context.Context) (credload.Credentials, error) {
	out := make(credload.Credentials, len(m.creds))
	for user, pin := range m.creds {
		out[user] = pin
	}
	return out, nil
}

// Close is a no-op.
func (m *Map) Close() error {
	return nil
}

var _ Backend = (*Map)(nil)
