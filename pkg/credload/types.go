package credload

import (
	"context"
	"time"
)

// Entry is a validated username/PIN pair ready to be committed.
type Entry struct {
	Username string
	PIN      int
}

// Credentials is the in-memory credential mapping, username to PIN.
// It is owned by the caller; loaders only write to it during a single call.
type Credentials map[string]int

// Store is a credential store a Loader commits validated entries into.
//
// Commit must apply the entries in order with last-write-wins semantics
// for repeated usernames, and must be all-or-nothing: when it returns an
// error the store holds exactly what it held before the call.
// An empty entries slice is a no-op.
type Store interface {
	Commit(ctx context.Context, entries []Entry) error
}

// Report describes a completed load or check.
type Report struct {
	// LoadID identifies this load in logs and in stores that persist it.
	LoadID string

	// Source is the source identifier as given by the caller.
	Source string

	// Store is the backend name the entries were committed to (empty for checks).
	Store string

	// Lines is the number of records read from the source.
	Lines int

	// Entries is the number of entries committed (or that would be, for checks).
	Entries int

	// Unique is the number of distinct usernames among Entries.
	Unique int

	// Checksum is the SHA-256 of the raw source bytes.
	Checksum string

	// NormalizedChecksum ignores line endings and trailing whitespace.
	NormalizedChecksum string

	// Duration is the wall time of the whole call.
	Duration time.Duration
}
