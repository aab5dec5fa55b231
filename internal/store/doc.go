// Package store provides the credential stores a Loader commits into.
//
// Every backend implements credload.Store with the same contract: entries are
// applied in order, a repeated username keeps its last PIN, and a failed
// Commit leaves the backend as it was.
//
//   - Map wraps a caller-owned credload.Credentials. It is not synchronized.
//   - Postgres upserts into a table inside one transaction.
//   - Redis writes every entry with a single HSET.
//
// Network backends retry transient failures through internal/retry, replaying
// the whole commit. Open selects a backend from a Config.
package store
