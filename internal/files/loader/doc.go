// Package loader loads credential sources into a credload.Store.
//
// Loading is a two-phase, all-or-nothing operation:
//
//  1. Validate: the whole source is read through a filesystem.Provider and
//     every line is parsed; the first invalid line aborts the load.
//  2. Commit: only when every line validated are the collected entries handed
//     to the store, once, in source order.
//
// A failed load therefore never leaves partial state behind: either every
// entry of the source is applied (later duplicates overwrite earlier ones) or
// the store is untouched. The source handle is closed on every return path.
//
// # Example Usage
//
//	creds := credload.Credentials{}
//	l := loader.New(filesystem.NewOSFileSystem(), logging.NewNullLogger())
//	report, err := l.Load(ctx, "users.txt", store.NewMap(creds))
//	if errors.Is(err, credload.ErrInvalidRecord) {
//	    // creds is unchanged
//	}
//
// Load (the package function) keeps the boolean contract for callers that
// only need success or failure.
//
// # Thread Safety
//
// A Loader holds no per-call state and may be shared. Loading concurrently
// into the same store is the caller's responsibility to synchronize.
package loader
