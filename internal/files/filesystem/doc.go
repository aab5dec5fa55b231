// Package filesystem provides the source acquisition abstraction used by the loader.
//
// A Provider opens a credential source by identifier and hands back a scoped
// handle; callers must Close it on every return path.
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem; with
//     NewOSFileSystemWithStdin "-" reads the given reader instead
//   - MemoryFileSystem: In-memory implementation for testing, which tracks open
//     handles so tests can assert every handle was released
package filesystem
