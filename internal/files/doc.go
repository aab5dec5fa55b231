// Package files groups the credential source sub-packages:
//   - filesystem: source acquisition (OS files, stdin, in-memory for tests)
//   - loader: the two-phase validate-then-commit credential loader
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/credload/internal/files/filesystem"
//	    "github.com/vvka-141/credload/internal/files/loader"
//	)
//
//	l := loader.New(filesystem.NewOSFileSystem(), logger)
//	report, err := l.Load(ctx, "users.txt", store.NewMap(creds))
package files
