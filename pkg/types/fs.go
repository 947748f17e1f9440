package types

import "io/fs"

// FS is the read-only filesystem surface the engine needs. The collision
// pass checks existence through it so tests can inject an in-memory
// implementation; the engine itself never writes.
type FS interface {
	Stat(name string) (fs.FileInfo, error)

	// Lstat may fall back to Stat in test implementations
	Lstat(name string) (fs.FileInfo, error)
}
