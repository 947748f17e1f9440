// Package filesystem provides the production types.FS implementation.
// The engine only ever reads from disk; existence checks during conflict
// detection are the sole filesystem access it performs.
package filesystem

import (
	"io/fs"
	"os"

	"github.com/tidyapp/tidy/pkg/types"
)

type osFS struct{}

// NewOS returns a types.FS backed by the real filesystem.
func NewOS() types.FS {
	return osFS{}
}

func (osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (osFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}
