package testutil

import (
	"path"
	"strings"
	"time"

	"github.com/tidyapp/tidy/pkg/types"
)

// FileFixture builds a FileInfo from a path alone, deriving name,
// extension and full name the way the scanner does.
func FileFixture(p string, modified time.Time) types.FileInfo {
	full := path.Base(p)
	ext := strings.TrimPrefix(path.Ext(full), ".")
	name := strings.TrimSuffix(full, path.Ext(full))

	return types.FileInfo{
		Path:       strings.ReplaceAll(p, "\\", "/"),
		Name:       name,
		Extension:  ext,
		FullName:   full,
		ModifiedAt: modified,
	}
}
