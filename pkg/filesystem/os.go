// Package filesystem provides implementations of the types.FS interface.
// The standard OS filesystem lives here; tests use the in-memory
// implementation from pkg/testutil.
package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/weblayers/weblayers/pkg/types"
)

// osFS implements types.FS against the real filesystem.
type osFS struct{}

// NewOS creates the OS filesystem implementation.
func NewOS() types.FS {
	return &osFS{}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (o *osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (o *osFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}
