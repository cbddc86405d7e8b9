// Package testutil provides the in-memory filesystem and fixture helpers
// used by tests across the repository.
package testutil

import (
	"path/filepath"
	"testing"
)

// LayerFixture declares the contents of one layer directory.
type LayerFixture struct {
	// Files maps layer-relative paths to file contents. Declaring a file
	// creates its parent directories.
	Files map[string]string

	// Dirs lists additional empty directories to create.
	Dirs []string
}

// SetupLayer materializes a layer fixture under root/<name> and returns
// the absolute layer path.
func SetupLayer(t *testing.T, fs *MemoryFS, root, name string, fixture LayerFixture) string {
	t.Helper()

	layerPath := filepath.Join(root, name)
	fs.MkdirAll(layerPath)
	for _, dir := range fixture.Dirs {
		fs.MkdirAll(filepath.Join(layerPath, dir))
	}
	for rel, content := range fixture.Files {
		fs.WriteFile(filepath.Join(layerPath, rel), content)
	}
	return layerPath
}
