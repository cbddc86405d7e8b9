package types

import "io/fs"

// FS is the read-only filesystem surface the resolution pass runs
// against. The core never writes; copying assets and emitting output is
// the host build tool's job. Tests substitute an in-memory
// implementation.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]fs.DirEntry, error)

	// WalkDir visits every file under root, used for public-asset
	// collection. Semantics follow io/fs.WalkDir.
	WalkDir(root string, fn fs.WalkDirFunc) error
}
