package testutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage. Tests populate it
// through WriteFile/MkdirAll; the code under test only ever reads.
type MemoryFS struct {
	mu    sync.RWMutex
	nodes map[string]*fileNode

	// errorPaths injects read failures for specific paths.
	errorPaths map[string]error
}

type fileNode struct {
	name    string
	isDir   bool
	content []byte
	modTime time.Time
}

// NewMemoryFS creates an in-memory filesystem containing only the root.
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		nodes: map[string]*fileNode{
			"/": {name: "/", isDir: true, modTime: time.Now()},
		},
		errorPaths: make(map[string]error),
	}
}

func normalize(path string) string {
	if !filepath.IsAbs(path) {
		path = "/" + path
	}
	return filepath.Clean(path)
}

// MkdirAll creates a directory and all missing parents.
func (m *MemoryFS) MkdirAll(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirAllLocked(normalize(path))
}

func (m *MemoryFS) mkdirAllLocked(path string) {
	for p := path; ; p = filepath.Dir(p) {
		if node, ok := m.nodes[p]; ok && node.isDir {
			break
		}
		m.nodes[p] = &fileNode{name: filepath.Base(p), isDir: true, modTime: time.Now()}
		if p == "/" {
			break
		}
	}
}

// WriteFile stores a file, creating parent directories as needed.
func (m *MemoryFS) WriteFile(path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = normalize(path)
	m.mkdirAllLocked(filepath.Dir(path))
	m.nodes[path] = &fileNode{name: filepath.Base(path), content: []byte(content), modTime: time.Now()}
}

// InjectError makes reads of path fail with err.
func (m *MemoryFS) InjectError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorPaths[normalize(path)] = err
}

func (m *MemoryFS) getNode(path string) (*fileNode, error) {
	path = normalize(path)
	if err, ok := m.errorPaths[path]; ok {
		return nil, err
	}
	node, ok := m.nodes[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return node, nil
}

// Stat implements types.FS.
func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}
	return memInfo{node}, nil
}

// ReadFile implements types.FS.
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}
	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: normalize(name), Err: fs.ErrInvalid}
	}
	out := make([]byte, len(node.content))
	copy(out, node.content)
	return out, nil
}

// ReadDir implements types.FS. Entries come back sorted by name, matching
// os.ReadDir.
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dir := normalize(name)
	node, err := m.getNode(dir)
	if err != nil {
		return nil, err
	}
	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: dir, Err: fs.ErrInvalid}
	}

	var entries []fs.DirEntry
	for path, n := range m.nodes {
		if path == "/" || filepath.Dir(path) != dir {
			continue
		}
		entries = append(entries, memEntry{n})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// WalkDir implements types.FS, following io/fs.WalkDir semantics closely
// enough for asset collection: lexical order, directories first.
func (m *MemoryFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	m.mu.RLock()
	root = normalize(root)
	if _, err := m.getNode(root); err != nil {
		m.mu.RUnlock()
		return fn(root, nil, err)
	}

	var paths []string
	for path := range m.nodes {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	nodes := make([]*fileNode, len(paths))
	for i, p := range paths {
		nodes[i] = m.nodes[p]
	}
	m.mu.RUnlock()

	var skip string
	for i, path := range paths {
		if skip != "" && strings.HasPrefix(path, skip+string(filepath.Separator)) {
			continue
		}
		if err := fn(path, memEntry{nodes[i]}, nil); err != nil {
			if err == fs.SkipDir {
				if nodes[i].isDir {
					skip = path
				}
				continue
			}
			return err
		}
	}
	return nil
}

type memInfo struct{ n *fileNode }

func (i memInfo) Name() string       { return i.n.name }
func (i memInfo) Size() int64        { return int64(len(i.n.content)) }
func (i memInfo) ModTime() time.Time { return i.n.modTime }
func (i memInfo) IsDir() bool        { return i.n.isDir }
func (i memInfo) Sys() interface{}   { return nil }

func (i memInfo) Mode() fs.FileMode {
	if i.n.isDir {
		return fs.ModeDir | 0755
	}
	return 0644
}

type memEntry struct{ n *fileNode }

func (e memEntry) Name() string               { return e.n.name }
func (e memEntry) IsDir() bool                { return e.n.isDir }
func (e memEntry) Info() (fs.FileInfo, error) { return memInfo{e.n}, nil }

func (e memEntry) Type() fs.FileMode {
	if e.n.isDir {
		return fs.ModeDir
	}
	return 0
}
