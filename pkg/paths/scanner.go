// Package paths holds the filesystem primitives of the resolution pass:
// expanding source patterns into concrete layer directories and existence
// checks, all against the types.FS abstraction so tests can run in memory.
package paths

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/weblayers/weblayers/pkg/errors"
	"github.com/weblayers/weblayers/pkg/logging"
	"github.com/weblayers/weblayers/pkg/types"
)

// ExpandSource resolves a source pattern against the project root into
// absolute directory paths. A trailing wildcard segment expands to all
// immediate child directories of its parent; anything else names a single
// directory, included only if it exists. A missing root yields an empty
// result, never an error — absent sources are a recoverable condition.
//
// Results are sorted so later collision handling (aliases, entrypoint
// names) is deterministic. Callers must not attach meaning to the order
// beyond that.
func ExpandSource(fs types.FS, root, pattern string) ([]string, error) {
	logger := logging.GetLogger("paths.scanner")

	resolved := pattern
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(root, resolved)
	}

	if !types.HasWildcard(pattern) {
		if DirExists(fs, resolved) {
			return []string{filepath.Clean(resolved)}, nil
		}
		logger.Debug().Str("pattern", pattern).Str("path", resolved).Msg("Source directory does not exist")
		return nil, nil
	}

	parent := filepath.Dir(resolved)
	entries, err := fs.ReadDir(parent)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("pattern", pattern).Str("parent", parent).Msg("Wildcard parent does not exist")
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read source directory").
			WithDetail("path", parent)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dirs = append(dirs, filepath.Join(parent, entry.Name()))
	}

	sort.Strings(dirs)

	logger.Trace().Str("pattern", pattern).Int("count", len(dirs)).Msg("Expanded wildcard source")
	return dirs, nil
}

// DirExists reports whether path exists and is a directory.
func DirExists(fs types.FS, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists reports whether path exists and is a regular file.
func FileExists(fs types.FS, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && !info.IsDir()
}
