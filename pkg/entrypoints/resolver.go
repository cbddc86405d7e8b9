package entrypoints

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/weblayers/weblayers/pkg/errors"
	"github.com/weblayers/weblayers/pkg/logging"
	"github.com/weblayers/weblayers/pkg/paths"
	"github.com/weblayers/weblayers/pkg/types"
)

// Resolver produces a layer's typed, de-duplicated entrypoint list.
type Resolver struct {
	fs     types.FS
	logger zerolog.Logger

	// entrypointsDir is the conventional folder name scanned inside each
	// layer when no explicit map is declared.
	entrypointsDir string
}

// NewResolver creates a resolver scanning the given conventional folder.
func NewResolver(fs types.FS, entrypointsDir string) *Resolver {
	return &Resolver{
		fs:             fs,
		logger:         logging.GetLogger("entrypoints.resolver"),
		entrypointsDir: entrypointsDir,
	}
}

// Resolve returns the layer's entrypoints. A layer declaring an explicit
// entrypoint map never receives scanned entries, even when the
// conventional folder exists. The returned list contains no duplicate
// names; cross-layer uniqueness is the registry's job.
func (r *Resolver) Resolve(layer types.Layer) ([]types.Entrypoint, error) {
	var (
		eps []types.Entrypoint
		err error
	)
	if layer.Options.ExplicitEntrypoints() {
		eps = r.resolveExplicit(layer)
	} else {
		eps, err = r.scan(layer)
		if err != nil {
			return nil, err
		}
	}
	return r.dedupe(layer, eps), nil
}

// resolveExplicit maps declared names to files under the layer directory.
// Entries whose file does not exist are skipped silently so configs can
// declare conditional entrypoints.
func (r *Resolver) resolveExplicit(layer types.Layer) []types.Entrypoint {
	names := make([]string, 0, len(layer.Options.Entrypoints))
	for name := range layer.Options.Entrypoints {
		names = append(names, name)
	}
	sort.Strings(names)

	var eps []types.Entrypoint
	for _, name := range names {
		rel := layer.Options.Entrypoints[name]
		path := rel
		if !filepath.IsAbs(path) {
			path = filepath.Join(layer.Path, rel)
		}
		if !paths.FileExists(r.fs, path) {
			r.logger.Trace().
				Str("layer", layer.Name).
				Str("entrypoint", name).
				Str("path", path).
				Msg("Skipping declared entrypoint, file does not exist")
			continue
		}

		eps = append(eps, r.newEntrypoint(layer, name, path, filepath.Ext(path)))
	}
	return eps
}

// scan reads the layer's conventional entrypoints folder. Files classify
// by name and extension; directories contribute a single entry when they
// hold an index file with a recognized extension, named after the
// directory itself.
func (r *Resolver) scan(layer types.Layer) ([]types.Entrypoint, error) {
	dir := filepath.Join(layer.Path, r.entrypointsDir)
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Debug().Str("layer", layer.Name).Str("dir", dir).Msg("Layer has no entrypoints folder")
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read entrypoints folder").
			WithDetail("layer", layer.Name).
			WithDetail("path", dir)
	}

	var eps []types.Entrypoint
	for _, entry := range entries {
		if entry.IsDir() {
			indexPath, ext, found := r.findIndexFile(filepath.Join(dir, entry.Name()))
			if !found {
				r.logger.Trace().
					Str("layer", layer.Name).
					Str("dir", entry.Name()).
					Msg("Skipping entrypoint directory without index file")
				continue
			}
			eps = append(eps, r.newEntrypoint(layer, entry.Name(), indexPath, ext))
			continue
		}

		ext := filepath.Ext(entry.Name())
		if !recognizedExtension(ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		eps = append(eps, r.newEntrypoint(layer, name, filepath.Join(dir, entry.Name()), ext))
	}
	return eps, nil
}

// findIndexFile looks for index.<recognized extension> inside dir.
func (r *Resolver) findIndexFile(dir string) (path, ext string, found bool) {
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return "", "", false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if strings.TrimSuffix(entry.Name(), ext) == "index" && recognizedExtension(ext) {
			return filepath.Join(dir, entry.Name()), ext, true
		}
	}
	return "", "", false
}

func (r *Resolver) newEntrypoint(layer types.Layer, name, path, ext string) types.Entrypoint {
	ep := types.Entrypoint{
		Name:      name,
		InputPath: path,
		Kind:      Classify(name, ext),
		LayerPath: layer.Path,
	}
	if ep.Kind == types.KindBackground {
		ep.Order = layer.Options.Order
	}
	return ep
}

// dedupe drops entries repeating an earlier name. Scan order is sorted,
// so which entry survives is stable.
func (r *Resolver) dedupe(layer types.Layer, eps []types.Entrypoint) []types.Entrypoint {
	seen := make(map[string]string, len(eps))
	out := eps[:0]
	for _, ep := range eps {
		if prev, dup := seen[ep.Name]; dup {
			r.logger.Warn().
				Str("layer", layer.Name).
				Str("entrypoint", ep.Name).
				Str("kept", prev).
				Str("dropped", ep.InputPath).
				Msg("Duplicate entrypoint name within layer, keeping first")
			continue
		}
		seen[ep.Name] = ep.InputPath
		out = append(out, ep)
	}
	return out
}
