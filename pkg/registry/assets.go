package registry

import (
	"io/fs"
	"path/filepath"

	"github.com/weblayers/weblayers/pkg/errors"
	"github.com/weblayers/weblayers/pkg/options"
	"github.com/weblayers/weblayers/pkg/paths"
	"github.com/weblayers/weblayers/pkg/types"
)

// collectPublicAssets walks a layer's public folder and computes one
// entry per file. The destination joins the interpolated public prefix
// with the file's path relative to that folder. A layer without a public
// folder contributes nothing.
func collectPublicAssets(lfs types.FS, layer types.Layer, publicDir string) ([]types.PublicAsset, error) {
	root := filepath.Join(layer.Path, publicDir)
	if !paths.DirExists(lfs, root) {
		return nil, nil
	}

	prefix := options.Interpolate(layer.Options.PublicPrefix, layer.Name)

	var assets []types.PublicAsset
	err := lfs.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		assets = append(assets, types.PublicAsset{
			Source:      path,
			Destination: filepath.Join(prefix, rel),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot collect public assets").
			WithDetail("layer", layer.Name).
			WithDetail("path", root)
	}
	return assets, nil
}
