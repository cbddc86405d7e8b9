package registry

import (
	"dario.cat/mergo"

	"github.com/weblayers/weblayers/pkg/errors"
	"github.com/weblayers/weblayers/pkg/types"
)

// BuildContext carries resolution results into manifest hooks.
type BuildContext struct {
	// Root is the project root the pass resolved against.
	Root string

	// Layers are the resolved layers in discovery order.
	Layers []types.Layer
}

// ManifestHook mutates the manifest after declarative fragments merged.
// Hooks run in registration order.
type ManifestHook func(ctx *BuildContext, manifest map[string]any) error

// mergeManifests deep-merges the layers' declarative manifest fragments
// in discovery order. Later layers override scalar leaves; nested tables
// merge recursively.
func mergeManifests(resolved []types.Layer) (map[string]any, error) {
	merged := make(map[string]any)
	for _, layer := range resolved {
		if layer.Config == nil || len(layer.Config.Manifest) == 0 {
			continue
		}
		if err := mergo.Merge(&merged, layer.Config.Manifest, mergo.WithOverride); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to merge layer manifest fragment").
				WithDetail("layer", layer.Name)
		}
	}
	return merged, nil
}
