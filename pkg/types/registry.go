package types

import "context"

// BackgroundHandler is one layer's background logic. Handlers are chained
// strictly sequentially: each receives the previous handler's result and
// its return value feeds the next. A handler may block (perform async
// work); the composition awaits it either way.
type BackgroundHandler func(ctx context.Context, input any) (any, error)

// Registry is the immutable aggregate produced by one resolution pass and
// handed, read-only, to the host build-tool integration.
type Registry struct {
	// Entrypoints holds all non-background entrypoints plus, when layer
	// backgrounds were auto-wired, the single virtual background. Names
	// are unique; a collision aborts the pass instead of producing a
	// registry.
	Entrypoints []Entrypoint

	// Aliases maps alias keys to absolute directory paths. First
	// registration wins.
	Aliases map[string]string

	// AutoImports is the ordered, de-duplicated list of absolute
	// directories exposed as ambient imports.
	AutoImports []string

	// PublicAssets lists files copied into the build's public output.
	PublicAssets []PublicAsset

	// Backgrounds holds the layer background entrypoints in composition
	// order (ascending Order, discovery order on ties). Empty when the
	// host declares its own background.
	Backgrounds []Entrypoint

	// OrphanedBackgrounds lists layer backgrounds that were not auto-wired
	// because the host project declares its own background entrypoint.
	OrphanedBackgrounds []Entrypoint

	// LayerPaths are the absolute paths of every resolved layer, in
	// discovery order. Also delivered through the layers-finalized
	// notification.
	LayerPaths []string

	// Manifest is the merged manifest fragment contributed by layers.
	Manifest map[string]any
}

// HasVirtualBackground reports whether the pass synthesized the virtual
// background entrypoint.
func (r *Registry) HasVirtualBackground() bool {
	for _, ep := range r.Entrypoints {
		if ep.InputPath == VirtualBackgroundInput {
			return true
		}
	}
	return false
}

// EntrypointNames returns the names in the final entrypoint set, in
// registration order.
func (r *Registry) EntrypointNames() []string {
	names := make([]string, len(r.Entrypoints))
	for i, ep := range r.Entrypoints {
		names[i] = ep.Name
	}
	return names
}
