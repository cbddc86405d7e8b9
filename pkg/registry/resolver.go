// Package registry orchestrates one resolution pass: sources expand to
// layers, options cascade, entrypoints resolve, and the results merge
// into the immutable aggregate handed to the host build tool.
package registry

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/weblayers/weblayers/pkg/config"
	"github.com/weblayers/weblayers/pkg/entrypoints"
	"github.com/weblayers/weblayers/pkg/errors"
	"github.com/weblayers/weblayers/pkg/layers"
	"github.com/weblayers/weblayers/pkg/logging"
	"github.com/weblayers/weblayers/pkg/options"
	"github.com/weblayers/weblayers/pkg/paths"
	"github.com/weblayers/weblayers/pkg/types"
)

// ProjectInput describes the host project a pass resolves against.
type ProjectInput struct {
	// Root is the absolute project root directory.
	Root string

	// EntrypointNames are the host project's own entrypoint names. Layer
	// contributions must not collide with them.
	EntrypointNames []string

	// HasBackground reports whether the host declares its own top-level
	// background entrypoint. When it does, layer backgrounds are not
	// auto-wired.
	HasBackground bool
}

// Resolver runs resolution passes. All accumulating state lives in the
// pass itself, so one Resolver can serve repeated rebuilds.
type Resolver struct {
	fs     types.FS
	cfg    *config.Config
	logger zerolog.Logger

	layersFinalized func([]string)
	manifestHooks   []ManifestHook
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLayersFinalized registers a notification fired once per pass, after
// layer directories are finalized, with their absolute paths.
func WithLayersFinalized(fn func(layerPaths []string)) Option {
	return func(r *Resolver) { r.layersFinalized = fn }
}

// WithManifestHook registers a programmatic manifest mutation, run after
// the layers' declarative fragments merged.
func WithManifestHook(fn ManifestHook) Option {
	return func(r *Resolver) { r.manifestHooks = append(r.manifestHooks, fn) }
}

// New creates a Resolver for the given filesystem and configuration.
func New(fs types.FS, cfg *config.Config, opts ...Option) *Resolver {
	r := &Resolver{
		fs:     fs,
		cfg:    cfg,
		logger: logging.GetLogger("registry.resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs one full resolution pass. Recoverable conditions degrade
// with a warning; the only fatal condition is a duplicate entrypoint
// name, which aborts without producing a registry. The pass runs to
// completion or fails, there is no cancellation.
func (r *Resolver) Resolve(project ProjectInput) (*types.Registry, error) {
	if len(r.cfg.Sources) == 0 {
		r.logger.Warn().Msg("No sources configured, producing empty registry")
	}

	resolved, err := r.resolveLayers(project)
	if err != nil {
		return nil, err
	}
	if len(r.cfg.Sources) > 0 && len(resolved) == 0 {
		r.logger.Warn().Msg("No layers found under any source, producing empty registry")
	}

	layerPaths := make([]string, len(resolved))
	seenPaths := make(map[string]bool, len(resolved))
	for i, layer := range resolved {
		layerPaths[i] = layer.Path
		if seenPaths[layer.Path] {
			// Two sources expanding to the same directory stay independent
			// registrations; any resulting name conflict is fatal below.
			r.logger.Debug().Str("path", layer.Path).Msg("Layer path registered by multiple sources")
		}
		seenPaths[layer.Path] = true
	}
	if r.layersFinalized != nil {
		r.layersFinalized(layerPaths)
	}

	aliases := newAliasTable()
	var (
		collected   []types.Entrypoint
		autoImports []string
		seenImports = make(map[string]bool)
		assets      []types.PublicAsset
	)

	resolver := entrypoints.NewResolver(r.fs, r.cfg.Folders.Entrypoints)
	for _, layer := range resolved {
		eps, err := resolver.Resolve(layer)
		if err != nil {
			return nil, err
		}
		collected = append(collected, eps...)

		for _, folder := range layer.Options.AutoImports {
			dir := filepath.Join(layer.Path, folder)
			if !paths.DirExists(r.fs, dir) {
				continue
			}
			if seenImports[dir] {
				continue
			}
			seenImports[dir] = true
			autoImports = append(autoImports, dir)
		}

		layerAssets, err := collectPublicAssets(r.fs, layer, r.cfg.Folders.Public)
		if err != nil {
			return nil, err
		}
		assets = append(assets, layerAssets...)
	}

	r.registerAliases(aliases, project.Root, resolved)

	reg := &types.Registry{
		Aliases:      aliases.snapshot(),
		AutoImports:  autoImports,
		PublicAssets: assets,
		LayerPaths:   layerPaths,
	}

	if err := r.composeEntrypoints(reg, project, collected); err != nil {
		return nil, err
	}

	manifest, err := mergeManifests(resolved)
	if err != nil {
		return nil, err
	}
	buildCtx := &BuildContext{Root: project.Root, Layers: resolved}
	for _, hook := range r.manifestHooks {
		if err := hook(buildCtx, manifest); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "manifest hook failed")
		}
	}
	reg.Manifest = manifest

	r.logger.Info().
		Int("layers", len(resolved)).
		Int("entrypoints", len(reg.Entrypoints)).
		Int("aliases", len(reg.Aliases)).
		Int("autoImports", len(reg.AutoImports)).
		Int("publicAssets", len(reg.PublicAssets)).
		Msg("Resolution pass complete")

	return reg, nil
}

// resolveLayers expands each source in declaration order and cascades
// every discovered layer's options.
func (r *Resolver) resolveLayers(project ProjectInput) ([]types.Layer, error) {
	discovery := layers.NewDiscovery(r.fs, r.cfg.Files.LayerConfig)

	var resolved []types.Layer
	for _, source := range r.cfg.Sources {
		found, err := discovery.Discover(project.Root, []types.Source{source})
		if err != nil {
			return nil, err
		}
		for _, layer := range found {
			var layerOpts types.Options
			if layer.Config != nil {
				layerOpts = layer.Config.Options
			}
			layer.Options = options.Resolve(r.cfg.Defaults, r.cfg.Module, source.Options, layerOpts)
			resolved = append(resolved, layer)
		}
	}
	return resolved, nil
}

// registerAliases makes one registration attempt per source and one per
// layer, in discovery order, against the first-wins table.
func (r *Resolver) registerAliases(table *aliasTable, root string, resolved []types.Layer) {
	seenSources := make(map[string]bool)
	for _, source := range r.cfg.Sources {
		if seenSources[source.Pattern] {
			continue
		}
		seenSources[source.Pattern] = true

		template := r.cfg.Defaults.SourceAlias
		if source.Options.SourceAlias != nil {
			template = *source.Options.SourceAlias
		}
		if template == "" {
			continue
		}

		dir := types.StripWildcard(source.Pattern)
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		table.register(options.Interpolate(template, source.Name()), filepath.Clean(dir))
	}

	for _, layer := range resolved {
		key := options.Interpolate(layer.Options.Alias, layer.Name)
		table.register(key, layer.Path)
	}
}

// composeEntrypoints flattens layer entrypoints into the final set,
// enforcing global name uniqueness and handling background wiring.
func (r *Resolver) composeEntrypoints(reg *types.Registry, project ProjectInput, collected []types.Entrypoint) error {
	seen := make(map[string]string, len(collected)+len(project.EntrypointNames))
	for _, name := range project.EntrypointNames {
		seen[name] = "declared by the host project"
	}

	var backgrounds []types.Entrypoint
	for _, ep := range collected {
		if ep.Kind == types.KindBackground {
			backgrounds = append(backgrounds, ep)
			continue
		}
		if existing, dup := seen[ep.Name]; dup {
			return errors.New(errors.ErrEntrypointConflict, "duplicate entrypoint name").
				WithDetail("name", ep.Name).
				WithDetail("existing", existing).
				WithDetail("conflicting", ep.InputPath)
		}
		seen[ep.Name] = ep.InputPath
		reg.Entrypoints = append(reg.Entrypoints, ep)
	}

	if len(backgrounds) == 0 {
		return nil
	}

	if project.HasBackground {
		// The host owns the background entrypoint; layer backgrounds must
		// be imported and invoked manually. Always surface each one.
		reg.OrphanedBackgrounds = SortBackgrounds(backgrounds)
		for _, ep := range reg.OrphanedBackgrounds {
			r.logger.Warn().
				Str("layer", ep.LayerPath).
				Str("input", ep.InputPath).
				Msg("Layer background not auto-wired, host project declares its own background")
		}
		return nil
	}

	reg.Backgrounds = SortBackgrounds(backgrounds)
	virtual := types.Entrypoint{
		Name:      "background",
		InputPath: types.VirtualBackgroundInput,
		Kind:      types.KindBackground,
	}
	if existing, dup := seen[virtual.Name]; dup {
		return errors.New(errors.ErrEntrypointConflict, "duplicate entrypoint name").
			WithDetail("name", virtual.Name).
			WithDetail("existing", existing).
			WithDetail("conflicting", virtual.InputPath)
	}
	reg.Entrypoints = append(reg.Entrypoints, virtual)
	return nil
}
