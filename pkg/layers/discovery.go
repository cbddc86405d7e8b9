// Package layers discovers layer directories from configured sources and
// loads their optional per-layer configuration files.
package layers

import (
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/weblayers/weblayers/pkg/logging"
	"github.com/weblayers/weblayers/pkg/paths"
	"github.com/weblayers/weblayers/pkg/types"
)

// Discovery expands sources into layers.
type Discovery struct {
	fs     types.FS
	logger zerolog.Logger

	// configFiles are the per-layer config file names, tried in order.
	configFiles []string
}

// NewDiscovery creates a layer discovery using the given per-layer config
// file names.
func NewDiscovery(fs types.FS, configFiles []string) *Discovery {
	return &Discovery{
		fs:          fs,
		logger:      logging.GetLogger("layers.discovery"),
		configFiles: configFiles,
	}
}

// Discover expands every source in declaration order into layer
// directories and loads each layer's configuration file. The returned
// slice is in deterministic discovery order: source declaration order,
// then sorted enumeration order within a wildcard expansion. Downstream
// collision handling (aliases, entrypoint names) depends on that order.
//
// Config file reads fan out concurrently, but results land in an
// index-addressed slice so the output order never depends on goroutine
// scheduling.
func (d *Discovery) Discover(root string, sources []types.Source) ([]types.Layer, error) {
	var discovered []types.Layer

	for _, source := range sources {
		dirs, err := paths.ExpandSource(d.fs, root, source.Pattern)
		if err != nil {
			return nil, err
		}
		if len(dirs) == 0 {
			d.logger.Warn().Str("source", source.Pattern).Msg("Source resolved to no layer directories")
			continue
		}

		for _, dir := range dirs {
			discovered = append(discovered, types.Layer{
				Name:          filepath.Base(dir),
				Path:          dir,
				SourcePattern: source.Pattern,
				SourceName:    source.Name(),
			})
			d.logger.Trace().Str("layer", dir).Str("source", source.Pattern).Msg("Found layer")
		}
	}

	d.loadConfigs(discovered)

	d.logger.Info().Int("count", len(discovered)).Msg("Discovered layers")
	return discovered, nil
}

// loadConfigs reads per-layer config files concurrently. Each goroutine
// writes only its own slot; nothing downstream runs until all are done.
func (d *Discovery) loadConfigs(discovered []types.Layer) {
	var wg sync.WaitGroup
	for i := range discovered {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			discovered[i].Config = LoadLayerConfig(d.fs, discovered[i].Path, d.configFiles)
		}(i)
	}
	wg.Wait()
}
