package layers

import (
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/weblayers/weblayers/pkg/logging"
	"github.com/weblayers/weblayers/pkg/paths"
	"github.com/weblayers/weblayers/pkg/types"
)

// LoadLayerConfig reads a layer's configuration file, trying each
// configured file name in order. Absence and malformed files both come
// back as nil: a broken per-layer config must never abort the whole
// build, so parse failures only warn and the layer falls back to its
// cascaded defaults.
func LoadLayerConfig(fs types.FS, layerPath string, fileNames []string) *types.LayerConfig {
	logger := logging.GetLogger("layers.config")

	for _, name := range fileNames {
		path := filepath.Join(layerPath, name)
		if !paths.FileExists(fs, path) {
			continue
		}

		data, err := fs.ReadFile(path)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Cannot read layer config, using defaults")
			return nil
		}

		cfg, err := parseLayerConfig(path, data)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Malformed layer config, using defaults")
			return nil
		}

		logger.Trace().Str("path", path).Msg("Loaded layer config")
		return cfg
	}

	return nil
}

func parseLayerConfig(path string, data []byte) (*types.LayerConfig, error) {
	var cfg types.LayerConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}
