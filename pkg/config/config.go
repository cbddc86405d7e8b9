// Package config loads module-level configuration: embedded defaults,
// then an optional weblayers.toml at the project root, then WEBLAYERS_*
// environment overrides. Per-layer configuration files are handled by
// pkg/layers; this package only covers the module level of the cascade.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/weblayers/weblayers/pkg/errors"
	"github.com/weblayers/weblayers/pkg/types"
)

// envPrefix namespaces environment overrides (WEBLAYERS_VERBOSITY=2).
const envPrefix = "WEBLAYERS_"

// Folders holds the conventional sub-directory names inside each layer.
type Folders struct {
	Entrypoints string `koanf:"entrypoints"`
	Public      string `koanf:"public"`
}

// Files holds special file names.
type Files struct {
	// LayerConfig lists per-layer configuration file names, tried in order.
	LayerConfig []string `koanf:"layer_config"`
}

// Defaults are the built-in bottom of the option cascade.
type Defaults struct {
	LayerAlias   string   `koanf:"layer_alias"`
	SourceAlias  string   `koanf:"source_alias"`
	PublicPrefix string   `koanf:"public_prefix"`
	AutoImports  []string `koanf:"auto_imports"`
	Order        int      `koanf:"order"`
}

// Config is the effective module-level configuration.
type Config struct {
	Verbosity int      `koanf:"verbosity"`
	Folders   Folders  `koanf:"folders"`
	Files     Files    `koanf:"files"`
	Defaults  Defaults `koanf:"defaults"`

	// Module holds module-level option overrides (the "module" cascade
	// level). Decoded manually to preserve set-vs-unset semantics.
	Module types.Options `koanf:"-"`

	// Sources are the declared input locations, in priority order.
	Sources []types.Source `koanf:"-"`
}

// Default returns the built-in configuration without touching disk.
func Default() *Config {
	k := koanf.New(".")
	// The embedded defaults are compiled in; a parse failure here is a
	// programming error, not a runtime condition.
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic("weblayers: invalid embedded defaults: " + err.Error())
	}
	cfg, err := unmarshalConfig(k)
	if err != nil {
		panic("weblayers: invalid embedded defaults: " + err.Error())
	}
	return cfg
}

// Load builds the effective configuration for a project root: embedded
// defaults, then the first of weblayers.toml / .weblayers.toml /
// weblayers.yaml / .weblayers.yaml found at the root, then environment
// overrides.
func Load(projectRoot string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load embedded defaults")
	}

	for _, filename := range []string{"weblayers.toml", ".weblayers.toml", "weblayers.yaml", ".weblayers.yaml"} {
		path := filepath.Join(projectRoot, filename)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		var parser koanf.Parser = toml.Parser()
		if filepath.Ext(filename) == ".yaml" {
			parser = yaml.Parser()
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse project config").
				WithDetail("path", path)
		}
		break
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	return unmarshalConfig(k)
}

// envTransform maps WEBLAYERS_VERBOSITY to "verbosity". Only flat keys are
// supported through the environment; structured settings belong in the
// config file.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

func unmarshalConfig(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}

	cfg.Module = decodeOptions(k, "module")
	sources, err := decodeSources(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources

	return &cfg, nil
}
