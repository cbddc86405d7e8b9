package config

import (
	"github.com/knadh/koanf/v2"

	"github.com/weblayers/weblayers/pkg/errors"
	"github.com/weblayers/weblayers/pkg/types"
)

// decodeOptions reads a partial option set at the given key prefix,
// preserving set-vs-unset per field. koanf's struct unmarshalling cannot
// tell an absent key from a zero value, so pointer fields are filled by
// explicit existence checks.
func decodeOptions(k *koanf.Koanf, prefix string) types.Options {
	var opts types.Options

	if k.Exists(prefix + ".alias") {
		v := k.String(prefix + ".alias")
		opts.Alias = &v
	}
	if k.Exists(prefix + ".auto_imports") {
		v := k.Strings(prefix + ".auto_imports")
		if v == nil {
			v = []string{}
		}
		opts.AutoImports = &v
	}
	if k.Exists(prefix + ".entrypoints") {
		opts.Entrypoints = k.StringMap(prefix + ".entrypoints")
	}
	if k.Exists(prefix + ".public_prefix") {
		v := k.String(prefix + ".public_prefix")
		opts.PublicPrefix = &v
	}
	if k.Exists(prefix + ".order") {
		v := k.Int(prefix + ".order")
		opts.Order = &v
	}

	return opts
}

// decodeSources reads the sources list. A declaration is either a bare
// pattern string or a table with source/source_alias/layer_alias/
// auto_imports/entrypoints/public_prefix/order keys.
func decodeSources(k *koanf.Koanf) ([]types.Source, error) {
	raw := k.Get("sources")
	if raw == nil {
		return nil, nil
	}

	list, ok := raw.([]interface{})
	if !ok {
		return nil, errors.New(errors.ErrConfigParse, "sources must be a list").
			WithDetail("got", raw)
	}

	sources := make([]types.Source, 0, len(list))
	for i, item := range list {
		switch v := item.(type) {
		case string:
			sources = append(sources, types.Source{Pattern: v})
		case map[string]interface{}:
			src, err := decodeSourceTable(v)
			if err != nil {
				return nil, err.WithDetail("index", i)
			}
			sources = append(sources, src)
		default:
			return nil, errors.New(errors.ErrConfigParse, "source declaration must be a string or a table").
				WithDetail("index", i).
				WithDetail("got", item)
		}
	}

	return sources, nil
}

func decodeSourceTable(table map[string]interface{}) (types.Source, *errors.LayersError) {
	pattern, ok := table["source"].(string)
	if !ok || pattern == "" {
		return types.Source{}, errors.New(errors.ErrConfigParse, "source declaration is missing its source pattern")
	}

	src := types.Source{Pattern: pattern}

	if v, ok := table["source_alias"].(string); ok {
		src.Options.SourceAlias = &v
	}
	if v, ok := table["layer_alias"].(string); ok {
		src.Options.Alias = &v
	}
	if v, ok := table["public_prefix"].(string); ok {
		src.Options.PublicPrefix = &v
	}
	if v, ok := table["order"]; ok {
		if n, ok := toInt(v); ok {
			src.Options.Order = &n
		}
	}
	if v, ok := table["auto_imports"].([]interface{}); ok {
		folders := make([]string, 0, len(v))
		for _, f := range v {
			if s, ok := f.(string); ok {
				folders = append(folders, s)
			}
		}
		src.Options.AutoImports = &folders
	}
	if v, ok := table["entrypoints"].(map[string]interface{}); ok {
		eps := make(map[string]string, len(v))
		for name, p := range v {
			if s, ok := p.(string); ok {
				eps[name] = s
			}
		}
		src.Options.Entrypoints = eps
	}

	return src, nil
}

// toInt normalizes the numeric types TOML and YAML decoders produce.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
