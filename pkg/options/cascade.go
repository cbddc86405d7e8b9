// Package options implements the per-layer option cascade. Each field
// resolves independently with layer over source over module over built-in
// default precedence; templates survive the cascade uninterpolated so one
// option value can serve many layers.
package options

import (
	"strings"

	"github.com/weblayers/weblayers/pkg/config"
	"github.com/weblayers/weblayers/pkg/types"
)

// Resolve cascades one layer's effective options from the module-level
// overrides, its source's overrides, and its own configuration, over the
// built-in defaults.
//
// AutoImports is the one accumulating field: levels concatenate from the
// defaults upward instead of overriding, unless a level declares an
// explicit empty list, which clears everything below it.
func Resolve(defaults config.Defaults, module types.Options, source types.SourceOptions, layer types.Options) types.EffectiveOptions {
	eff := types.EffectiveOptions{
		Alias:        pickString(defaults.LayerAlias, module.Alias, source.Alias, layer.Alias),
		SourceAlias:  pickString(defaults.SourceAlias, nil, source.SourceAlias, nil),
		PublicPrefix: pickString(defaults.PublicPrefix, module.PublicPrefix, source.PublicPrefix, layer.PublicPrefix),
		Order:        pickInt(defaults.Order, module.Order, source.Order, layer.Order),
		AutoImports:  accumulate(defaults.AutoImports, module.AutoImports, source.AutoImports, layer.AutoImports),
	}

	// Entrypoint maps do not merge across levels: the most specific map
	// declared wins whole, since mixing levels would change which files a
	// layer compiles in surprising ways.
	switch {
	case layer.Entrypoints != nil:
		eff.Entrypoints = layer.Entrypoints
	case source.Entrypoints != nil:
		eff.Entrypoints = source.Entrypoints
	case module.Entrypoints != nil:
		eff.Entrypoints = module.Entrypoints
	}

	return eff
}

// Interpolate substitutes the {name} placeholder in a template.
func Interpolate(template, name string) string {
	return strings.ReplaceAll(template, "{name}", name)
}

// pickString applies per-field precedence: layer, else source, else
// module, else the built-in default.
func pickString(def string, module, source, layer *string) string {
	switch {
	case layer != nil:
		return *layer
	case source != nil:
		return *source
	case module != nil:
		return *module
	default:
		return def
	}
}

func pickInt(def int, module, source, layer *int) int {
	switch {
	case layer != nil:
		return *layer
	case source != nil:
		return *source
	case module != nil:
		return *module
	default:
		return def
	}
}

// accumulate builds the auto-import folder list. Each level appends in
// order; an explicit empty list resets the accumulator at that level.
func accumulate(def []string, levels ...*[]string) []string {
	acc := append([]string(nil), def...)
	for _, level := range levels {
		if level == nil {
			continue
		}
		if len(*level) == 0 {
			acc = acc[:0]
			continue
		}
		acc = append(acc, *level...)
	}
	return dedupeStrings(acc)
}

// dedupeStrings removes repeats preserving first-seen order.
func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
