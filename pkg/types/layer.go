package types

import "path/filepath"

// Source is one configured input location: a path pattern that expands to
// zero or more layer directories, plus its option overrides. Sources are
// independent of each other; declaration order only matters for
// deterministic collision handling downstream.
type Source struct {
	// Pattern is a path, absolute or relative to the project root. A
	// trailing "*" segment means "all immediate subdirectories".
	Pattern string

	Options SourceOptions
}

// Name derives the source's display name: the base of the pattern with
// any wildcard segment stripped.
func (s Source) Name() string {
	return filepath.Base(StripWildcard(s.Pattern))
}

// Layer is a concrete directory discovered under a source.
type Layer struct {
	// Name is the final path segment of the layer directory.
	Name string

	// Path is the absolute layer directory. It is the layer's identity.
	Path string

	// SourcePattern records which source declaration produced this layer.
	SourcePattern string

	// SourceName is the derived name of that source.
	SourceName string

	// Options is the cascaded effective option set.
	Options EffectiveOptions

	// Config holds the per-layer configuration file contents, nil when the
	// layer carries none (or it failed to parse and was skipped).
	Config *LayerConfig
}

// LayerConfig is the shape of an optional per-layer configuration file.
type LayerConfig struct {
	Options `yaml:",inline"`

	// Manifest is a fragment deep-merged into the host extension manifest.
	// The declarative counterpart of a manifest-mutation callback.
	Manifest map[string]any `toml:"manifest" yaml:"manifest"`
}

// WildcardSegment is the glob marker a source pattern may end with.
const WildcardSegment = "*"

// HasWildcard reports whether the pattern's last segment is the wildcard.
func HasWildcard(pattern string) bool {
	return filepath.Base(pattern) == WildcardSegment
}

// StripWildcard removes a trailing wildcard segment, if any.
func StripWildcard(pattern string) string {
	if HasWildcard(pattern) {
		return filepath.Dir(pattern)
	}
	return pattern
}
