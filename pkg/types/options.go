package types

// Options is a partial option set as declared at one cascade level
// (module, source, or layer). Nil pointer fields mean "not set here";
// the cascade falls through to the next level. AutoImports distinguishes
// nil (inherit) from an explicit empty slice (clear everything below).
type Options struct {
	// Alias is a template for the layer alias key, interpolated with the
	// layer name at registration time. Empty string means no alias.
	Alias *string `toml:"alias" yaml:"alias" koanf:"alias"`

	// AutoImports lists conventional sub-directory names exposed as
	// ambient imports. Levels accumulate rather than override.
	AutoImports *[]string `toml:"autoImports" yaml:"autoImports" koanf:"auto_imports"`

	// Entrypoints maps declared entrypoint names to paths relative to the
	// layer directory. When present, folder scanning is bypassed entirely.
	Entrypoints map[string]string `toml:"entrypoints" yaml:"entrypoints" koanf:"entrypoints"`

	// PublicPrefix is a template for where a layer's public assets land
	// under the build's public root.
	PublicPrefix *string `toml:"publicPrefix" yaml:"publicPrefix" koanf:"public_prefix"`

	// Order sequences background handlers; lower loads earlier.
	Order *int `toml:"order" yaml:"order" koanf:"order"`
}

// SourceOptions is the option set attached to one source declaration:
// the common cascading fields plus the source-level alias template.
type SourceOptions struct {
	Options

	// SourceAlias is a template for an alias registered once per source,
	// against the source directory with any wildcard suffix stripped.
	SourceAlias *string `toml:"sourceAlias" yaml:"sourceAlias" koanf:"source_alias"`
}

// EffectiveOptions is a fully cascaded option set for one layer. Alias,
// SourceAlias and PublicPrefix still hold templates; interpolation happens
// at the point of use, once the concrete name is known.
type EffectiveOptions struct {
	Alias        string
	SourceAlias  string
	AutoImports  []string
	Entrypoints  map[string]string
	PublicPrefix string
	Order        int
}

// ExplicitEntrypoints reports whether the layer declared an explicit
// entrypoint map. A present-but-empty map still bypasses scanning.
func (o EffectiveOptions) ExplicitEntrypoints() bool {
	return o.Entrypoints != nil
}
