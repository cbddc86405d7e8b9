package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weblayers/weblayers/pkg/config"
	"github.com/weblayers/weblayers/pkg/options"
	"github.com/weblayers/weblayers/pkg/types"
)

func strPtr(s string) *string        { return &s }
func intPtr(n int) *int              { return &n }
func slicePtr(s ...string) *[]string { return &s }

func defaults() config.Defaults {
	return config.Default().Defaults
}

func TestResolvePrecedence(t *testing.T) {
	module := types.Options{Alias: strPtr("module-{name}")}
	source := types.SourceOptions{Options: types.Options{Alias: strPtr("source-{name}")}}
	layer := types.Options{Alias: strPtr("layer-{name}")}

	t.Run("layer wins over source and module", func(t *testing.T) {
		eff := options.Resolve(defaults(), module, source, layer)
		assert.Equal(t, "layer-{name}", eff.Alias)
	})

	t.Run("source wins over module", func(t *testing.T) {
		eff := options.Resolve(defaults(), module, source, types.Options{})
		assert.Equal(t, "source-{name}", eff.Alias)
	})

	t.Run("module wins over default", func(t *testing.T) {
		eff := options.Resolve(defaults(), module, types.SourceOptions{}, types.Options{})
		assert.Equal(t, "module-{name}", eff.Alias)
	})

	t.Run("built-in default", func(t *testing.T) {
		eff := options.Resolve(defaults(), types.Options{}, types.SourceOptions{}, types.Options{})
		assert.Equal(t, "#{name}", eff.Alias)
		assert.Equal(t, "", eff.SourceAlias)
		assert.Equal(t, "{name}", eff.PublicPrefix)
		assert.Equal(t, 50, eff.Order)
	})
}

func TestResolveOrderPrecedence(t *testing.T) {
	eff := options.Resolve(defaults(),
		types.Options{Order: intPtr(1)},
		types.SourceOptions{Options: types.Options{Order: intPtr(2)}},
		types.Options{Order: intPtr(3)})
	assert.Equal(t, 3, eff.Order)

	eff = options.Resolve(defaults(),
		types.Options{Order: intPtr(1)},
		types.SourceOptions{},
		types.Options{})
	assert.Equal(t, 1, eff.Order)
}

func TestResolveAutoImportsAccumulate(t *testing.T) {
	eff := options.Resolve(defaults(),
		types.Options{AutoImports: slicePtr("stores")},
		types.SourceOptions{Options: types.Options{AutoImports: slicePtr("models")}},
		types.Options{AutoImports: slicePtr("widgets", "stores")})

	// Defaults first, then each level in order, duplicates dropped.
	assert.Equal(t,
		[]string{"components", "composables", "hooks", "utils", "stores", "models", "widgets"},
		eff.AutoImports)
}

func TestResolveAutoImportsExplicitClear(t *testing.T) {
	t.Run("layer clears everything below", func(t *testing.T) {
		eff := options.Resolve(defaults(),
			types.Options{AutoImports: slicePtr("stores")},
			types.SourceOptions{},
			types.Options{AutoImports: slicePtr()})
		assert.Empty(t, eff.AutoImports)
	})

	t.Run("levels above a clear still apply", func(t *testing.T) {
		eff := options.Resolve(defaults(),
			types.Options{AutoImports: slicePtr()},
			types.SourceOptions{},
			types.Options{AutoImports: slicePtr("widgets")})
		assert.Equal(t, []string{"widgets"}, eff.AutoImports)
	})
}

func TestResolveEntrypointsDoNotMerge(t *testing.T) {
	module := types.Options{Entrypoints: map[string]string{"a": "a.ts"}}
	source := types.SourceOptions{Options: types.Options{Entrypoints: map[string]string{"b": "b.ts"}}}
	layer := types.Options{Entrypoints: map[string]string{"c": "c.ts"}}

	eff := options.Resolve(defaults(), module, source, layer)
	assert.Equal(t, map[string]string{"c": "c.ts"}, eff.Entrypoints)

	eff = options.Resolve(defaults(), module, source, types.Options{})
	assert.Equal(t, map[string]string{"b": "b.ts"}, eff.Entrypoints)

	eff = options.Resolve(defaults(), types.Options{}, types.SourceOptions{}, types.Options{})
	assert.Nil(t, eff.Entrypoints)
}

func TestInterpolate(t *testing.T) {
	assert.Equal(t, "#demo", options.Interpolate("#{name}", "demo"))
	assert.Equal(t, "assets/auth/img", options.Interpolate("assets/{name}/img", "auth"))
	assert.Equal(t, "static", options.Interpolate("static", "auth"))
}
