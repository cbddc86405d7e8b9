package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weblayers/weblayers/pkg/config"
	"github.com/weblayers/weblayers/pkg/errors"
	"github.com/weblayers/weblayers/pkg/registry"
	"github.com/weblayers/weblayers/pkg/testutil"
	"github.com/weblayers/weblayers/pkg/types"
)

func testConfig(sources ...types.Source) *config.Config {
	cfg := config.Default()
	cfg.Sources = sources
	return cfg
}

func TestResolveEndToEnd(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	testutil.SetupLayer(t, mfs, "/project/layers", "demo", testutil.LayerFixture{
		Files: map[string]string{
			"entrypoints/popup.html":    "<html></html>",
			"entrypoints/background.ts": "export default {}",
		},
	})

	r := registry.New(mfs, testConfig(types.Source{Pattern: "layers/*"}))
	reg, err := r.Resolve(registry.ProjectInput{Root: "/project"})
	require.NoError(t, err)

	// popup contributes directly; the single layer background is wired
	// through the virtual background entrypoint.
	require.Len(t, reg.Entrypoints, 2)
	assert.Equal(t, "popup", reg.Entrypoints[0].Name)
	assert.Equal(t, types.KindPopup, reg.Entrypoints[0].Kind)
	assert.Equal(t, "background", reg.Entrypoints[1].Name)
	assert.Equal(t, types.VirtualBackgroundInput, reg.Entrypoints[1].InputPath)

	assert.Equal(t, map[string]string{"#demo": "/project/layers/demo"}, reg.Aliases)
	assert.Empty(t, reg.AutoImports)
	assert.Empty(t, reg.PublicAssets)
	assert.Equal(t, []string{"/project/layers/demo"}, reg.LayerPaths)

	require.Len(t, reg.Backgrounds, 1)
	assert.Equal(t, "/project/layers/demo/entrypoints/background.ts", reg.Backgrounds[0].InputPath)
	assert.True(t, reg.HasVirtualBackground())
}

func TestResolveEmptyStates(t *testing.T) {
	t.Run("no sources", func(t *testing.T) {
		mfs := testutil.NewMemoryFS()
		mfs.MkdirAll("/project")

		reg, err := registry.New(mfs, testConfig()).Resolve(registry.ProjectInput{Root: "/project"})
		require.NoError(t, err)
		assert.Empty(t, reg.Entrypoints)
		assert.Empty(t, reg.Aliases)
		assert.Empty(t, reg.LayerPaths)
	})

	t.Run("no layers", func(t *testing.T) {
		mfs := testutil.NewMemoryFS()
		mfs.MkdirAll("/project/layers")

		reg, err := registry.New(mfs, testConfig(types.Source{Pattern: "layers/*"})).
			Resolve(registry.ProjectInput{Root: "/project"})
		require.NoError(t, err)
		assert.Empty(t, reg.Entrypoints)
	})
}

func TestResolveDuplicateEntrypointFatal(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	testutil.SetupLayer(t, mfs, "/project/layers", "one", testutil.LayerFixture{
		Files: map[string]string{"entrypoints/popup.html": "<html></html>"},
	})
	testutil.SetupLayer(t, mfs, "/project/layers", "two", testutil.LayerFixture{
		Files: map[string]string{"entrypoints/popup.html": "<html></html>"},
	})

	_, err := registry.New(mfs, testConfig(types.Source{Pattern: "layers/*"})).
		Resolve(registry.ProjectInput{Root: "/project"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEntrypointConflict))

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "popup", details["name"])
	assert.Equal(t, "/project/layers/one/entrypoints/popup.html", details["existing"])
	assert.Equal(t, "/project/layers/two/entrypoints/popup.html", details["conflicting"])
}

func TestResolveHostNameCollisionFatal(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	testutil.SetupLayer(t, mfs, "/project/layers", "demo", testutil.LayerFixture{
		Files: map[string]string{"entrypoints/popup.html": "<html></html>"},
	})

	_, err := registry.New(mfs, testConfig(types.Source{Pattern: "layers/*"})).
		Resolve(registry.ProjectInput{Root: "/project", EntrypointNames: []string{"popup"}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEntrypointConflict))
}

func TestResolveAliasFirstWins(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	// Same layer name under two sources produces the same alias key.
	testutil.SetupLayer(t, mfs, "/project/layers", "auth", testutil.LayerFixture{
		Files: map[string]string{"entrypoints/one.ts": ""},
	})
	testutil.SetupLayer(t, mfs, "/project/vendor", "auth", testutil.LayerFixture{
		Files: map[string]string{"entrypoints/two.ts": ""},
	})

	reg, err := registry.New(mfs, testConfig(
		types.Source{Pattern: "layers/*"},
		types.Source{Pattern: "vendor/auth"},
	)).Resolve(registry.ProjectInput{Root: "/project"})
	require.NoError(t, err)
	assert.Equal(t, "/project/layers/auth", reg.Aliases["#auth"])
}

func TestResolveSourceAlias(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	testutil.SetupLayer(t, mfs, "/project/layers", "demo", testutil.LayerFixture{
		Files: map[string]string{"entrypoints/page.html": "<html></html>"},
	})

	alias := "~{name}"
	src := types.Source{Pattern: "layers/*"}
	src.Options.SourceAlias = &alias

	reg, err := registry.New(mfs, testConfig(src)).Resolve(registry.ProjectInput{Root: "/project"})
	require.NoError(t, err)
	assert.Equal(t, "/project/layers", reg.Aliases["~layers"])
	assert.Equal(t, "/project/layers/demo", reg.Aliases["#demo"])
}

func TestResolveAutoImportsAndAssets(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	testutil.SetupLayer(t, mfs, "/project/layers", "auth", testutil.LayerFixture{
		Files: map[string]string{
			"entrypoints/login.html": "<html></html>",
			"components/Button.vue":  "<template/>",
			"utils/crypto.ts":        "export {}",
			"public/icon.png":        "png",
			"public/img/logo.svg":    "svg",
		},
	})

	reg, err := registry.New(mfs, testConfig(types.Source{Pattern: "layers/*"})).
		Resolve(registry.ProjectInput{Root: "/project"})
	require.NoError(t, err)

	// Only folders that exist on disk are exposed, in option order.
	assert.Equal(t, []string{
		"/project/layers/auth/components",
		"/project/layers/auth/utils",
	}, reg.AutoImports)

	// Destinations use the default "{name}" prefix.
	assert.ElementsMatch(t, []types.PublicAsset{
		{Source: "/project/layers/auth/public/icon.png", Destination: "auth/icon.png"},
		{Source: "/project/layers/auth/public/img/logo.svg", Destination: "auth/img/logo.svg"},
	}, reg.PublicAssets)
}

func TestResolveCascadedLayerConfig(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	testutil.SetupLayer(t, mfs, "/project/layers", "tracking", testutil.LayerFixture{
		Files: map[string]string{
			"weblayers.toml":       "alias = \"@{name}\"\npublicPrefix = \"vendor/{name}\"",
			"entrypoints/track.ts": "export {}",
			"public/pixel.gif":     "gif",
		},
	})

	reg, err := registry.New(mfs, testConfig(types.Source{Pattern: "layers/*"})).
		Resolve(registry.ProjectInput{Root: "/project"})
	require.NoError(t, err)

	assert.Equal(t, "/project/layers/tracking", reg.Aliases["@tracking"])
	assert.NotContains(t, reg.Aliases, "#tracking")
	require.Len(t, reg.PublicAssets, 1)
	assert.Equal(t, "vendor/tracking/pixel.gif", reg.PublicAssets[0].Destination)
}

func TestResolveOrphanedBackgrounds(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	testutil.SetupLayer(t, mfs, "/project/layers", "demo", testutil.LayerFixture{
		Files: map[string]string{"entrypoints/background.ts": "export {}"},
	})

	reg, err := registry.New(mfs, testConfig(types.Source{Pattern: "layers/*"})).
		Resolve(registry.ProjectInput{Root: "/project", HasBackground: true, EntrypointNames: []string{"background"}})
	require.NoError(t, err)

	// No auto-wiring: the advisory list names the orphan instead.
	assert.False(t, reg.HasVirtualBackground())
	assert.Empty(t, reg.Backgrounds)
	require.Len(t, reg.OrphanedBackgrounds, 1)
	assert.Equal(t, "/project/layers/demo/entrypoints/background.ts", reg.OrphanedBackgrounds[0].InputPath)
}

func TestResolveBackgroundOrdering(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	testutil.SetupLayer(t, mfs, "/project/layers", "a", testutil.LayerFixture{
		Files: map[string]string{
			"weblayers.toml":            "order = 10",
			"entrypoints/background.ts": "",
		},
	})
	testutil.SetupLayer(t, mfs, "/project/layers", "b", testutil.LayerFixture{
		Files: map[string]string{
			"weblayers.toml":            "order = 5",
			"entrypoints/background.ts": "",
		},
	})
	testutil.SetupLayer(t, mfs, "/project/layers", "c", testutil.LayerFixture{
		Files: map[string]string{
			"weblayers.toml":            "order = 20",
			"entrypoints/background.ts": "",
		},
	})

	reg, err := registry.New(mfs, testConfig(types.Source{Pattern: "layers/*"})).
		Resolve(registry.ProjectInput{Root: "/project"})
	require.NoError(t, err)

	require.Len(t, reg.Backgrounds, 3)
	assert.Equal(t, "/project/layers/b/entrypoints/background.ts", reg.Backgrounds[0].InputPath)
	assert.Equal(t, "/project/layers/a/entrypoints/background.ts", reg.Backgrounds[1].InputPath)
	assert.Equal(t, "/project/layers/c/entrypoints/background.ts", reg.Backgrounds[2].InputPath)
}

func TestResolveLayersFinalizedNotification(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	testutil.SetupLayer(t, mfs, "/project/layers", "demo", testutil.LayerFixture{
		Files: map[string]string{"entrypoints/page.html": ""},
	})

	var notified []string
	r := registry.New(mfs, testConfig(types.Source{Pattern: "layers/*"}),
		registry.WithLayersFinalized(func(paths []string) { notified = paths }))

	_, err := r.Resolve(registry.ProjectInput{Root: "/project"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/project/layers/demo"}, notified)
}

func TestResolveManifestMerge(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	testutil.SetupLayer(t, mfs, "/project/layers", "a", testutil.LayerFixture{
		Files: map[string]string{
			"weblayers.toml": "[manifest]\npermissions = [\"storage\"]\nname = \"from-a\"",
		},
	})
	testutil.SetupLayer(t, mfs, "/project/layers", "b", testutil.LayerFixture{
		Files: map[string]string{
			"weblayers.toml": "[manifest]\nname = \"from-b\"",
		},
	})

	var hookRan bool
	r := registry.New(mfs, testConfig(types.Source{Pattern: "layers/*"}),
		registry.WithManifestHook(func(ctx *registry.BuildContext, manifest map[string]any) error {
			hookRan = true
			assert.Equal(t, "/project", ctx.Root)
			assert.Len(t, ctx.Layers, 2)
			manifest["version"] = "1.2.3"
			return nil
		}))

	reg, err := r.Resolve(registry.ProjectInput{Root: "/project"})
	require.NoError(t, err)
	assert.True(t, hookRan)
	// Later layers override scalar leaves.
	assert.Equal(t, "from-b", reg.Manifest["name"])
	assert.Equal(t, []any{"storage"}, reg.Manifest["permissions"])
	assert.Equal(t, "1.2.3", reg.Manifest["version"])
}

func TestResolveExplicitEntrypointsViaSourceOptions(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	testutil.SetupLayer(t, mfs, "/project/layers", "demo", testutil.LayerFixture{
		Files: map[string]string{
			"src/bg.ts":              "",
			"entrypoints/popup.html": "<html></html>", // must be ignored
		},
	})

	src := types.Source{Pattern: "layers/*"}
	src.Options.Entrypoints = map[string]string{"background": "src/bg.ts"}

	reg, err := registry.New(mfs, testConfig(src)).Resolve(registry.ProjectInput{Root: "/project"})
	require.NoError(t, err)

	require.Len(t, reg.Backgrounds, 1)
	assert.Equal(t, "/project/layers/demo/src/bg.ts", reg.Backgrounds[0].InputPath)
	// Only the virtual background made it into the entrypoint set.
	require.Len(t, reg.Entrypoints, 1)
	assert.Equal(t, types.VirtualBackgroundInput, reg.Entrypoints[0].InputPath)
}
