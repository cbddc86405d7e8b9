package types

// EntrypointKind identifies what a compiled unit is to the extension
// manifest: a background script, a content script, one of the well-known
// HTML pages, or an unlisted script/page/style that ships without a
// manifest entry.
type EntrypointKind string

const (
	KindBackground     EntrypointKind = "background"
	KindContentScript  EntrypointKind = "content-script"
	KindPopup          EntrypointKind = "popup"
	KindOptions        EntrypointKind = "options"
	KindNewtab         EntrypointKind = "newtab"
	KindDevtools       EntrypointKind = "devtools"
	KindBookmarks      EntrypointKind = "bookmarks"
	KindHistory        EntrypointKind = "history"
	KindSidepanel      EntrypointKind = "sidepanel"
	KindSandbox        EntrypointKind = "sandbox"
	KindUnlistedPage   EntrypointKind = "unlisted-page"
	KindUnlistedScript EntrypointKind = "unlisted-script"
	KindUnlistedStyle  EntrypointKind = "unlisted-style"
)

// VirtualBackgroundInput is the reserved module identifier of the
// synthesized background entrypoint. It is not a file on disk; the host
// build tool resolves it to the composed layer background handlers.
const VirtualBackgroundInput = "virtual:weblayers-background"

// Entrypoint is one compiled unit contributed to the build.
type Entrypoint struct {
	// Name is the entrypoint identity, unique across all layers and the
	// host project.
	Name string

	// InputPath is the absolute path of the source file, or
	// VirtualBackgroundInput for the synthesized background.
	InputPath string

	Kind EntrypointKind

	// Order controls background composition sequence; lower runs earlier.
	// It is meaningless for any other kind.
	Order int

	// LayerPath is the absolute path of the contributing layer, empty for
	// entrypoints owned by the host project. Kept for diagnostics.
	LayerPath string
}

// PublicAsset is one file copied verbatim into the build's public output.
type PublicAsset struct {
	// Source is the absolute path of the file inside a layer's public
	// folder.
	Source string

	// Destination is the path relative to the build's public-asset root.
	Destination string
}
