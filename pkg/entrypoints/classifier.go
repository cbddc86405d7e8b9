// Package entrypoints turns layer directories into typed entrypoint
// lists: a pure classifier mapping file names to entrypoint kinds, and a
// resolver that either scans a layer's conventional entrypoints folder or
// resolves an explicit name-to-path map.
//
// Compound names put the distinguishing label first and the type
// qualifier last: "linkedin.content" is a content script labelled
// "linkedin", "news.sidepanel" a sidepanel labelled "news". The qualifier
// is always the final dot-segment.
package entrypoints

import (
	"strings"

	"github.com/weblayers/weblayers/pkg/types"
)

// styleExtensions are the recognized stylesheet extensions.
var styleExtensions = map[string]bool{
	".css":  true,
	".scss": true,
	".sass": true,
	".less": true,
	".styl": true,
}

// scriptExtensions are the recognized script extensions for folder
// scanning. Explicit entrypoint maps may point at anything; scanning only
// picks up what the bundler can compile.
var scriptExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
	".mjs": true,
	".mts": true,
}

// htmlPages maps the well-known page names to their kinds.
var htmlPages = map[string]types.EntrypointKind{
	"popup":     types.KindPopup,
	"options":   types.KindOptions,
	"newtab":    types.KindNewtab,
	"devtools":  types.KindDevtools,
	"bookmarks": types.KindBookmarks,
	"history":   types.KindHistory,
}

// Classify maps an entrypoint name and file extension to a kind. First
// match wins:
//
//  1. stylesheet extension: unlisted-style
//  2. .html: well-known page names (case-sensitive), then the
//     sidepanel/sandbox qualifier, then unlisted-page
//  3. script: the content qualifier, then "background", then
//     unlisted-script
func Classify(name, ext string) types.EntrypointKind {
	switch {
	case styleExtensions[ext]:
		return types.KindUnlistedStyle

	case ext == ".html":
		if kind, ok := htmlPages[name]; ok {
			return kind
		}
		if hasQualifier(name, "sidepanel") {
			return types.KindSidepanel
		}
		if hasQualifier(name, "sandbox") {
			return types.KindSandbox
		}
		return types.KindUnlistedPage

	default:
		if hasQualifier(name, "content") {
			return types.KindContentScript
		}
		if name == "background" {
			return types.KindBackground
		}
		return types.KindUnlistedScript
	}
}

// hasQualifier reports whether name is the qualifier itself or carries it
// as its final dot-segment.
func hasQualifier(name, qualifier string) bool {
	return name == qualifier || strings.HasSuffix(name, "."+qualifier)
}

// SplitQualifier splits a compound name into its distinguishing label and
// type qualifier. Names without a dot have no qualifier.
func SplitQualifier(name string) (label, qualifier string) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name, ""
	}
	return name[:idx], name[idx+1:]
}

// recognizedExtension reports whether ext is one the scanner picks up.
func recognizedExtension(ext string) bool {
	return ext == ".html" || styleExtensions[ext] || scriptExtensions[ext]
}
