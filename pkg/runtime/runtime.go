// Package runtime bundles the browser script that keeps the converter panel
// live without a full page reload.
//
// The script listens for input and change events on the panel form, posts the
// changed field to the form action and swaps in the returned panel fragment.
// Pages without JavaScript still work through regular form submits.
package runtime

import (
	"embed"
	"io/fs"
)

//go:embed assets/*.js
var embeddedAssets embed.FS

// ScriptName is the file name of the runtime script inside AssetsFS.
const ScriptName = "unitconv-runtime.js"

// FragmentHeader is sent by the runtime so servers answer with the panel
// fragment instead of a full page.
const FragmentHeader = "X-Unitconv-Fragment"

// AssetsFS exposes the runtime bundle rooted at the assets directory.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
