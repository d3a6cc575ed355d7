package unitconv

import (
	"io/fs"

	"github.com/goliatone/go-unitconv/pkg/renderers/vanilla"
	"github.com/goliatone/go-unitconv/pkg/runtime"
)

// RuntimeAssetsFS exposes the browser runtime script so Go applications can
// serve it without a frontend build step.
//
// Typical mount:
//
//	mux.Handle("/runtime/",
//	  http.StripPrefix("/runtime/",
//	    http.FileServerFS(unitconv.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return runtime.AssetsFS()
}

// StylesheetFS exposes the default vanilla stylesheet.
func StylesheetFS() fs.FS {
	return vanilla.AssetsFS()
}
