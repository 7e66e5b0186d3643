package leadform

import (
	"io/fs"

	"github.com/goliatone/go-leadform/pkg/site"
)

// RuntimeAssetsFS exposes the wizard stylesheet and script so Go applications
// that render their own pages can still serve them.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(leadform.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return site.Assets()
}
