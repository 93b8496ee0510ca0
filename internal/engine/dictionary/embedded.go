package dictionary

import (
	"embed"
	"io/fs"
)

//go:embed data/*.json
var embeddedData embed.FS

// NewEmbeddedRegistry creates a registry backed by the reference data snapshot
// compiled into the binary. This is the default backing store when no
// dictionary base path is configured.
func NewEmbeddedRegistry() *Registry {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		// The embedded tree is fixed at compile time, so Sub cannot fail.
		panic(err)
	}
	return NewRegistry(NewFSLoader(sub))
}
