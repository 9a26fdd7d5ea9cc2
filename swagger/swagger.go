// Package swagger serves the Swagger UI together with the OpenAPI document of the API.
package swagger

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
)

//go:embed swagger-ui/*
var content embed.FS

// GetHandler returns a file server over the embedded UI. Paths are relative to
// the mount point, so callers strip their prefix first.
func GetHandler() (http.Handler, error) {
	subFS, err := fs.Sub(content, "swagger-ui")
	if err != nil {
		return nil, err
	}

	files := http.FileServer(http.FS(subFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ext := path.Ext(r.URL.Path); ext == ".yaml" || ext == ".yml" {
			w.Header().Set("Content-Type", "application/yaml")
		}

		files.ServeHTTP(w, r)
	}), nil
}
