package handler

import (
	"embed"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

// StaticHandler serves the embedded static assets under /static/.
func StaticHandler() http.Handler {
	return http.FileServer(http.FS(staticFiles))
}
