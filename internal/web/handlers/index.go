package handlers

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/photodrive/photodrive/internal/config"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// Index serves the upload form, pre-filled with the configured default bucket.
func Index(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = indexTemplate.Execute(w, struct{ Bucket string }{Bucket: cfg.S3.Bucket})
	}
}
