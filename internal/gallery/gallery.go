// Package gallery renders the shareable HTML preview page for one upload
// session. The page is self-contained: every image reference is a pre-signed
// URL, so it works from any browser without bucket credentials.
package gallery

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

//go:embed template.html
var templateHTML string

var pageTemplate = template.Must(template.New("gallery").Parse(templateHTML))

// Image is one gallery entry.
type Image struct {
	Name string // original file name, shown as caption
	URL  string // pre-signed GET URL
}

// Render produces the gallery page for the given images.
func Render(images []Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, struct{ Images []Image }{Images: images}); err != nil {
		return nil, fmt.Errorf("rendering gallery: %w", err)
	}
	return buf.Bytes(), nil
}
