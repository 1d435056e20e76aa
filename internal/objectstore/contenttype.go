package objectstore

import (
	_ "embed"
	"mime"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content_types.yaml
var contentTypesYAML []byte

type contentTypeTable struct {
	Types map[string]string `yaml:"types"`
}

var contentTypes = loadContentTypes()

func loadContentTypes() map[string]string {
	var table contentTypeTable
	if err := yaml.Unmarshal(contentTypesYAML, &table); err != nil {
		// Embedded file, cannot fail in practice.
		panic("failed to unmarshal embedded content_types.yaml: " + err.Error())
	}
	return table.Types
}

// ContentType resolves the MIME type for an object by file extension.
// Unknown extensions fall back to the platform MIME registry, then to
// application/octet-stream.
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
