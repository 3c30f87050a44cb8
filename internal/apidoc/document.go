package apidoc

import (
	"encoding/json"
	"slices"
	"strings"
)

// Document is a parsed API description. It is never mutated after Load;
// accessors hand out copies.
type Document struct {
	path   string
	source []byte
	json   []byte
	root   map[string]any
}

func (d *Document) Path() string {
	return d.path
}

// Title is info.title, or "" when the document has none.
func (d *Document) Title() string {
	return d.infoString("title")
}

func (d *Document) Version() string {
	return d.infoString("version")
}

// OpenAPIVersion is the "openapi" field, falling back to the Swagger 2.0
// "swagger" field.
func (d *Document) OpenAPIVersion() string {
	for _, key := range []string{"openapi", "swagger"} {
		if s := scalarString(d.root[key]); s != "" {
			return s
		}
	}
	return ""
}

// JSON returns the canonical JSON rendering computed at load time.
func (d *Document) JSON() []byte {
	return slices.Clone(d.json)
}

// YAML returns the file contents exactly as read.
func (d *Document) YAML() []byte {
	return slices.Clone(d.source)
}

func (d *Document) infoString(key string) string {
	info, ok := d.root["info"].(map[string]any)
	if !ok {
		return ""
	}
	return scalarString(info[key])
}

func scalarString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil, map[string]any, []any:
		return ""
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
