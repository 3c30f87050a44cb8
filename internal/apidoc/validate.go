package apidoc

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/getkin/kin-openapi/openapi3"
)

// Validate checks the document against the OpenAPI 3 schema. The server
// never calls it; it backs the validate command.
func Validate(ctx context.Context, doc *Document) error {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	loader.Context = ctx

	location := &url.URL{Path: filepath.ToSlash(doc.Path())}
	spec, err := loader.LoadFromDataWithPath(doc.YAML(), location)
	if err != nil {
		return fmt.Errorf("load spec: %w", err)
	}
	if err := spec.Validate(ctx); err != nil {
		return fmt.Errorf("validate spec: %w", err)
	}
	return nil
}
