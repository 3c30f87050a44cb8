package apidoc

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

var (
	errEmptyDocument = errors.New("document is empty")
	errRootNotMap    = errors.New("document root must be a mapping")
)

// ResolvePath resolves a relative document path against the directory of
// the running executable first and the working directory second. The first
// existing file wins. When neither exists the executable-relative path is
// returned so that Load reports where the file was expected.
func ResolvePath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}

	candidates := make([]string, 0, 2)
	if exe, err := os.Executable(); err == nil {
		if real, err := filepath.EvalSymlinks(exe); err == nil {
			exe = real
		}
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), name))
	}
	candidates = append(candidates, filepath.Clean(name))

	for _, p := range candidates {
		if fileExists(p) {
			return p
		}
	}
	return candidates[0]
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Load reads and parses the YAML or JSON document at path.
func Load(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Op: OpRead, Err: err}
	}
	return Parse(path, src)
}

// Parse decodes src as YAML, which also covers JSON. path is only used for
// error reporting and Document.Path.
func Parse(path string, src []byte) (*Document, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, &LoadError{Path: path, Op: OpShape, Err: errEmptyDocument}
	}

	var raw any
	if err := yaml.UnmarshalWithOptions(src, &raw, yaml.UseOrderedMap()); err != nil {
		return nil, &LoadError{Path: path, Op: OpParse, Err: err}
	}
	if raw == nil {
		return nil, &LoadError{Path: path, Op: OpShape, Err: errEmptyDocument}
	}

	root, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, &LoadError{Path: path, Op: OpShape, Err: fmt.Errorf("%w, got %T", errRootNotMap, raw)}
	}

	rendered, err := renderJSON(raw)
	if err != nil {
		return nil, &LoadError{Path: path, Op: OpEncode, Err: err}
	}

	return &Document{
		path:   path,
		source: bytes.Clone(src),
		json:   rendered,
		root:   root,
	}, nil
}

// normalize turns every mapping into map[string]any for the accessors.
// Non-string keys (for example response codes) are stringified.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = normalize(item)
		}
		return out
	case yaml.MapSlice:
		out := make(map[string]any, len(val))
		for _, item := range val {
			out[fmt.Sprint(item.Key)] = normalize(item.Value)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	default:
		return val
	}
}
