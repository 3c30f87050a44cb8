package apidoc

import "fmt"

// Load operations reported by LoadError.
const (
	OpRead   = "read"
	OpParse  = "parse"
	OpShape  = "shape"
	OpEncode = "encode"
)

// LoadError reports why a document could not be loaded. It is fatal at
// startup: a missing or broken document is a deployment error.
type LoadError struct {
	Path string
	Op   string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load api document %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
