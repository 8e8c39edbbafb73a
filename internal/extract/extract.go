package extract

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Extractor turns a document into ordered per-page text.
type Extractor interface {
	Extract(path string) ([]string, error)
	Format() string
}

// Registry holds extractors keyed by file extension.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]Extractor)}
}

// Register adds an extractor under its format, which doubles as the file
// extension without the dot. Panics on duplicate format.
func (r *Registry) Register(e Extractor) {
	key := strings.ToLower(e.Format())
	if _, ok := r.extractors[key]; ok {
		panic("duplicate extractor format: " + key)
	}
	r.extractors[key] = e
}

// Get returns the extractor for format, or nil.
func (r *Registry) Get(format string) Extractor {
	return r.extractors[strings.ToLower(strings.TrimPrefix(format, "."))]
}

// Formats returns the registered formats in sorted order.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.extractors))
	for k := range r.extractors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ForPath returns the extractor matching the extension of path.
func (r *Registry) ForPath(path string) (Extractor, error) {
	ext := filepath.Ext(path)
	e := r.Get(ext)
	if e == nil {
		return nil, fmt.Errorf("unsupported document type %q (supported: %s)", ext, strings.Join(r.Formats(), ", "))
	}
	return e, nil
}

// Extract dispatches to the extractor registered for the file extension.
func (r *Registry) Extract(path string) ([]string, error) {
	e, err := r.ForPath(path)
	if err != nil {
		return nil, err
	}
	return e.Extract(path)
}

// DefaultRegistry returns a registry with all built-in extractors.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&PDFExtractor{})
	r.Register(&XLSExtractor{})
	r.Register(&TextExtractor{})
	return r
}
