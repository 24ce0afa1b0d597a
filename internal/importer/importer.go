// Package importer parses uploaded files into raw ledger tables.
package importer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/schema"
)

// Parser converts one upload format into a raw table. The first row of
// the source is treated as the header; schema enforcement happens
// later, in the store.
type Parser interface {
	Parse(r *bytes.Reader) (schema.Table, error)
	Extension() string
}

// Registry holds parsers keyed by file extension.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate extension.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Extension())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser extension: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for an extension like ".csv", or nil.
func (r *Registry) Get(ext string) Parser {
	return r.parsers[strings.ToLower(ext)]
}

// ParseUpload picks a parser by the upload's file name suffix and runs
// it. The returned table is raw: columns in source order, values
// uncoerced. Errors are non-fatal to the caller; nothing is appended
// anywhere until the whole table parsed cleanly.
func (r *Registry) ParseUpload(filename string, data []byte) (schema.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	p := r.Get(ext)
	if p == nil {
		return schema.Table{}, fmt.Errorf("unsupported file type %q", ext)
	}

	t, err := p.Parse(bytes.NewReader(data))
	if err != nil {
		return schema.Table{}, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return t, nil
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{})
	r.Register(&ExcelParser{})
	return r
}
