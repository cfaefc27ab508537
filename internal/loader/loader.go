// Package loader reads IP block descriptions from disk and turns them into
// the ipblock object model.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robert-at-pretension-io/reggen/internal/ipblock"
	"github.com/robert-at-pretension-io/reggen/internal/validator"
)

// Extensions lists the description formats the loader understands.
var Extensions = []string{".json", ".cue", ".yaml", ".yml"}

// Loader validates descriptions against the embedded #IpBlock schema
// before building them.
type Loader struct {
	schema *validator.Validator
}

// New creates a Loader.
func New() (*Loader, error) {
	v, err := validator.New()
	if err != nil {
		return nil, fmt.Errorf("creating validator: %w", err)
	}
	return &Loader{schema: v}, nil
}

// Load reads, validates and builds the description at path.
func (l *Loader) Load(path string) (*ipblock.IpBlock, error) {
	desc, err := l.LoadDescription(path)
	if err != nil {
		return nil, err
	}
	block, err := ipblock.Build(*desc)
	if err != nil {
		return nil, fmt.Errorf("building block from %s: %w", path, err)
	}
	return block, nil
}

// LoadDescription reads and validates the description at path without
// building the object model.
func (l *Loader) LoadDescription(path string) (*ipblock.Description, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return l.Parse(src, path)
}

// Parse validates src and decodes it. The format is chosen from the
// extension of name.
func (l *Loader) Parse(src []byte, name string) (*ipblock.Description, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".json", ".cue":
	case ".yaml", ".yml":
		converted, err := yamlToJSON(src)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		src = converted
	default:
		return nil, fmt.Errorf("parsing %s: unsupported description format %q", name, ext)
	}

	concrete, err := l.schema.Concrete(src, filepath.Base(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var desc ipblock.Description
	if err := json.Unmarshal(concrete, &desc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return &desc, nil
}

// LoadAll loads every path in order, stopping at the first failure.
func (l *Loader) LoadAll(paths []string) ([]*ipblock.IpBlock, error) {
	blocks := make([]*ipblock.IpBlock, 0, len(paths))
	for _, p := range paths {
		b, err := l.Load(p)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// Supported reports whether path has a description extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func yamlToJSON(src []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("empty document")
	}
	return json.Marshal(doc)
}
