// Package blocktypes holds the closed set of block kinds and the property
// keys meaningful to each, loaded from an embedded YAML file.
package blocktypes

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Well-known type tags and property keys
const (
	TypeParagraph    = "paragraph"
	TypeHeading1     = "heading1"
	TypeHeading2     = "heading2"
	TypeHeading3     = "heading3"
	TypeBulletList   = "bulletList"
	TypeNumberedList = "numberedList"
	TypeTodo         = "todo"

	PropChecked = "checked"
)

// Kind describes one block kind
type Kind struct {
	DisplayName string `yaml:"display_name" json:"display_name"`
	// Properties maps a property key to its value kind (currently "bool").
	// Keys listed here are the ones the backend interprets; clients may
	// still send arbitrary extra keys, which round-trip untouched.
	Properties map[string]string `yaml:"properties" json:"properties,omitempty"`
}

type registryFile struct {
	Kinds map[string]Kind `yaml:"kinds"`
}

// Registry manages the block kind set
type Registry struct {
	kinds map[string]Kind
	mu    sync.RWMutex
}

// NewRegistry creates a registry from the embedded YAML definition
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/blocks.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read block kind config: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal block kind config: %w", err)
	}
	if len(file.Kinds) == 0 {
		return nil, fmt.Errorf("block kind config defines no kinds")
	}

	return &Registry{kinds: file.Kinds}, nil
}

// Valid reports whether blockType is a known kind
func (r *Registry) Valid(blockType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.kinds[blockType]
	return ok
}

// Kind returns the definition for a block type
func (r *Registry) Kind(blockType string) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.kinds[blockType]
	return k, ok
}

// HasProperty reports whether the kind interprets the given property key
func (r *Registry) HasProperty(blockType, key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.kinds[blockType]
	if !ok {
		return false
	}
	_, ok = k.Properties[key]
	return ok
}

// Types returns all known type tags
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.kinds))
	for t := range r.kinds {
		types = append(types, t)
	}
	return types
}
