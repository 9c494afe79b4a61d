// Package specio converts specification documents between their YAML/JSON
// wire form and the typed model in pkg/spec. The validator is agnostic to
// which format produced the graph it receives; both formats decode through
// the same document shape.
package specio

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/loomstack-labs/specloom/pkg/spec"
)

// Document is the wire form of a full specification snapshot. Node data
// travels as a free-form bag and is narrowed into the typed variants
// during decoding.
type Document struct {
	Version int           `json:"version" yaml:"version"`
	Name    string        `json:"name,omitempty" yaml:"name,omitempty"`
	Nodes   []NodeDoc     `json:"nodes" yaml:"nodes"`
	Edges   []EdgeDoc     `json:"edges" yaml:"edges"`
	Screens []spec.Screen `json:"screens,omitempty" yaml:"screens,omitempty"`
}

// CurrentVersion is the document version this package writes.
const CurrentVersion = 1

// NodeDoc is the wire form of a node.
type NodeDoc struct {
	ID       string         `json:"id" yaml:"id"`
	Type     string         `json:"type" yaml:"type"`
	Position *spec.Position `json:"position,omitempty" yaml:"position,omitempty"`
	Data     map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// EdgeDoc is the wire form of an edge.
type EdgeDoc struct {
	ID       string `json:"id" yaml:"id"`
	Source   string `json:"source" yaml:"source"`
	Target   string `json:"target" yaml:"target"`
	EdgeType string `json:"edgeType" yaml:"edgeType"`
}

// ParseYAML parses a YAML specification document.
func ParseYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse yaml document: %w", err)
	}
	return &doc, nil
}

// ParseJSON parses a JSON specification document.
func ParseJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse json document: %w", err)
	}
	return &doc, nil
}

// EncodeYAML renders the document as YAML.
func (d *Document) EncodeYAML() ([]byte, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal yaml document: %w", err)
	}
	return out, nil
}

// EncodeJSON renders the document as indented JSON.
func (d *Document) EncodeJSON() ([]byte, error) {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json document: %w", err)
	}
	return out, nil
}
