package specio

import (
	"encoding/json"
	"fmt"

	"github.com/loomstack-labs/specloom/pkg/spec"
)

// Encode converts a typed model snapshot back into the wire document.
// Inverse of Decode up to field ordering.
func Encode(name string, nodes []spec.Node, edges []spec.Edge, screens []spec.Screen) (*Document, error) {
	doc := &Document{
		Version: CurrentVersion,
		Name:    name,
		Nodes:   make([]NodeDoc, 0, len(nodes)),
		Edges:   make([]EdgeDoc, 0, len(edges)),
		Screens: screens,
	}

	for i := range nodes {
		n := &nodes[i]
		data, err := encodeData(n)
		if err != nil {
			return nil, err
		}
		doc.Nodes = append(doc.Nodes, NodeDoc{
			ID:       n.ID,
			Type:     string(n.Type),
			Position: n.Position,
			Data:     data,
		})
	}

	for _, e := range edges {
		doc.Edges = append(doc.Edges, EdgeDoc{
			ID:       e.ID,
			Source:   e.Source,
			Target:   e.Target,
			EdgeType: string(e.Type),
		})
	}

	return doc, nil
}

// encodeData flattens the node's typed variant back into a free-form bag
// via a JSON round trip, so the wire keys stay identical to the JSON tags.
func encodeData(n *spec.Node) (map[string]any, error) {
	var variant any
	switch {
	case n.DataPoint != nil:
		variant = n.DataPoint
	case n.Component != nil:
		variant = n.Component
	case n.Transform != nil:
		variant = n.Transform
	case n.Table != nil:
		variant = n.Table
	default:
		return nil, nil
	}

	raw, err := json.Marshal(variant)
	if err != nil {
		return nil, fmt.Errorf("failed to encode node %q data: %w", n.ID, err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to encode node %q data: %w", n.ID, err)
	}
	return data, nil
}
