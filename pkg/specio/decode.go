package specio

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/loomstack-labs/specloom/pkg/spec"
)

// Decode converts the wire document into the typed model. Free-form data
// bags narrow into the variant matching the node type; unknown node types
// are a decode error (the validator expects a well-typed graph).
func (d *Document) Decode() ([]spec.Node, []spec.Edge, []spec.Screen, error) {
	nodes := make([]spec.Node, 0, len(d.Nodes))
	for _, nd := range d.Nodes {
		node, err := decodeNode(nd)
		if err != nil {
			return nil, nil, nil, err
		}
		nodes = append(nodes, node)
	}

	edges := make([]spec.Edge, 0, len(d.Edges))
	for _, ed := range d.Edges {
		edges = append(edges, spec.Edge{
			ID:     ed.ID,
			Source: ed.Source,
			Target: ed.Target,
			Type:   spec.EdgeType(ed.EdgeType),
		})
	}

	return nodes, edges, d.Screens, nil
}

func decodeNode(nd NodeDoc) (spec.Node, error) {
	node := spec.Node{
		ID:       nd.ID,
		Type:     spec.NodeType(nd.Type),
		Position: nd.Position,
	}

	switch node.Type {
	case spec.NodeDataPoint:
		var data spec.DataPointData
		if err := decodeData(nd, &data); err != nil {
			return spec.Node{}, err
		}
		node.DataPoint = &data
	case spec.NodeComponent:
		var data spec.ComponentData
		if err := decodeData(nd, &data); err != nil {
			return spec.Node{}, err
		}
		node.Component = &data
	case spec.NodeTransform:
		var data spec.TransformData
		if err := decodeData(nd, &data); err != nil {
			return spec.Node{}, err
		}
		node.Transform = &data
	case spec.NodeTable:
		var data spec.TableData
		if err := decodeData(nd, &data); err != nil {
			return spec.Node{}, err
		}
		node.Table = &data
	case spec.NodeScreen, spec.NodeImage:
		// Visual nodes carry no typed data bag.
	default:
		return spec.Node{}, fmt.Errorf("node %q has unknown type %q", nd.ID, nd.Type)
	}

	return node, nil
}

// decodeData narrows a node's free-form data bag into the typed variant.
// YAML decodes nested maps as map[string]any under yaml.v3, so a single
// mapstructure pass covers both wire formats.
func decodeData(nd NodeDoc, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder for node %q: %w", nd.ID, err)
	}
	if err := decoder.Decode(nd.Data); err != nil {
		return fmt.Errorf("node %q has malformed %s data: %w", nd.ID, nd.Type, err)
	}
	return nil
}
