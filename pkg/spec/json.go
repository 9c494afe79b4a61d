package spec

import (
	"encoding/json"
	"fmt"
)

// nodeJSON is Node's JSON wire form. The typed variant travels as a
// free-form data bag keyed by the node type, matching the document
// format in pkg/specio and the store's data column.
type nodeJSON struct {
	ID       string          `json:"id"`
	Type     NodeType        `json:"type"`
	Position *Position       `json:"position,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// MarshalJSON emits the node with its typed data variant in a data bag.
func (n Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{ID: n.ID, Type: n.Type, Position: n.Position}

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
	}
	if variant != nil {
		data, err := json.Marshal(variant)
		if err != nil {
			return nil, fmt.Errorf("failed to encode node %q data: %w", n.ID, err)
		}
		out.Data = data
	}

	return json.Marshal(out)
}

// UnmarshalJSON narrows the data bag back into the variant matching the
// node type. Visual nodes carry no bag; a bag on an unexpected type is
// ignored rather than rejected, mirroring the document decoder's
// tolerance for extra fields.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	n.ID = raw.ID
	n.Type = raw.Type
	n.Position = raw.Position
	n.DataPoint, n.Component, n.Transform, n.Table = nil, nil, nil, nil

	if len(raw.Data) == 0 || string(raw.Data) == "null" {
		return nil
	}

	var err error
	switch raw.Type {
	case NodeDataPoint:
		n.DataPoint = &DataPointData{}
		err = json.Unmarshal(raw.Data, n.DataPoint)
	case NodeComponent:
		n.Component = &ComponentData{}
		err = json.Unmarshal(raw.Data, n.Component)
	case NodeTransform:
		n.Transform = &TransformData{}
		err = json.Unmarshal(raw.Data, n.Transform)
	case NodeTable:
		n.Table = &TableData{}
		err = json.Unmarshal(raw.Data, n.Table)
	}
	if err != nil {
		return fmt.Errorf("failed to decode node %q data: %w", raw.ID, err)
	}
	return nil
}
