package spec

// NodeType represents the kind of a specification node.
type NodeType string

// Node type constants.
const (
	NodeDataPoint NodeType = "datapoint"
	NodeComponent NodeType = "component"
	NodeTransform NodeType = "transform"
	NodeTable     NodeType = "table"
	NodeScreen    NodeType = "screen"
	NodeImage     NodeType = "image"
)

// NodeTypeUnknown is reported when an edge endpoint does not resolve
// to a node and its type therefore cannot be determined.
const NodeTypeUnknown NodeType = "unknown"

// Valid reports whether t is one of the defined node types.
func (t NodeType) Valid() bool {
	switch t {
	case NodeDataPoint, NodeComponent, NodeTransform, NodeTable, NodeScreen, NodeImage:
		return true
	default:
		return false
	}
}

// Visual reports whether nodes of this type are visual-only or container
// surrogates. Visual nodes are excluded from business-rule analysis.
func (t NodeType) Visual() bool {
	return t == NodeScreen || t == NodeImage
}

// EdgeType represents the kind of a directed relationship between nodes.
type EdgeType string

// Edge type constants.
const (
	EdgeFlowsTo     EdgeType = "flows-to"
	EdgeDerivesFrom EdgeType = "derives-from"
	EdgeTransforms  EdgeType = "transforms"
	EdgeValidates   EdgeType = "validates"
	EdgeContains    EdgeType = "contains"
)

// Computation reports whether the edge kind carries a computed-value
// relationship. Only computation edges participate in cycle detection.
func (t EdgeType) Computation() bool {
	return t == EdgeDerivesFrom || t == EdgeTransforms
}

// DataType is the declared value type of a data point or table column.
type DataType string

// Data type constants. DataTBD is a placeholder meaning "not yet determined"
// and is exempt from strict type reconciliation.
const (
	DataString  DataType = "string"
	DataNumber  DataType = "number"
	DataBoolean DataType = "boolean"
	DataObject  DataType = "object"
	DataArray   DataType = "array"
	DataTBD     DataType = "tbd"
)

// Concrete reports whether the type is a real type (not TBD, not empty).
func (t DataType) Concrete() bool {
	return t != "" && t != DataTBD
}

// SourceKind declares where a data point's value originates.
type SourceKind string

// Source kind constants.
const (
	SourceCaptured  SourceKind = "captured"
	SourceRetrieved SourceKind = "retrieved"
	SourceInferred  SourceKind = "inferred"
)

// TransformKind is the behavioral category of a transform node.
type TransformKind string

// Transform kind constants.
const (
	TransformFormula    TransformKind = "formula"
	TransformValidation TransformKind = "validation"
	TransformWorkflow   TransformKind = "workflow"
)

// Position is a node's layout coordinate. Assigned by the layout engine
// and ignored by validation.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node is a typed vertex in the specification graph. Exactly one of the
// data variants is set, matching Type; the narrowing accessors below are
// the supported way to reach the typed data.
type Node struct {
	ID       string    `json:"id" yaml:"id"`
	Type     NodeType  `json:"type" yaml:"type"`
	Position *Position `json:"position,omitempty" yaml:"position,omitempty"`

	DataPoint *DataPointData `json:"-" yaml:"-"`
	Component *ComponentData `json:"-" yaml:"-"`
	Transform *TransformData `json:"-" yaml:"-"`
	Table     *TableData     `json:"-" yaml:"-"`
}

// DataPointData is the typed data bag of a datapoint node.
type DataPointData struct {
	Label            string     `json:"label" yaml:"label" mapstructure:"label"`
	Type             DataType   `json:"type" yaml:"type" mapstructure:"type"`
	Source           SourceKind `json:"source,omitempty" yaml:"source,omitempty" mapstructure:"source"`
	SourceDefinition string     `json:"sourceDefinition,omitempty" yaml:"sourceDefinition,omitempty" mapstructure:"sourceDefinition"`
	Constraints      []string   `json:"constraints,omitempty" yaml:"constraints,omitempty" mapstructure:"constraints"`
}

// SourceOrDefault returns the declared source kind, defaulting to
// captured when absent.
func (d *DataPointData) SourceOrDefault() SourceKind {
	if d.Source == "" {
		return SourceCaptured
	}
	return d.Source
}

// ComponentData is the typed data bag of a component node.
// Entries in Displays and Captures reference nodes by id or by label;
// both forms are valid.
type ComponentData struct {
	Label        string   `json:"label" yaml:"label" mapstructure:"label"`
	Displays     []string `json:"displays,omitempty" yaml:"displays,omitempty" mapstructure:"displays"`
	Captures     []string `json:"captures,omitempty" yaml:"captures,omitempty" mapstructure:"captures"`
	WireframeRef string   `json:"wireframeRef,omitempty" yaml:"wireframeRef,omitempty" mapstructure:"wireframeRef"`
}

// Logic holds a transform's logic definition. The content is inert data
// as far as validation is concerned.
type Logic struct {
	Type    string `json:"type" yaml:"type" mapstructure:"type"`
	Content string `json:"content" yaml:"content" mapstructure:"content"`
}

// WorkflowMember is a named step inside a workflow transform, optionally
// bound to another transform node by id.
type WorkflowMember struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	TransformID string `json:"transformId,omitempty" yaml:"transformId,omitempty" mapstructure:"transformId"`
	LogicType   string `json:"logicType,omitempty" yaml:"logicType,omitempty" mapstructure:"logicType"`
}

// TransformData is the typed data bag of a transform node.
// Members is populated only for workflow transforms.
type TransformData struct {
	Label       string           `json:"label" yaml:"label" mapstructure:"label"`
	Type        TransformKind    `json:"type" yaml:"type" mapstructure:"type"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Inputs      []string         `json:"inputs,omitempty" yaml:"inputs,omitempty" mapstructure:"inputs"`
	Outputs     []string         `json:"outputs,omitempty" yaml:"outputs,omitempty" mapstructure:"outputs"`
	Logic       *Logic           `json:"logic,omitempty" yaml:"logic,omitempty" mapstructure:"logic"`
	Members     []WorkflowMember `json:"members,omitempty" yaml:"members,omitempty" mapstructure:"members"`
}

// IsWorkflow reports whether the transform composes other transforms
// rather than holding direct logic.
func (d *TransformData) IsWorkflow() bool {
	return d.Type == TransformWorkflow
}

// Column is a table column definition.
type Column struct {
	Name string   `json:"name" yaml:"name" mapstructure:"name"`
	Type DataType `json:"type" yaml:"type" mapstructure:"type"`
}

// TableData is the typed data bag of a table node.
type TableData struct {
	Label      string   `json:"label" yaml:"label" mapstructure:"label"`
	SourceType string   `json:"sourceType,omitempty" yaml:"sourceType,omitempty" mapstructure:"sourceType"`
	Columns    []Column `json:"columns,omitempty" yaml:"columns,omitempty" mapstructure:"columns"`
	Endpoint   string   `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`
}

// Edge is a typed, directed relationship between two nodes.
type Edge struct {
	ID     string   `json:"id" yaml:"id"`
	Source string   `json:"source" yaml:"source"`
	Target string   `json:"target" yaml:"target"`
	Type   EdgeType `json:"edgeType" yaml:"edgeType"`
}

// Rect is a region's bounding rectangle in screen coordinates.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Region is a rectangular area of a screen referencing placed nodes.
// ComponentNodeID is set when the region has been promoted to a
// first-class component node.
type Region struct {
	ID              string   `json:"id" yaml:"id"`
	Rect            Rect     `json:"rect" yaml:"rect"`
	ElementIDs      []string `json:"elementIds,omitempty" yaml:"elementIds,omitempty"`
	ComponentNodeID string   `json:"componentNodeId,omitempty" yaml:"componentNodeId,omitempty"`
}

// Screen owns an ordered set of regions.
type Screen struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Regions []Region `json:"regions,omitempty" yaml:"regions,omitempty"`
}

// AsDataPoint narrows the node to its datapoint data.
func (n *Node) AsDataPoint() (*DataPointData, bool) {
	if n.Type == NodeDataPoint && n.DataPoint != nil {
		return n.DataPoint, true
	}
	return nil, false
}

// AsComponent narrows the node to its component data.
func (n *Node) AsComponent() (*ComponentData, bool) {
	if n.Type == NodeComponent && n.Component != nil {
		return n.Component, true
	}
	return nil, false
}

// AsTransform narrows the node to its transform data.
func (n *Node) AsTransform() (*TransformData, bool) {
	if n.Type == NodeTransform && n.Transform != nil {
		return n.Transform, true
	}
	return nil, false
}

// AsTable narrows the node to its table data.
func (n *Node) AsTable() (*TableData, bool) {
	if n.Type == NodeTable && n.Table != nil {
		return n.Table, true
	}
	return nil, false
}

// Label returns the node's human-readable label, or "" when the node
// carries no labeled data (screen and image nodes).
func (n *Node) Label() string {
	switch {
	case n.DataPoint != nil:
		return n.DataPoint.Label
	case n.Component != nil:
		return n.Component.Label
	case n.Transform != nil:
		return n.Transform.Label
	case n.Table != nil:
		return n.Table.Label
	default:
		return ""
	}
}
