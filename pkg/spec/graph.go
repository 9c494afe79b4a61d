package spec

// Graph is a read-only, indexed view over a specification snapshot.
// It is built once per validation run and never mutated; all lookups
// preserve the input ordering of nodes and edges so analysis output
// stays deterministic.
type Graph struct {
	nodes   []*Node
	edges   []*Edge
	screens []*Screen

	byID     map[string]*Node
	byLabel  map[string][]*Node
	incoming map[string][]*Edge
	outgoing map[string][]*Edge
}

// NewGraph builds the indexed view. The screens slice may be nil.
// Input slices are copied; callers may reuse them afterwards.
func NewGraph(nodes []Node, edges []Edge, screens []Screen) *Graph {
	g := &Graph{
		nodes:    make([]*Node, 0, len(nodes)),
		edges:    make([]*Edge, 0, len(edges)),
		screens:  make([]*Screen, 0, len(screens)),
		byID:     make(map[string]*Node, len(nodes)),
		byLabel:  make(map[string][]*Node),
		incoming: make(map[string][]*Edge),
		outgoing: make(map[string][]*Edge),
	}

	for i := range nodes {
		n := nodes[i]
		g.nodes = append(g.nodes, &n)
		g.byID[n.ID] = &n
		if label := n.Label(); label != "" {
			g.byLabel[label] = append(g.byLabel[label], &n)
		}
	}

	for i := range edges {
		e := edges[i]
		g.edges = append(g.edges, &e)
		g.outgoing[e.Source] = append(g.outgoing[e.Source], &e)
		g.incoming[e.Target] = append(g.incoming[e.Target], &e)
	}

	for i := range screens {
		s := screens[i]
		g.screens = append(g.screens, &s)
	}

	return g
}

// Nodes returns all nodes in input order.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Edges returns all edges in input order.
func (g *Graph) Edges() []*Edge {
	return g.edges
}

// Screens returns all screens in input order.
func (g *Graph) Screens() []*Screen {
	return g.screens
}

// NodeByID looks a node up by id.
func (g *Graph) NodeByID(id string) (*Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// NodesByLabel returns all nodes carrying the exact label
// (case-sensitive), in input order.
func (g *Graph) NodesByLabel(label string) []*Node {
	return g.byLabel[label]
}

// Incoming returns the edges targeting the node, in input order.
func (g *Graph) Incoming(id string) []*Edge {
	return g.incoming[id]
}

// Outgoing returns the edges originating at the node, in input order.
func (g *Graph) Outgoing(id string) []*Edge {
	return g.outgoing[id]
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// LabelOf returns the label of the node with the given id, falling back
// to the id itself for unlabeled or unresolvable nodes. Used when
// rendering issues for humans.
func (g *Graph) LabelOf(id string) string {
	if n, ok := g.byID[id]; ok {
		if label := n.Label(); label != "" {
			return label
		}
	}
	return id
}

// SourceTypeOf returns the node type of an edge's source, or
// NodeTypeUnknown when the source id does not resolve. Dangling edges
// stay visible to provenance analysis instead of vanishing.
func (g *Graph) SourceTypeOf(e *Edge) NodeType {
	if n, ok := g.byID[e.Source]; ok {
		return n.Type
	}
	return NodeTypeUnknown
}
