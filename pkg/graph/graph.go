package graph

// Node shapes used by the builder.
const (
	ShapePoint        = "point"
	ShapeCircle       = "circle"
	ShapeDoubleCircle = "doublecircle"
)

// Graph is the abstract description handed to the renderer.
// Nodes and edges keep their insertion order.
type Graph struct {
	Name      string
	Nodes     []*Node
	Edges     []*Edge
	Attrs     map[string]string // graph-level attributes
	NodeAttrs map[string]string // node [...] defaults
	EdgeAttrs map[string]string // edge [...] defaults

	index map[string]*Node
}

// Node is a declared node of the graph.
type Node struct {
	ID        string
	Shape     string
	Invisible bool
}

// Edge connects two node IDs.
type Edge struct {
	From  string
	To    string
	Label string
	// Implicit marks the edge from the pseudo start node.
	Implicit bool
}

// NewGraph returns an empty graph with initialized attribute maps.
func NewGraph(name string) *Graph {
	return &Graph{
		Name:      name,
		Attrs:     make(map[string]string),
		NodeAttrs: make(map[string]string),
		EdgeAttrs: make(map[string]string),
		index:     make(map[string]*Node),
	}
}

// Declare adds a node, or updates the shape of an existing node with the same ID.
// A double circle is never downgraded, so when two source names collapse to one
// node the accepting shape wins. It returns the declared node.
func (g *Graph) Declare(id, shape string) *Node {
	if g.index == nil {
		g.index = make(map[string]*Node)
	}
	if n, ok := g.index[id]; ok {
		if n.Shape != ShapeDoubleCircle {
			n.Shape = shape
		}
		return n
	}
	n := &Node{ID: id, Shape: shape}
	g.index[id] = n
	g.Nodes = append(g.Nodes, n)
	return n
}

// Node returns the node with the given ID, or nil if not declared.
func (g *Graph) Node(id string) *Node {
	return g.index[id]
}

// AddEdge appends an edge.
func (g *Graph) AddEdge(e *Edge) {
	g.Edges = append(g.Edges, e)
}

// OutgoingEdges returns all edges originating from the given node ID.
func (g *Graph) OutgoingEdges(id string) []*Edge {
	var result []*Edge
	for _, e := range g.Edges {
		if e.From == id {
			result = append(result, e)
		}
	}
	return result
}

// IncomingEdges returns all edges terminating at the given node ID.
func (g *Graph) IncomingEdges(id string) []*Edge {
	var result []*Edge
	for _, e := range g.Edges {
		if e.To == id {
			result = append(result, e)
		}
	}
	return result
}

// Attrs returns the DOT attributes of the node.
func (n *Node) Attrs() map[string]string {
	attrs := map[string]string{}
	if n.Shape != "" {
		attrs["shape"] = n.Shape
	}
	if n.Invisible {
		attrs["style"] = "invis"
	}
	return attrs
}

// Attrs returns the DOT attributes of the edge.
// The implicit start edge carries no label at all.
func (e *Edge) Attrs() map[string]string {
	if e.Implicit {
		return map[string]string{}
	}
	return map[string]string{"label": e.Label}
}
