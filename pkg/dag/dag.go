package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [DAG.Validate] when an edge
	// references a node that doesn't exist. This indicates graph corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a cycle is detected.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes, edges or the
// graph. Metadata maps are never nil once added to a DAG.
type Metadata map[string]any

// Node is a vertex of the graph with an assigned row (layer).
type Node struct {
	ID   string   // Unique identifier (also used as display label)
	Row  int      // Layer assignment (0 = roots, increasing toward leaves)
	Meta Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// Edge is a directed connection from a dependent to its dependency.
type Edge struct {
	From string   // Dependent node ID
	To   string   // Dependency node ID
	Meta Metadata // Arbitrary key-value metadata (never nil after AddEdge)
}

// DAG is a directed graph with row assignments.
//
// The zero value is not usable - use New to create a valid DAG instance.
type DAG struct {
	nodes    map[string]*Node
	edges    []Edge
	outgoing map[string][]string // nodeID -> children IDs
	incoming map[string][]string // nodeID -> parent IDs
	rows     map[int][]*Node     // row -> nodes in that row
	meta     Metadata
}

// New creates an empty DAG with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *DAG {
	if meta == nil {
		meta = Metadata{}
	}
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		rows:     make(map[int][]*Node),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
func (d *DAG) Meta() Metadata { return d.meta }

// AddNode adds a node to the graph and indexes it by its Row.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	d.nodes[node.ID] = node
	d.rows[node.Row] = append(d.rows[node.Row], node)
	return nil
}

// SetRows updates the row assignments for nodes and rebuilds the row index.
// Nodes not present in the rows map retain their current row assignment.
func (d *DAG) SetRows(rows map[string]int) {
	d.rows = make(map[int][]*Node)
	for _, n := range d.Nodes() {
		if newRow, ok := rows[n.ID]; ok {
			n.Row = newRow
		}
		d.rows[n.Row] = append(d.rows[n.Row], n)
	}
}

// AddEdge adds a directed edge between two existing nodes. Adding an edge
// that already exists is a no-op.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if d.HasEdge(e.From, e.To) {
		return nil
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// HasEdge reports whether the edge from→to exists.
func (d *DAG) HasEdge(from, to string) bool {
	return slices.Contains(d.outgoing[from], to)
}

// RemoveEdge removes the edge from→to if it exists.
func (d *DAG) RemoveEdge(from, to string) {
	d.edges = slices.DeleteFunc(d.edges, func(e Edge) bool { return e.From == from && e.To == to })
	d.outgoing[from] = slices.DeleteFunc(d.outgoing[from], func(s string) bool { return s == to })
	d.incoming[to] = slices.DeleteFunc(d.incoming[to], func(s string) bool { return s == from })
}

// Nodes returns all nodes in the graph sorted by ID. The returned slice
// contains pointers to the actual node structs, so modifications affect the
// graph.
func (d *DAG) Nodes() []*Node {
	ids := slices.Sorted(maps.Keys(d.nodes))
	nodes := make([]*Node, len(ids))
	for i, id := range ids {
		nodes[i] = d.nodes[id]
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs of nodes that this node has edges to (dependencies).
// The returned slice should not be modified.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs of nodes that have edges to this node (dependents).
// The returned slice should not be modified.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// Node returns the node with the given ID and true, or nil and false if not found.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// NodesInRow returns all nodes assigned to the given row, sorted by ID.
func (d *DAG) NodesInRow(row int) []*Node {
	nodes := slices.Clone(d.rows[row])
	slices.SortFunc(nodes, func(a, b *Node) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return nodes
}

// RowCount returns the number of distinct rows (layers) in the graph.
func (d *DAG) RowCount() int { return len(d.rows) }

// RowIDs returns all row indices in sorted ascending order.
func (d *DAG) RowIDs() []int {
	return slices.Sorted(maps.Keys(d.rows))
}

// MaxRow returns the highest row index, or 0 if the graph is empty.
func (d *DAG) MaxRow() int {
	if len(d.rows) == 0 {
		return 0
	}
	rowIDs := d.RowIDs()
	return rowIDs[len(rowIDs)-1]
}

// Sources returns nodes with no incoming edges, sorted by ID. In a
// resolution graph these are the packages nothing else depends on.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, n := range d.Nodes() {
		if len(d.incoming[n.ID]) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges, sorted by ID. These are the
// packages without dependencies.
func (d *DAG) Sinks() []*Node {
	var sinks []*Node
	for _, n := range d.Nodes() {
		if len(d.outgoing[n.ID]) == 0 {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// Validate checks graph integrity and returns nil if valid.
// Returns ErrInvalidEdgeEndpoint if an edge references a missing node or
// ErrGraphHasCycle if a cycle is detected.
func (d *DAG) Validate() error {
	for _, e := range d.edges {
		if _, ok := d.nodes[e.From]; !ok {
			return ErrInvalidEdgeEndpoint
		}
		if _, ok := d.nodes[e.To]; !ok {
			return ErrInvalidEdgeEndpoint
		}
	}
	return d.detectCycles()
}

func (d *DAG) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for id := range d.nodes {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

// NodeIDs extracts the ID from each node in a slice.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
