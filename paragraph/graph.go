// Package paragraph rebuilds the breakpoint graph TeX explores while
// splitting a paragraph into lines.
//
// Decided breakpoints form a tree rooted at the synthetic breakpoint 0; each
// node points at the breakpoint that ends the previous line. A Graph is built
// in one pass from classified trace records and is never mutated afterwards.
package paragraph

// RootBreakpoint is the synthetic breakpoint at the start of the paragraph.
const RootBreakpoint = 0

// Potential is a candidate break considered before the next decided
// breakpoint, with the predecessor and demerits it would have produced.
type Potential struct {
	Previous int `json:"previousBreakpoint"`
	Demerits int `json:"demerits"`
}

// Node is a decided breakpoint.
type Node struct {
	Breakpoint     int         `json:"breakpointIndex"`
	TotalDemerits  int         `json:"totalDemerits"`
	Classification int         `json:"classification"`
	Previous       *int        `json:"previousBreakpoint"` // nil only for the root
	LineNumber     int         `json:"lineNumber"`
	LineIndex      int         `json:"lineIndex"`
	Potentials     []Potential `json:"potentials"`
}

// IsRoot reports whether n is the synthetic root.
func (n Node) IsRoot() bool { return n.Previous == nil }

// Edge joins a node to its predecessor.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Graph holds every decided breakpoint ordered by line number, then by
// line index.
type Graph struct {
	Nodes    []Node `json:"nodes"`
	MaxLines int    `json:"maxLines"`

	index map[int]int
}

// Len returns the number of nodes, root included.
func (g *Graph) Len() int { return len(g.Nodes) }

// Node looks up a breakpoint by index.
func (g *Graph) Node(breakpoint int) (Node, bool) {
	i, ok := g.index[breakpoint]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// Predecessor returns the node n points at.
func (g *Graph) Predecessor(n Node) (Node, bool) {
	if n.Previous == nil {
		return Node{}, false
	}
	return g.Node(*n.Previous)
}

// Columns counts the distinct line indices in the graph, which is the size
// of the widest line.
func (g *Graph) Columns() int {
	widest := 0
	for _, n := range g.Nodes {
		if n.LineIndex+1 > widest {
			widest = n.LineIndex + 1
		}
	}
	return widest
}

// Line returns the nodes ending line number ln, ordered by line index.
func (g *Graph) Line(ln int) []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.LineNumber == ln {
			out = append(out, n)
		}
	}
	return out
}

// Edges lists node→predecessor pairs in node order. Nodes whose
// predecessor is missing contribute no edge.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if p, ok := g.Predecessor(n); ok {
			edges = append(edges, Edge{From: n.Breakpoint, To: p.Breakpoint})
		}
	}
	return edges
}
