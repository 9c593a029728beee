package paragraph

// HighlightPath walks predecessors from breakpoint back to the root and
// returns the visited indices, hovered node first. The walk stops at the
// first index that is not in the graph, so a dangling reference yields the
// partial path found so far. No index is visited twice.
func HighlightPath(g *Graph, breakpoint int) []int {
	var path []int
	seen := map[int]bool{}
	current := breakpoint
	for !seen[current] {
		n, ok := g.Node(current)
		if !ok {
			break
		}
		seen[current] = true
		path = append(path, current)
		if n.Previous == nil {
			break
		}
		current = *n.Previous
	}
	return path
}

// HoverState tracks which node the pointer is over. The zero value is idle.
// It belongs to a single rendering session and never touches the Graph.
type HoverState struct {
	breakpoint int
	hovering   bool
}

// Enter moves to Hovering(breakpoint).
func (h *HoverState) Enter(breakpoint int) {
	h.breakpoint = breakpoint
	h.hovering = true
}

// Leave returns to Idle.
func (h *HoverState) Leave() {
	h.breakpoint = 0
	h.hovering = false
}

// Hovered returns the hovered breakpoint, or false when idle.
func (h HoverState) Hovered() (int, bool) {
	return h.breakpoint, h.hovering
}

// Path returns the highlighted path for the current state; nil when idle.
func (h HoverState) Path(g *Graph) []int {
	if !h.hovering {
		return nil
	}
	return HighlightPath(g, h.breakpoint)
}

// Set turns a path into a membership set.
func Set(path []int) map[int]bool {
	set := make(map[int]bool, len(path))
	for _, bp := range path {
		set[bp] = true
	}
	return set
}
