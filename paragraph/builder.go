package paragraph

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/texscope/errors"
	"github.com/ByLCY/texscope/trace"
)

// Parse classifies text and builds its graph.
func Parse(text string, logger *log.Logger) (*Graph, error) {
	return Build(trace.Scan(text, logger), logger)
}

// Build consumes classified records in order. Potentials accumulate until
// the next decided breakpoint, which takes them over; potentials left at the
// end of the input are dropped. A decided breakpoint whose predecessor chain
// does not reach the root fails the whole build with ErrCodeBrokenChain.
func Build(records []trace.Record, logger *log.Logger) (*Graph, error) {
	if logger == nil {
		logger = log.Default()
	}

	arena := map[int]*Node{
		RootBreakpoint: {Breakpoint: RootBreakpoint, Potentials: []Potential{}},
	}
	maxLines := 0
	pending := []Potential{}

	for _, rec := range records {
		switch r := rec.(type) {
		case trace.Potential:
			pending = append(pending, Potential{Previous: r.Previous, Demerits: r.Demerits})
		case trace.Decided:
			if r.Breakpoint == RootBreakpoint {
				return nil, errors.New(errors.ErrCodeBrokenChain,
					"breakpoint @@%d is the paragraph start and cannot be decided again", r.Breakpoint)
			}
			hops, err := hopsToRoot(arena, r.Previous)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeBrokenChain, err,
					"breakpoint @@%d", r.Breakpoint)
			}
			prev := r.Previous
			node := &Node{
				Breakpoint:     r.Breakpoint,
				TotalDemerits:  r.TotalDemerits,
				Classification: r.Classification,
				Previous:       &prev,
				LineNumber:     hops + 1,
				Potentials:     pending,
			}
			if _, dup := arena[r.Breakpoint]; dup {
				logger.Debug("breakpoint redefined", "breakpoint", r.Breakpoint)
			}
			arena[r.Breakpoint] = node
			maxLines = max(maxLines, node.LineNumber)
			pending = []Potential{}
		case trace.Unrecognized:
			// already reported by the classifier
		}
	}
	if len(pending) > 0 {
		logger.Debug("dropping potentials without a decided breakpoint", "count", len(pending))
	}

	return newGraph(arena, maxLines), nil
}

// hopsToRoot counts predecessor hops from breakpoint back to the root. The
// walk is bounded by the arena size, so a cycle fails instead of spinning.
func hopsToRoot(arena map[int]*Node, breakpoint int) (int, error) {
	hops := 0
	current := breakpoint
	for current != RootBreakpoint {
		if hops > len(arena) {
			return 0, fmt.Errorf("predecessor chain through @@%d does not terminate", breakpoint)
		}
		node, ok := arena[current]
		if !ok {
			return 0, fmt.Errorf("predecessor @@%d has not been decided", current)
		}
		if node.Previous == nil {
			return 0, fmt.Errorf("predecessor @@%d has no predecessor of its own", current)
		}
		hops++
		current = *node.Previous
	}
	return hops, nil
}

// newGraph orders nodes by line number and breakpoint index and assigns
// each node its ordinal within its line.
func newGraph(arena map[int]*Node, maxLines int) *Graph {
	nodes := make([]Node, 0, len(arena))
	for _, n := range arena {
		nodes = append(nodes, *n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].LineNumber != nodes[j].LineNumber {
			return nodes[i].LineNumber < nodes[j].LineNumber
		}
		return nodes[i].Breakpoint < nodes[j].Breakpoint
	})

	g := &Graph{Nodes: nodes, MaxLines: maxLines, index: make(map[int]int, len(nodes))}
	for i := range g.Nodes {
		if i > 0 && g.Nodes[i-1].LineNumber == g.Nodes[i].LineNumber {
			g.Nodes[i].LineIndex = g.Nodes[i-1].LineIndex + 1
		} else {
			g.Nodes[i].LineIndex = 0
		}
		g.index[g.Nodes[i].Breakpoint] = i
	}
	return g
}
