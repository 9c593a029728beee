package paragraph

import (
	"slices"
	"testing"
)

func ptr(i int) *int { return &i }

func TestHighlightPathStopsAtDanglingPredecessor(t *testing.T) {
	// @@2 was never decided, so the walk from @@5 ends after @@3.
	g := newGraph(map[int]*Node{
		0: {Breakpoint: 0},
		1: {Breakpoint: 1, Previous: ptr(0), LineNumber: 1},
		3: {Breakpoint: 3, Previous: ptr(2), LineNumber: 2},
		5: {Breakpoint: 5, Previous: ptr(3), LineNumber: 3},
	}, 3)

	if got := HighlightPath(g, 5); !slices.Equal(got, []int{5, 3}) {
		t.Fatalf("HighlightPath(5) = %v, want [5 3]", got)
	}
	if got := HighlightPath(g, 1); !slices.Equal(got, []int{1, 0}) {
		t.Fatalf("HighlightPath(1) = %v, want [1 0]", got)
	}
}

func TestHighlightPathVisitsEachNodeOnce(t *testing.T) {
	g := newGraph(map[int]*Node{
		0: {Breakpoint: 0},
		7: {Breakpoint: 7, Previous: ptr(8), LineNumber: 1},
		8: {Breakpoint: 8, Previous: ptr(7), LineNumber: 1},
	}, 1)

	if got := HighlightPath(g, 7); !slices.Equal(got, []int{7, 8}) {
		t.Fatalf("HighlightPath(7) = %v, want [7 8]", got)
	}
}
