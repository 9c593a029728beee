package paragraph_test

import (
	"reflect"
	"testing"

	"github.com/ByLCY/texscope/paragraph"
)

func TestHighlightPath(t *testing.T) {
	g := mustParse(t, loadFixture(t))

	tests := []struct {
		name  string
		start int
		want  []int
	}{
		{"leaf", 5, []int{5, 3, 1, 0}},
		{"second line", 4, []int{4, 1, 0}},
		{"root", 0, []int{0}},
		{"unknown", 42, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := paragraph.HighlightPath(g, tt.start); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("HighlightPath(%d) = %v, want %v", tt.start, got, tt.want)
			}
		})
	}
}

func TestHoverStateTransitions(t *testing.T) {
	g := mustParse(t, loadFixture(t))
	var h paragraph.HoverState

	if _, ok := h.Hovered(); ok {
		t.Fatalf("zero HoverState should be idle")
	}
	if h.Path(g) != nil {
		t.Fatalf("idle state should have no path")
	}

	h.Enter(3)
	if bp, ok := h.Hovered(); !ok || bp != 3 {
		t.Fatalf("expected Hovering(3), got %d %v", bp, ok)
	}
	if got := h.Path(g); !reflect.DeepEqual(got, []int{3, 1, 0}) {
		t.Fatalf("unexpected path %v", got)
	}

	h.Leave()
	if _, ok := h.Hovered(); ok {
		t.Fatalf("expected Idle after Leave")
	}
	if g.Len() != 6 {
		t.Fatalf("hover must not touch the graph")
	}
}

func TestSet(t *testing.T) {
	set := paragraph.Set([]int{5, 3, 1, 0})
	if !set[3] || set[2] {
		t.Fatalf("unexpected set %v", set)
	}
}
