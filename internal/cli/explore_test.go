package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ByLCY/texscope/config"
	"github.com/ByLCY/texscope/paragraph"
)

func foxModel(t *testing.T, output string) exploreModel {
	t.Helper()
	data, err := os.ReadFile(foxTrace)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	g, err := paragraph.Parse(string(data), nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return newExploreModel(g, config.Default().Style, output)
}

func press(m exploreModel, keys ...tea.KeyMsg) exploreModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(exploreModel)
	}
	return m
}

var (
	keyDown = tea.KeyMsg{Type: tea.KeyDown}
	keyUp   = tea.KeyMsg{Type: tea.KeyUp}
	keyEsc  = tea.KeyMsg{Type: tea.KeyEsc}
	keyW    = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")}
	keyQ    = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func TestExploreStartsIdle(t *testing.T) {
	m := foxModel(t, "")
	if _, hovering := m.hover.Hovered(); hovering {
		t.Fatal("expected idle model")
	}
	if !strings.Contains(m.View(), "nothing hovered") {
		t.Fatalf("unexpected idle view:\n%s", m.View())
	}
}

func TestExploreMovesHover(t *testing.T) {
	m := foxModel(t, "")

	m = press(m, keyDown)
	if bp, ok := m.hover.Hovered(); !ok || bp != 0 {
		t.Fatalf("first key should hover the root, got %d %v", bp, ok)
	}

	m = press(m, keyDown, keyDown, keyDown, keyDown, keyDown, keyDown, keyDown)
	bp, _ := m.hover.Hovered()
	if bp != 5 {
		t.Fatalf("cursor should clamp at the last node, got %d", bp)
	}
	if got := m.hover.Path(m.graph); !slices.Equal(got, []int{5, 3, 1, 0}) {
		t.Fatalf("path = %v", got)
	}
	if view := m.View(); !strings.Contains(view, "@@5 (t=344)") || !strings.Contains(view, "@@3 (t=244)") {
		t.Fatalf("view should list the path with demerits:\n%s", view)
	}

	m = press(m, keyUp, keyUp)
	if bp, _ := m.hover.Hovered(); bp != 3 {
		t.Fatalf("expected hover on 3 after moving up, got %d", bp)
	}
	if !strings.Contains(m.View(), "2 potential breaks") {
		t.Fatalf("expected potentials of node 3:\n%s", m.View())
	}

	m = press(m, keyEsc)
	if _, hovering := m.hover.Hovered(); hovering {
		t.Fatal("esc should return to idle")
	}
	if m.hover.Path(m.graph) != nil {
		t.Fatal("idle model should have no path")
	}
}

func TestExploreWrite(t *testing.T) {
	m := press(foxModel(t, ""), keyW)
	if !m.failed {
		t.Fatal("write without output should fail")
	}

	out := filepath.Join(t.TempDir(), "hover.svg")
	m = press(foxModel(t, out), keyDown, keyDown, keyW)
	if m.failed {
		t.Fatalf("write failed: %s", m.status)
	}
	data, err := os.ReadFile(out)
	if err != nil || !strings.Contains(string(data), "<svg") {
		t.Fatalf("expected svg written: %v", err)
	}
}

func TestExploreQuit(t *testing.T) {
	_, cmd := foxModel(t, "").Update(keyQ)
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
}
