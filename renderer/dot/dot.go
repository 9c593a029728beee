// Package dot renders a laid-out breakpoint graph through Graphviz.
//
// Nodes keep the lineNumber ranks of the layout: every line becomes a
// rank=same group, ordered by lineIndex with invisible edges.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/ByLCY/texscope/errors"
	"github.com/ByLCY/texscope/layout"
	"github.com/ByLCY/texscope/renderer"
)

// Options configures DOT output.
type Options struct {
	// Detailed adds the line number and predecessor to each label.
	Detailed bool
}

// ToDOT converts a layout result to Graphviz DOT. Edges run from the
// predecessor to the breakpoint so the root sits at the top. Highlighted
// nodes and edges are drawn with a heavier pen; the rest are muted.
func ToDOT(res *layout.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph paragraph {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, fixedsize=true, width=0.6, fontsize=12];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("\n")

	for _, pt := range res.Points {
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(pt.Breakpoint), strings.Join(nodeAttrs(res, pt, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, rank := range ranks(res) {
		ids := make([]string, len(rank))
		for i, bp := range rank {
			ids[i] = fmt.Sprintf("%q", nodeID(bp))
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
		for i := 1; i < len(ids); i++ {
			fmt.Fprintf(&buf, "  %s -> %s [style=invis];\n", ids[i-1], ids[i])
		}
	}

	buf.WriteString("\n")
	for _, e := range res.Edges {
		attrs := "color=\"#0000004d\""
		if e.Highlighted {
			attrs = "penwidth=2"
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", nodeID(e.To), nodeID(e.From), attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(bp int) string { return fmt.Sprintf("@@%d", bp) }

func nodeAttrs(res *layout.Result, pt layout.Point, detailed bool) []string {
	label := pt.Label
	if detailed && res.Graph != nil {
		if n, ok := res.Graph.Node(pt.Breakpoint); ok {
			label = fmt.Sprintf("%s\nline %d", label, n.LineNumber)
		}
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("tooltip=%q", pt.Popup),
	}
	if pt.Highlighted {
		attrs = append(attrs, "penwidth=2", fmt.Sprintf("xlabel=%q", pt.Popup))
	} else {
		attrs = append(attrs, "color=\"#0000004d\"")
	}
	return attrs
}

// ranks groups points by row, in layout order.
func ranks(res *layout.Result) [][]int {
	var out [][]int
	lastY := 0.0
	for i, pt := range res.Points {
		if i == 0 || pt.Y != lastY {
			out = append(out, nil)
			lastY = pt.Y
		}
		out[len(out)-1] = append(out[len(out)-1], pt.Breakpoint)
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// Renderer emits either the DOT source or the SVG Graphviz lays out from it.
type Renderer struct {
	opts Options
	svg  bool
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewSource returns a renderer that writes DOT text.
func NewSource(opts Options) *Renderer { return &Renderer{opts: opts} }

// NewSVG returns a renderer that runs Graphviz and writes SVG.
func NewSVG(opts Options) *Renderer { return &Renderer{opts: opts, svg: true} }

// Render implements renderer.Renderer.
func (r *Renderer) Render(res *layout.Result) ([]byte, error) {
	if res == nil {
		return nil, errors.New(errors.ErrCodeRenderFailed, "nothing to render")
	}
	src := ToDOT(res, r.opts)
	if !r.svg {
		return []byte(src), nil
	}
	out, err := RenderSVG(context.Background(), src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "graphviz")
	}
	return out, nil
}
