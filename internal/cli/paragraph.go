package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/texscope/config"
	"github.com/ByLCY/texscope/errors"
	"github.com/ByLCY/texscope/internal/watch"
	"github.com/ByLCY/texscope/layout"
	"github.com/ByLCY/texscope/paragraph"
	"github.com/ByLCY/texscope/renderer"
	canvasrenderer "github.com/ByLCY/texscope/renderer/canvas"
	"github.com/ByLCY/texscope/renderer/dot"
)

// Output formats for the paragraph command.
const (
	formatSVG      = "svg"
	formatPDF      = "pdf"
	formatPNG      = "png"
	formatDOT      = "dot"
	formatGraphviz = "graphviz"
	formatJSON     = "json"
)

var paragraphFormats = []string{formatSVG, formatPDF, formatPNG, formatDOT, formatGraphviz, formatJSON}

type paragraphOpts struct {
	format   string
	output   string
	hover    int
	style    string
	debug    string
	detailed bool
	watch    bool
}

func (c *CLI) paragraphCommand() *cobra.Command {
	var opts paragraphOpts

	cmd := &cobra.Command{
		Use:   "paragraph [file]",
		Short: "Render the breakpoint graph of a paragraph trace",
		Long: `Render the breakpoint graph recorded by \tracingparagraphs.

Each decided breakpoint becomes a circle placed on the row of the line it ends.
Edges join every breakpoint to the breakpoint that ends the previous line.
With --hover N the chain from N back to the paragraph start is highlighted.
With --watch the output is rewritten every time the trace file changes.`,
		Example: `  texscope paragraph doc.log -o doc.svg
  texscope paragraph doc.log --hover 12 -f pdf -o doc.pdf
  pdflatex doc.tex | texscope paragraph -f dot
  texscope paragraph doc.log.xz -o doc.svg --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParagraph(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatSVG, "output format: "+strings.Join(paragraphFormats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&opts.hover, "hover", -1, "highlight the predecessor chain of this breakpoint")
	cmd.Flags().StringVar(&opts.style, "style", "", "TOML or YAML style file")
	cmd.Flags().StringVar(&opts.debug, "debug", "", "write the computed layout as JSON to this path")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add line numbers to DOT labels")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the input file changes")

	return cmd
}

func (c *CLI) runParagraph(cmd *cobra.Command, args []string, opts paragraphOpts) error {
	cfg, err := config.Load(opts.style)
	if err != nil {
		return err
	}
	if opts.watch && (fromStdin(args) || opts.output == "") {
		return errors.New(errors.ErrCodeInvalidInput, "--watch needs an input file and --output")
	}

	if err := c.renderParagraph(cmd, args, opts, cfg); err != nil {
		if !opts.watch {
			return err
		}
		c.Logger.Error("render failed", "err", err)
	}
	if !opts.watch {
		return nil
	}

	w := watch.New(args[0], func() {
		if err := c.renderParagraph(cmd, args, opts, cfg); err != nil {
			c.Logger.Error("render failed", "err", err)
		}
	}, c.Logger)
	if err := w.Watch(cmd.Context()); err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (c *CLI) renderParagraph(cmd *cobra.Command, args []string, opts paragraphOpts, cfg config.Config) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	g, err := paragraph.Parse(text, c.Logger)
	if err != nil {
		return err
	}
	c.Logger.Debug("graph built", "nodes", g.Len(), "lines", g.MaxLines)

	var hover paragraph.HoverState
	if opts.hover >= 0 {
		if _, ok := g.Node(opts.hover); !ok {
			c.Logger.Warn("hovered breakpoint not in graph", "breakpoint", opts.hover)
		}
		hover.Enter(opts.hover)
	}
	res, err := buildLayout(g, cfg.Style, hover)
	if err != nil {
		return err
	}

	if opts.debug != "" {
		if err := layout.WriteJSON(res, opts.debug); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "writing layout debug")
		}
		c.Logger.Debug("layout written", "path", opts.debug)
	}

	out, err := encodeParagraph(res, opts.format, cfg.Style, opts.detailed)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, opts.output, out); err != nil {
		return err
	}
	if opts.output != "" {
		c.Logger.Info("rendered", "format", opts.format, "path", opts.output)
	}
	return nil
}

func buildLayout(g *paragraph.Graph, style config.Style, hover paragraph.HoverState) (*layout.Result, error) {
	res, err := layout.Build(g, layout.BuildOptions{
		Hover:         hover,
		LabelTemplate: style.Label,
		PopupTemplate: style.Popup,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "layout")
	}
	return res, nil
}

// paragraphDocument is the JSON form of a rendered paragraph.
type paragraphDocument struct {
	Graph  *paragraph.Graph `json:"graph"`
	Layout *layout.Result   `json:"layout"`
}

func encodeParagraph(res *layout.Result, format string, style config.Style, detailed bool) ([]byte, error) {
	if format == formatJSON {
		out, err := json.MarshalIndent(paragraphDocument{Graph: res.Graph, Layout: res}, "", "  ")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encoding json")
		}
		return append(out, '\n'), nil
	}
	r, err := newRenderer(format, style, detailed)
	if err != nil {
		return nil, err
	}
	return r.Render(res)
}

func newRenderer(format string, style config.Style, detailed bool) (renderer.Renderer, error) {
	switch strings.ToLower(format) {
	case formatSVG, formatPDF, formatPNG:
		return canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Format: format, Style: style}), nil
	case formatDOT:
		return dot.NewSource(dot.Options{Detailed: detailed}), nil
	case formatGraphviz:
		return dot.NewSVG(dot.Options{Detailed: detailed}), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unknown format %q (want one of %s)", format, strings.Join(paragraphFormats, ", "))
	}
}
