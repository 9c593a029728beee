package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ByLCY/texscope/config"
	"github.com/ByLCY/texscope/paragraph"
)

func (c *CLI) exploreCommand() *cobra.Command {
	var (
		output string
		style  string
	)

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Step through breakpoints and inspect their predecessor chains",
		Long: `Explore a paragraph trace in the terminal.

↑/↓ (or k/j) move the hover between breakpoints in layout order, esc clears it.
The highlighted chain is listed with total demerits, together with the
potential breaks recorded before the hovered breakpoint. Press w to write the
current view as SVG to the --output path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(style)
			if err != nil {
				return err
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			g, err := paragraph.Parse(text, c.Logger)
			if err != nil {
				return err
			}

			opts := []tea.ProgramOption{tea.WithContext(cmd.Context()), tea.WithOutput(cmd.OutOrStdout())}
			if fromStdin(args) {
				opts = append(opts, tea.WithInputTTY())
			}
			_, err = tea.NewProgram(newExploreModel(g, cfg.Style, output), opts...).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "SVG file written by the w key")
	cmd.Flags().StringVar(&style, "style", "", "TOML or YAML style file")

	return cmd
}

// exploreModel drives a HoverState from the keyboard. The cursor walks the
// graph's nodes in layout order.
type exploreModel struct {
	graph  *paragraph.Graph
	style  config.Style
	output string

	cursor int
	hover  paragraph.HoverState
	status string
	failed bool
}

func newExploreModel(g *paragraph.Graph, style config.Style, output string) exploreModel {
	return exploreModel{graph: g, style: style, output: output}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "esc":
		m.hover.Leave()
	case "w":
		m.write()
	}
	return m, nil
}

// move enters the node under the cursor; from Idle the cursor stays put.
func (m *exploreModel) move(delta int) {
	if _, hovering := m.hover.Hovered(); hovering {
		m.cursor = min(max(m.cursor+delta, 0), m.graph.Len()-1)
	}
	m.hover.Enter(m.graph.Nodes[m.cursor].Breakpoint)
	m.status = ""
}

func (m *exploreModel) write() {
	if m.output == "" {
		m.status, m.failed = "no --output path given", true
		return
	}
	res, err := buildLayout(m.graph, m.style, m.hover)
	if err == nil {
		var out []byte
		if out, err = encodeParagraph(res, formatSVG, m.style, false); err == nil {
			err = os.WriteFile(m.output, out, 0o644)
		}
	}
	if err != nil {
		m.status, m.failed = err.Error(), true
		return
	}
	m.status, m.failed = "wrote "+m.output, false
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Paragraph breakpoints"))
	b.WriteString("\n\n")

	path := m.hover.Path(m.graph)
	onPath := paragraph.Set(path)
	hovered, hovering := m.hover.Hovered()

	for ln := 0; ln <= m.graph.MaxLines; ln++ {
		fmt.Fprintf(&b, "%s ", styleDim.Render(fmt.Sprintf("line %2d", ln)))
		for _, n := range m.graph.Line(ln) {
			label := fmt.Sprintf(" %d ", n.Breakpoint)
			switch {
			case hovering && n.Breakpoint == hovered:
				label = styleCursor.Render(fmt.Sprintf("[%d]", n.Breakpoint))
			case onPath[n.Breakpoint]:
				label = stylePath.Render(label)
			default:
				label = styleNode.Render(label)
			}
			b.WriteString(label)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if hovering {
		b.WriteString(m.pathView(path, hovered))
	} else {
		b.WriteString(styleDim.Render("nothing hovered"))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.failed {
			b.WriteString(styleError.Render(m.status))
		} else {
			b.WriteString(styleSuccess.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleDim.Render("↑/↓ move  esc clear  w write svg  q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m exploreModel) pathView(path []int, hovered int) string {
	var b strings.Builder
	steps := make([]string, 0, len(path))
	for _, bp := range path {
		n, _ := m.graph.Node(bp)
		steps = append(steps, fmt.Sprintf("@@%d (t=%d)", bp, n.TotalDemerits))
	}
	fmt.Fprintf(&b, "path  %s\n", stylePath.Render(strings.Join(steps, " ← ")))

	n, ok := m.graph.Node(hovered)
	if !ok {
		return b.String()
	}
	fmt.Fprintf(&b, "line %d, class %d, %d potential breaks\n", n.LineNumber, n.Classification, len(n.Potentials))
	for _, p := range n.Potentials {
		fmt.Fprintf(&b, "  via @@%d  d=%d\n", p.Previous, p.Demerits)
	}
	return b.String()
}
