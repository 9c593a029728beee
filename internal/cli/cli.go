// Package cli implements the texscope command-line interface.
//
// # Commands
//
//   - paragraph: render the breakpoint graph of a \tracingparagraphs log
//   - explore: step through breakpoints in the terminal and inspect paths
//   - dvi: extract character positions from a DVI dump as JSON
//
// All commands accept a file argument; "-" or no argument reads stdin.
// --verbose (-v) switches logging to debug level.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI writing logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "texscope",
		Short:        "texscope visualizes TeX paragraph-breaking traces",
		Long:         `texscope reads the output of \tracingparagraphs and draws the graph of breakpoints TeX considered, one row per line, with the chosen predecessor chain of any breakpoint highlighted on demand.`,
		SilenceUsage: true,
	}

	root.AddCommand(c.paragraphCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.dviCommand())

	return root
}
