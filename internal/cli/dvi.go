package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/ByLCY/texscope/config"
	"github.com/ByLCY/texscope/errors"
	"github.com/ByLCY/texscope/trace"
)

func (c *CLI) dviCommand() *cobra.Command {
	var (
		output string
		style  string
		fonts  []string
	)

	cmd := &cobra.Command{
		Use:   "dvi [file]",
		Short: "Extract character positions from a DVI dump",
		Long: `Extract character positions from a textual DVI dump.

Only lines of the form "(x, y) {Character { char: c, font: "name" }}" are
used; characters set in fonts outside the accepted list are discarded.
Positions are printed as a JSON array.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(style)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("font") {
				cfg.DVI.Fonts = fonts
			}
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			positions := trace.ParsePositions(text, cfg.DVI.Fonts, c.Logger)
			c.Logger.Debug("positions parsed", "count", len(positions))

			out, err := json.MarshalIndent(positions, "", "  ")
			if err != nil {
				return errors.Wrap(errors.ErrCodeRenderFailed, err, "encoding json")
			}
			return writeOutput(cmd, output, append(out, '\n'))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&style, "style", "", "TOML or YAML config file")
	cmd.Flags().StringSliceVar(&fonts, "font", nil, "accepted font names (default cmr10)")

	return cmd
}
