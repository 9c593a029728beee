package trace

import (
	"slices"

	"github.com/charmbracelet/log"
)

// DefaultFont is the only face the DVI dumps are expected to use.
const DefaultFont = "cmr10"

// Position is one character placed on a DVI page.
type Position struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Char int `json:"char"`
}

// ParsePosition matches `(<x>, <y>) {Character { char: <code>, font: "<name>" }}`
// and returns the position together with the font name.
func ParsePosition(line string) (Position, string, error) {
	p, err := positionParser.ParseString("", line)
	if err != nil {
		return Position{}, "", err
	}
	return Position{X: int(p.X), Y: int(p.Y), Char: int(p.Char)}, string(p.Font), nil
}

// ParsePositions parses a DVI dump. Lines that do not match, or that name a
// font outside fonts, are discarded with a logged notice. An empty fonts list
// accepts only DefaultFont.
func ParsePositions(text string, fonts []string, logger *log.Logger) []Position {
	if logger == nil {
		logger = log.Default()
	}
	if len(fonts) == 0 {
		fonts = []string{DefaultFont}
	}
	positions := []Position{}
	for i, line := range Lines(text) {
		pos, font, err := ParsePosition(line)
		if err != nil {
			logger.Warn("couldn't match line", "line", i+1, "text", line)
			continue
		}
		if !slices.Contains(fonts, font) {
			logger.Warn("discarding character in unexpected font", "line", i+1, "font", font)
			continue
		}
		positions = append(positions, pos)
	}
	return positions
}
