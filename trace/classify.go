// Package trace classifies the line records TeX writes with
// \tracingparagraphs=1 and the character dumps of a DVI printer.
//
// Each line is matched against fixed participle grammars. A line that
// matches none of them is reported and skipped; it never aborts a scan.
package trace

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/texscope/errors"
)

// Record is the tagged result of classifying one trace line:
// a Potential, a Decided or an Unrecognized value.
type Record interface {
	record()
}

// Potential is a candidate break recorded with `@ via @@...`.
type Potential struct {
	Previous int    `json:"previousBreakpoint"`
	Badness  int    `json:"badness"`
	Penalty  string `json:"penalty"`
	Demerits int    `json:"demerits"`
}

// Decided is a feasible breakpoint recorded with `@@n: line ...`.
type Decided struct {
	Breakpoint     int    `json:"breakpoint"`
	Line           string `json:"line"`
	Classification int    `json:"classification"`
	TotalDemerits  int    `json:"totalDemerits"`
	Previous       int    `json:"previousBreakpoint"`
}

// Unrecognized is a line no grammar accepted.
type Unrecognized struct {
	Number int    // 1-based line number, 0 when classified on its own
	Text   string
	Err    error
}

func (Potential) record()    {}
func (Decided) record()      {}
func (Unrecognized) record() {}

// Classify matches a single line against the potential and decided grammars.
func Classify(line string) Record {
	if p, err := potentialParser.ParseString("", line); err == nil {
		return Potential{
			Previous: int(p.Previous),
			Badness:  int(p.Badness),
			Penalty:  p.Penalty.Raw,
			Demerits: int(p.Demerits),
		}
	}
	d, err := decidedParser.ParseString("", line)
	if err != nil {
		return Unrecognized{
			Text: line,
			Err:  errors.Wrap(errors.ErrCodeUnrecognizedLine, err, "couldn't match line %q", line),
		}
	}
	return Decided{
		Breakpoint:     int(d.Breakpoint),
		Line:           d.Class.Line,
		Classification: d.Class.Class,
		TotalDemerits:  int(d.Total),
		Previous:       int(d.Previous),
	}
}

// Lines trims the text as a whole and splits it into lines. A trailing
// carriage return is dropped from every line.
func Lines(text string) []string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Scan classifies every line of text in order. Unrecognized lines are kept
// in the result and logged at warn level; a nil logger uses log.Default().
func Scan(text string, logger *log.Logger) []Record {
	if logger == nil {
		logger = log.Default()
	}
	lines := Lines(text)
	records := make([]Record, 0, len(lines))
	for i, line := range lines {
		rec := Classify(line)
		if u, ok := rec.(Unrecognized); ok {
			u.Number = i + 1
			rec = u
			logger.Warn("couldn't match line", "line", u.Number, "text", line)
		}
		records = append(records, rec)
	}
	return records
}
