package reindent

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Stats summarizes one reindent pass. Lines counts input lines; OutputLines
// differs from it only when [NewLine] braces were split. Changed counts input
// lines whose text changed. WidestLine is the display width of the widest
// output line, counting a tab as TabWidth columns.
type Stats struct {
	Lines       int `json:"lines" yaml:"lines"`
	OutputLines int `json:"output_lines" yaml:"output_lines"`
	Blank       int `json:"blank" yaml:"blank"`
	Changed     int `json:"changed" yaml:"changed"`
	MaxDepth    int `json:"max_depth" yaml:"max_depth"`
	InputRunes  int `json:"input_runes" yaml:"input_runes"`
	OutputRunes int `json:"output_runes" yaml:"output_runes"`
	WidestLine  int `json:"widest_line" yaml:"widest_line"`
}

// TabWidth is the column width of a tab in [Stats.WidestLine].
const TabWidth = 4

// Measure runs [Reindent] over src and returns the output with its stats.
func Measure(src string, cfg Config, rules Rules) (string, Stats) {
	var (
		stats Stats
		buf   strings.Builder
	)
	buf.Grow(len(src))
	st := newState(cfg, rules)
	stats.InputRunes = utf8.RuneCountInString(src)
	for line := range Lines(src) {
		stats.Lines++
		if strings.TrimSpace(line) == "" {
			stats.Blank++
		}
		var emitted []string
		st.step(line, func(out string) bool {
			emitted = append(emitted, out)
			return true
		})
		if len(emitted) != 1 || emitted[0] != line {
			stats.Changed++
		}
		for _, out := range emitted {
			if stats.OutputLines > 0 {
				buf.WriteByte('\n')
			}
			stats.OutputLines++
			buf.WriteString(out)
			stats.WidestLine = max(stats.WidestLine, displayWidth(out))
		}
	}
	stats.MaxDepth = st.maxLevel
	out := buf.String()
	stats.OutputRunes = utf8.RuneCountInString(out)
	return out, stats
}

func displayWidth(s string) int {
	if strings.IndexByte(s, '\t') < 0 {
		return runewidth.StringWidth(s)
	}
	return runewidth.StringWidth(strings.ReplaceAll(s, "\t", strings.Repeat(" ", TabWidth)))
}
