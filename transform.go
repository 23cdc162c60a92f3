package reindent

import "strings"

// Transform is a whole-text rewrite. Transforms compose with [Chain].
type Transform func(string) string

// Chain applies ts in order. Nil entries are skipped.
func Chain(ts ...Transform) Transform {
	return func(s string) string {
		for _, t := range ts {
			if t != nil {
				s = t(s)
			}
		}
		return s
	}
}

// Reindenter returns [Reindent] bound to cfg and rules.
func Reindenter(cfg Config, rules Rules) Transform {
	return func(s string) string { return Reindent(s, cfg, rules) }
}

// TrimTrailingSpace removes trailing whitespace from every line.
func TrimTrailingSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	first := true
	for line := range Lines(s) {
		if !first {
			b.WriteByte('\n')
		}
		first = false
		b.WriteString(strings.TrimRight(line, " \t\r"))
	}
	return b.String()
}

// CollapseBlankLines limits runs of blank lines to at most n. A trailing
// newline is kept. A negative n leaves the text unchanged.
func CollapseBlankLines(n int) Transform {
	return func(s string) string {
		if n < 0 {
			return s
		}
		lines := strings.Split(s, "\n")
		out := lines[:0]
		run := 0
		for i, line := range lines {
			if strings.TrimSpace(line) != "" {
				run = 0
			} else if run++; run > n && i != len(lines)-1 {
				continue
			}
			out = append(out, line)
		}
		return strings.Join(out, "\n")
	}
}
