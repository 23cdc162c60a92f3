package reindent

import "strings"

// DetectUnit guesses the indent unit of src: a tab when more lines are
// tab-indented than space-indented, otherwise the shortest run of leading
// spaces. ok is false when no line is indented.
func DetectUnit(src string) (unit string, ok bool) {
	tabs, spaces, minSpaces := 0, 0, 0
	for line := range Lines(src) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch line[0] {
		case '\t':
			tabs++
		case ' ':
			spaces++
			n := len(line) - len(strings.TrimLeft(line, " "))
			if minSpaces == 0 || n < minSpaces {
				minSpaces = n
			}
		}
	}
	switch {
	case tabs == 0 && spaces == 0:
		return "", false
	case tabs >= spaces:
		return "\t", true
	default:
		return strings.Repeat(" ", minSpaces), true
	}
}
