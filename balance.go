package reindent

import (
	"fmt"
	"strings"
)

// DefaultPairs are the bracket pairs checked by [CheckBalance] when pairs is
// empty.
const DefaultPairs = "()[]{}"

// BalanceError reports the first bracket that doesn't match. Found or Want is
// zero when the text ended early or had nothing left to close.
type BalanceError struct {
	Line   int // 1-based
	Column int // 1-based, in runes
	Found  rune
	Want   rune
}

func (e *BalanceError) Error() string {
	switch {
	case e.Found == 0:
		return fmt.Sprintf("line %d:%d: unclosed, want %q", e.Line, e.Column, e.Want)
	case e.Want == 0:
		return fmt.Sprintf("line %d:%d: unexpected %q", e.Line, e.Column, e.Found)
	default:
		return fmt.Sprintf("line %d:%d: found %q, want %q", e.Line, e.Column, e.Found, e.Want)
	}
}

// Is reports whether target is [ErrUnbalanced].
func (e *BalanceError) Is(target error) bool { return target == ErrUnbalanced }

// CheckBalance verifies that every bracket in src is closed in order. pairs
// holds opener/closer pairs, e.g. "()[]{}". Brackets inside strings and
// comments are counted like any other.
//
// It is independent of [Reindent], which accepts unbalanced text.
func CheckBalance(src, pairs string) error {
	if pairs == "" {
		pairs = DefaultPairs
	}
	p := []rune(pairs)
	closerOf := make(map[rune]rune, len(p)/2)
	openerOf := make(map[rune]rune, len(p)/2)
	for i := 0; i+1 < len(p); i += 2 {
		closerOf[p[i]] = p[i+1]
		openerOf[p[i+1]] = p[i]
	}

	type open struct {
		want      rune
		line, col int
	}
	var stack []open
	line, col := 1, 0
	for _, c := range src {
		if c == '\n' {
			line, col = line+1, 0
			continue
		}
		col++
		if want, ok := closerOf[c]; ok {
			stack = append(stack, open{want: want, line: line, col: col})
			continue
		}
		if _, ok := openerOf[c]; !ok {
			continue
		}
		if len(stack) == 0 {
			return &BalanceError{Line: line, Column: col, Found: c}
		}
		top := stack[len(stack)-1]
		if top.want != c {
			return &BalanceError{Line: line, Column: col, Found: c, Want: top.want}
		}
		stack = stack[:len(stack)-1]
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return &BalanceError{Line: top.line, Column: top.col, Want: top.want}
	}
	return nil
}

// PairsFor returns the bracket pairs a brace language's rules track, or
// [DefaultPairs] for other rules.
func PairsFor(r Rules) string {
	br, ok := r.(BraceRules)
	if !ok {
		return DefaultPairs
	}
	var b strings.Builder
	for i := 0; i+1 < len(DefaultPairs); i += 2 {
		if strings.IndexByte(br.Open, DefaultPairs[i]) >= 0 || strings.IndexByte(br.Close, DefaultPairs[i+1]) >= 0 {
			b.WriteString(DefaultPairs[i : i+2])
		}
	}
	if b.Len() == 0 {
		return DefaultPairs
	}
	return b.String()
}
