package reindent

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnknownBraceStyle = errors.New("unknown brace style")
	ErrUnknownFamily     = errors.New("unknown language family")
	ErrUnknownLanguage   = errors.New("unknown language")
	ErrInvalidRuleSet    = errors.New("invalid rule set")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUnbalanced        = errors.New("unbalanced brackets")
)

// BraceStyle controls where a block opener is placed.
type BraceStyle int

const (
	SameLine BraceStyle = iota // opener stays on the header line
	NewLine                    // opener moves to its own line at the header's level
)

// String returns the brace style name.
func (s BraceStyle) String() string {
	switch s {
	case SameLine:
		return "same-line"
	case NewLine:
		return "new-line"
	default:
		return fmt.Sprintf("BraceStyle(%d)", int(s))
	}
}

// ParseBraceStyle parses a brace style name.
func ParseBraceStyle(s string) (BraceStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "same-line", "sameline", "same", "":
		return SameLine, nil
	case "new-line", "newline", "new":
		return NewLine, nil
	}
	return SameLine, fmt.Errorf("%w: %q", ErrUnknownBraceStyle, s)
}

// MarshalText implements encoding.TextMarshaler.
func (s BraceStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *BraceStyle) UnmarshalText(b []byte) error {
	v, err := ParseBraceStyle(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Config is the per-call indentation configuration.
type Config struct {
	// Unit is repeated once per depth level. An empty unit disables
	// indentation.
	Unit       string     `json:"unit" yaml:"unit" toml:"unit"`
	BraceStyle BraceStyle `json:"brace_style" yaml:"brace_style" toml:"brace_style"`
}

// DefaultConfig returns two-space indentation with same-line braces.
func DefaultConfig() Config {
	return Config{Unit: "  ", BraceStyle: SameLine}
}

// --- Rules ---

// Rules classifies trimmed lines. Both predicates must be pure functions of
// the trimmed line text.
type Rules interface {
	// DecreasesBefore reports whether the line itself is emitted one level
	// shallower (closing brace, end, else, closing tag).
	DecreasesBefore(trimmed string) bool
	// IncreasesAfter reports whether the lines that follow are indented one
	// level deeper.
	IncreasesAfter(trimmed string) bool
}

// Splitter is implemented by brace-language rules. With [NewLine] brace style
// the reindenter moves a trailing opener onto its own line. ok is false when
// the line doesn't end with a splittable opener.
type Splitter interface {
	SplitOpener(trimmed string) (head, opener string, ok bool)
}

// Terminator lets rules close a block after a line has been emitted, e.g.
// after a Python return statement.
type Terminator interface {
	DecreasesAfter(trimmed string) bool
}

// Reindent rewrites the leading whitespace of every line of src according to
// rules. It never fails: unbalanced input floors at depth zero.
func Reindent(src string, cfg Config, rules Rules) string {
	var buf strings.Builder
	buf.Grow(len(src))
	first := true
	for line := range ReindentSeq(Lines(src), cfg, rules) {
		if !first {
			buf.WriteByte('\n')
		}
		first = false
		buf.WriteString(line)
	}
	return buf.String()
}

// Write reindents src and writes the result to w.
func Write(w io.Writer, src string, cfg Config, rules Rules) error {
	return WriteIter(w, Lines(src), cfg, rules)
}

// Marshal reindents src and returns the bytes.
func Marshal(src []byte, cfg Config, rules Rules) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, string(src), cfg, rules); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// state is the per-call indentation state.
type state struct {
	cfg      Config
	rules    Rules
	splitter Splitter
	term     Terminator
	level    int
	maxLevel int // deepest level any line was emitted at
	// closed is set when a Terminator dedented after the previous line. A
	// reopener that follows (return then else) is already at its level.
	closed bool
}

func newState(cfg Config, rules Rules) *state {
	st := &state{cfg: cfg, rules: rules}
	if cfg.BraceStyle == NewLine {
		st.splitter, _ = rules.(Splitter)
	}
	st.term, _ = rules.(Terminator)
	return st
}

// step classifies one physical line and emits one or two output lines.
// It returns false if emit asked to stop.
func (st *state) step(line string, emit func(string) bool) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return emit("")
	}
	closed := st.closed
	st.closed = false
	if st.rules.DecreasesBefore(trimmed) && !closed {
		st.dec()
	}
	if st.splitter != nil {
		if head, opener, ok := st.splitter.SplitOpener(trimmed); ok && head != "" {
			if !emit(st.prefix() + head) {
				return false
			}
			if !emit(st.prefix() + opener) {
				return false
			}
			st.inc()
			return true
		}
	}
	if !emit(st.prefix() + trimmed) {
		return false
	}
	if st.rules.IncreasesAfter(trimmed) {
		st.inc()
	}
	if st.term != nil && st.term.DecreasesAfter(trimmed) {
		st.dec()
		st.closed = true
	}
	return true
}

func (st *state) prefix() string {
	st.maxLevel = max(st.maxLevel, st.level)
	if st.level <= 0 || st.cfg.Unit == "" {
		return ""
	}
	return strings.Repeat(st.cfg.Unit, st.level)
}

func (st *state) inc() {
	st.level++
}

func (st *state) dec() {
	st.level = max(0, st.level-1)
}
