package reindent

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Family identifies a kind of block structure.
type Family int

const (
	FamilyBrace   Family = iota + 1 // { ... }
	FamilyColon                     // header: + indented body
	FamilyKeyword                   // def ... end
	FamilyMarkup                    // <tag> ... </tag>
)

var families = []Family{FamilyBrace, FamilyColon, FamilyKeyword, FamilyMarkup}

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyBrace:
		return "brace"
	case FamilyColon:
		return "colon"
	case FamilyKeyword:
		return "keyword"
	case FamilyMarkup:
		return "markup"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// ParseFamily parses a family name.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keyword-end", "end":
		return FamilyKeyword, nil
	}
	for _, f := range families {
		if strings.EqualFold(f.String(), strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}

// Familied is implemented by every rules type in this package.
type Familied interface {
	Family() Family
}

// FamilyOf reports the family of r, if it declares one.
func FamilyOf(r Rules) (Family, bool) {
	if f, ok := r.(Familied); ok && f.Family() != 0 {
		return f.Family(), true
	}
	return 0, false
}

// --- Brace ---

// BraceRules handles C-like languages. A line starting with a Close character
// is dedented; a line ending with an Open character indents what follows.
type BraceRules struct {
	Open  string
	Close string
	// Split lists the openers moved to their own line under [NewLine].
	// Empty disables splitting.
	Split string
}

// Family returns [FamilyBrace].
func (BraceRules) Family() Family { return FamilyBrace }

// DecreasesBefore reports whether trimmed starts with a Close character.
func (r BraceRules) DecreasesBefore(trimmed string) bool {
	c, _ := utf8.DecodeRuneInString(trimmed)
	return c != utf8.RuneError && strings.ContainsRune(r.Close, c)
}

// IncreasesAfter reports whether trimmed ends with an Open character.
func (r BraceRules) IncreasesAfter(trimmed string) bool {
	c, _ := utf8.DecodeLastRuneInString(trimmed)
	return c != utf8.RuneError && strings.ContainsRune(r.Open, c)
}

// SplitOpener splits a trailing Split opener from the code before it.
func (r BraceRules) SplitOpener(trimmed string) (head, opener string, ok bool) {
	c, size := utf8.DecodeLastRuneInString(trimmed)
	if c == utf8.RuneError || !strings.ContainsRune(r.Split, c) {
		return "", "", false
	}
	n := len(trimmed) - size
	return strings.TrimRightFunc(trimmed[:n], unicode.IsSpace), trimmed[n:], true
}

// --- Colon ---

// ColonRules handles Python-like languages where a trailing colon opens a
// block. Reopeners (else, elif, ...) are emitted one level shallower and open
// a new block themselves. Terminators close the block after they are emitted.
// Lines starting with '#' are ignored.
type ColonRules struct {
	Reopeners   []string
	Terminators []string
}

// Family returns [FamilyColon].
func (ColonRules) Family() Family { return FamilyColon }

// DecreasesBefore reports whether trimmed starts with a reopener.
func (r ColonRules) DecreasesBefore(trimmed string) bool {
	return !isHashComment(trimmed) && slices.Contains(r.Reopeners, firstWord(trimmed))
}

// IncreasesAfter reports whether trimmed ends with a colon or starts with a
// reopener.
func (r ColonRules) IncreasesAfter(trimmed string) bool {
	if isHashComment(trimmed) {
		return false
	}
	return strings.HasSuffix(trimmed, ":") || slices.Contains(r.Reopeners, firstWord(trimmed))
}

// DecreasesAfter reports whether trimmed starts with a terminator such as
// return.
func (r ColonRules) DecreasesAfter(trimmed string) bool {
	return !isHashComment(trimmed) && slices.Contains(r.Terminators, firstWord(trimmed))
}

func isHashComment(s string) bool { return strings.HasPrefix(s, "#") }

// --- Keyword ---

// KeywordRules handles languages whose blocks end with a keyword, such as
// Ruby, Lua, and SQL.
type KeywordRules struct {
	Openers   []string // first word opens a block
	Trailers  []string // last word opens a block
	Closers   []string // first word closes a block
	Reopeners []string // first word closes and reopens a block
	FoldCase  bool     // case-insensitive keyword matching
	// OpenPattern, when set, also opens a block on match.
	OpenPattern *regexp.Regexp
}

// Family returns [FamilyKeyword].
func (KeywordRules) Family() Family { return FamilyKeyword }

// DecreasesBefore reports whether the first word closes or reopens a block.
func (r KeywordRules) DecreasesBefore(trimmed string) bool {
	w := firstWord(trimmed)
	return r.has(r.Closers, w) || r.has(r.Reopeners, w)
}

// IncreasesAfter reports whether trimmed opens a block that it does not also
// close.
func (r KeywordRules) IncreasesAfter(trimmed string) bool {
	first := firstWord(trimmed)
	if r.has(r.Reopeners, first) {
		return true
	}
	last := lastWord(trimmed)
	// one-liners such as "def f; end"
	if r.has(r.Closers, last) {
		return false
	}
	// qualified closers such as "END CASE;"
	if r.has(r.Closers, first) && last != "" && firstWord(strings.TrimLeftFunc(trimmed[len(first):], unicode.IsSpace)) == last {
		return false
	}
	if r.has(r.Openers, first) || r.has(r.Trailers, last) {
		return true
	}
	return r.OpenPattern != nil && r.OpenPattern.MatchString(trimmed)
}

func (r KeywordRules) has(words []string, w string) bool {
	if w == "" {
		return false
	}
	if r.FoldCase {
		return slices.ContainsFunc(words, func(s string) bool { return strings.EqualFold(s, w) })
	}
	return slices.Contains(words, w)
}

// --- Markup ---

// MarkupRules handles HTML, XML, and component templates. A closing tag
// dedents; an opening tag that is not void, not self-closing, and not closed
// on the same line indents what follows.
type MarkupRules struct {
	Void     []string // elements without closing tags, e.g. br
	FoldCase bool     // case-insensitive tag names
	// Blocks enables Svelte-style {#if}, {:else}, {/if} blocks.
	Blocks bool
}

// Family returns [FamilyMarkup].
func (MarkupRules) Family() Family { return FamilyMarkup }

// DecreasesBefore reports whether trimmed starts with a closing tag or block.
func (r MarkupRules) DecreasesBefore(trimmed string) bool {
	if strings.HasPrefix(trimmed, "</") || strings.HasPrefix(trimmed, "/>") {
		return true
	}
	return r.Blocks && (strings.HasPrefix(trimmed, "{/") || strings.HasPrefix(trimmed, "{:"))
}

// IncreasesAfter reports whether trimmed opens an element left open on this
// line.
func (r MarkupRules) IncreasesAfter(trimmed string) bool {
	if r.Blocks && (strings.HasPrefix(trimmed, "{#") || strings.HasPrefix(trimmed, "{:")) {
		return !strings.Contains(trimmed, "{/")
	}
	if !strings.HasPrefix(trimmed, "<") {
		return false
	}
	switch {
	case strings.HasPrefix(trimmed, "</"), strings.HasPrefix(trimmed, "<!"), strings.HasPrefix(trimmed, "<?"):
		return false
	}
	name := tagName(trimmed[1:])
	if name == "" {
		return false
	}
	end := strings.IndexByte(trimmed, '>')
	if end < 0 {
		// attributes continue on the next lines, up to a "/>" line
		return true
	}
	if r.isVoid(name) {
		return false
	}
	if trimmed[end-1] == '/' {
		return false
	}
	rest := trimmed[end+1:]
	closing := "</" + name
	if r.FoldCase {
		rest, closing = strings.ToLower(rest), strings.ToLower(closing)
	}
	return !strings.Contains(rest, closing)
}

func (r MarkupRules) isVoid(name string) bool {
	if r.FoldCase {
		return slices.ContainsFunc(r.Void, func(s string) bool { return strings.EqualFold(s, name) })
	}
	return slices.Contains(r.Void, name)
}

// --- Combine ---

// Combine returns rules that trigger when any of rules triggers. Optional
// [Splitter] and [Terminator] behavior is forwarded to the members.
func Combine(rules ...Rules) Rules {
	return combined(slices.Clone(rules))
}

type combined []Rules

func (c combined) Family() Family {
	for _, r := range c {
		if f, ok := FamilyOf(r); ok {
			return f
		}
	}
	return 0
}

func (c combined) DecreasesBefore(trimmed string) bool {
	return slices.ContainsFunc(c, func(r Rules) bool { return r.DecreasesBefore(trimmed) })
}

func (c combined) IncreasesAfter(trimmed string) bool {
	return slices.ContainsFunc(c, func(r Rules) bool { return r.IncreasesAfter(trimmed) })
}

func (c combined) SplitOpener(trimmed string) (head, opener string, ok bool) {
	for _, r := range c {
		if s, isSplitter := r.(Splitter); isSplitter {
			if head, opener, ok = s.SplitOpener(trimmed); ok {
				return head, opener, true
			}
		}
	}
	return "", "", false
}

func (c combined) DecreasesAfter(trimmed string) bool {
	return slices.ContainsFunc(c, func(r Rules) bool {
		t, ok := r.(Terminator)
		return ok && t.DecreasesAfter(trimmed)
	})
}

// --- word helpers ---

func isWordRune(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

// firstWord returns the leading identifier of s.
func firstWord(s string) string {
	if i := strings.IndexFunc(s, func(c rune) bool { return !isWordRune(c) }); i >= 0 {
		return s[:i]
	}
	return s
}

// lastWord returns the trailing identifier of s, ignoring trailing
// statement punctuation.
func lastWord(s string) string {
	s = strings.TrimRight(s, ";,) \t")
	if i := strings.LastIndexFunc(s, func(c rune) bool { return !isWordRune(c) }); i >= 0 {
		_, size := utf8.DecodeRuneInString(s[i:])
		return s[i+size:]
	}
	return s
}

// tagName returns the element name at the start of s.
func tagName(s string) string {
	i := strings.IndexFunc(s, func(c rune) bool {
		return !(isWordRune(c) || c == '-' || c == ':' || c == '.')
	})
	if i < 0 {
		return s
	}
	return s[:i]
}
