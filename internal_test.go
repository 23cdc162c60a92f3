package reindent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstWord(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"def f(x):":  "def",
		"else:":      "else",
		"end":        "end",
		"if_x = 1":   "if_x",
		"(a)":        "",
		"":           "",
		"ünïcode ok": "ünïcode",
	}
	for in, want := range tests {
		assert.Equal(t, want, firstWord(in), in)
	}
}

func TestLastWord(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"while x do":      "do",
		"def a; end":      "end",
		"end;":            "end",
		"foo(bar)":        "bar",
		"if a then ":      "then",
		"items.each do |": "",
		"":                "",
		"x = ü":           "ü",
	}
	for in, want := range tests {
		assert.Equal(t, want, lastWord(in), in)
	}
}

func TestTagName(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"div>":       "div",
		"my-el a=1>": "my-el",
		"svg:rect/>": "svg:rect",
		"Foo.Bar>":   "Foo.Bar",
		"input":      "input",
		" div":       "",
		"/div>":      "",
		"h1 id=x>":   "h1",
	}
	for in, want := range tests {
		assert.Equal(t, want, tagName(in), in)
	}
}

func TestStateClampsAtZero(t *testing.T) {
	t.Parallel()
	st := newState(Config{Unit: "  "}, BraceRules{Open: "{", Close: "}"})
	st.dec()
	st.dec()
	assert.Equal(t, 0, st.level)
	st.inc()
	assert.Equal(t, "  ", st.prefix())
	assert.Equal(t, 1, st.maxLevel)
}

func TestStateSplitterOnlyForNewLine(t *testing.T) {
	t.Parallel()
	rules := BraceRules{Open: "{", Close: "}", Split: "{"}
	assert.Nil(t, newState(Config{BraceStyle: SameLine}, rules).splitter)
	assert.NotNil(t, newState(Config{BraceStyle: NewLine}, rules).splitter)
	assert.Nil(t, newState(Config{BraceStyle: NewLine}, ColonRules{}).splitter)
}

func TestStateStepStops(t *testing.T) {
	t.Parallel()
	st := newState(Config{Unit: "  ", BraceStyle: NewLine}, BraceRules{Open: "{", Close: "}", Split: "{"})
	var got []string
	ok := st.step("if x {", func(s string) bool {
		got = append(got, s)
		return false
	})
	assert.False(t, ok)
	assert.Equal(t, []string{"if x"}, got)
	assert.Equal(t, 0, st.level)
}

func TestDisplayWidth(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3, displayWidth("abc"))
	assert.Equal(t, 4, displayWidth("日本"))
	assert.Equal(t, TabWidth+1, displayWidth("\tx"))
	assert.Equal(t, 0, displayWidth(""))
}
