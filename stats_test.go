package reindent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjaus/reindent"
)

func TestMeasure(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		src       string
		cfg       reindent.Config
		wantOut   string
		wantStats reindent.Stats
	}{
		"empty": {
			src:     "",
			cfg:     reindent.Config{Unit: "  "},
			wantOut: "",
			wantStats: reindent.Stats{
				Lines: 1, OutputLines: 1, Blank: 1,
			},
		},
		"already indented": {
			src:     "a {\n  b\n}",
			cfg:     reindent.Config{Unit: "  "},
			wantOut: "a {\n  b\n}",
			wantStats: reindent.Stats{
				Lines: 3, OutputLines: 3, MaxDepth: 1,
				InputRunes: 9, OutputRunes: 9, WidestLine: 3,
			},
		},
		"reindented": {
			src:     "a {\nb {\nc\n}\n}\n",
			cfg:     reindent.Config{Unit: "\t"},
			wantOut: "a {\n\tb {\n\t\tc\n\t}\n}\n",
			wantStats: reindent.Stats{
				Lines: 6, OutputLines: 6, Blank: 1, Changed: 3, MaxDepth: 2,
				InputRunes: 14, OutputRunes: 18, WidestLine: 9,
			},
		},
		"blank with whitespace": {
			src:     "a {\n   \n}",
			cfg:     reindent.Config{Unit: "  "},
			wantOut: "a {\n\n}",
			wantStats: reindent.Stats{
				Lines: 3, OutputLines: 3, Blank: 1, Changed: 1, MaxDepth: 0,
				InputRunes: 9, OutputRunes: 6, WidestLine: 3,
			},
		},
		"split braces": {
			src:     "if (x) {\ny\n}",
			cfg:     reindent.Config{Unit: "  ", BraceStyle: reindent.NewLine},
			wantOut: "if (x)\n{\n  y\n}",
			wantStats: reindent.Stats{
				Lines: 3, OutputLines: 4, Changed: 2, MaxDepth: 1,
				InputRunes: 12, OutputRunes: 14, WidestLine: 6,
			},
		},
		"wide runes": {
			src:     "a {\n日本\n}",
			cfg:     reindent.Config{Unit: "  "},
			wantOut: "a {\n  日本\n}",
			wantStats: reindent.Stats{
				Lines: 3, OutputLines: 3, Changed: 1, MaxDepth: 1,
				InputRunes: 8, OutputRunes: 10, WidestLine: 6,
			},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, stats := reindent.Measure(tt.src, tt.cfg, braces)
			assert.Equal(t, tt.wantOut, out)
			assert.Equal(t, tt.wantStats, stats)
			assert.Equal(t, reindent.Reindent(tt.src, tt.cfg, braces), out)
		})
	}
}
