package reindent_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/reindent"
)

var sampleReports = []reindent.FileReport{
	{
		Path:     "a.go",
		Language: "go",
		Changed:  true,
		Stats:    reindent.Stats{Lines: 3, OutputLines: 3, Changed: 1, MaxDepth: 1},
	},
	{
		Path:     "b.py",
		Language: "python",
		Stats:    reindent.Stats{Lines: 12, OutputLines: 12, MaxDepth: 2},
	},
	{
		Path:  "c|d.txt",
		Error: "unknown language",
	},
}

func TestParseReportFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    reindent.ReportFormat
		wantErr require.ErrorAssertionFunc
	}{
		"text":     {input: "text", want: reindent.ReportText, wantErr: require.NoError},
		"json":     {input: "json", want: reindent.ReportJSON, wantErr: require.NoError},
		"yaml":     {input: "yaml", want: reindent.ReportYAML, wantErr: require.NoError},
		"markdown": {input: "markdown", want: reindent.ReportMarkdown, wantErr: require.NoError},
		"unknown":  {input: "csv", want: "", wantErr: require.Error},
		"empty":    {input: "", want: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := reindent.ParseReportFormat(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReportFormats(t *testing.T) {
	t.Parallel()
	formats := reindent.ReportFormats()
	assert.Equal(t, []reindent.ReportFormat{
		reindent.ReportText, reindent.ReportJSON, reindent.ReportYAML, reindent.ReportMarkdown,
	}, formats)

	// Returned slice is a copy.
	formats[0] = "mutated"
	assert.Equal(t, reindent.ReportText, reindent.ReportFormats()[0])
}

func TestWriteReportText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, reindent.WriteReport(&buf, reindent.ReportText, sampleReports...))
	want := "a.go: reindented 1/3 lines, depth 1\n" +
		"b.py: unchanged\n" +
		"c|d.txt: error: unknown language\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteReportJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, reindent.WriteReport(&buf, reindent.ReportJSON, sampleReports...))

	var got []reindent.FileReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleReports, got)
	assert.Contains(t, buf.String(), `"max_depth": 1`)
	assert.NotContains(t, buf.String(), `"error": ""`)
}

func TestWriteReportJSONEmpty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, reindent.WriteReport(&buf, reindent.ReportJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteReportYAML(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, reindent.WriteReport(&buf, reindent.ReportYAML, sampleReports[0]))

	want := `- path: a.go
  language: go
  changed: true
  stats:
    lines: 3
    output_lines: 3
    blank: 0
    changed: 1
    max_depth: 1
    input_runes: 0
    output_runes: 0
    widest_line: 0
`
	assert.Equal(t, want, buf.String())

	var got []reindent.FileReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleReports[:1], got)
}

func TestWriteReportMarkdown(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, reindent.WriteReport(&buf, reindent.ReportMarkdown, sampleReports...))

	want := "" +
		"| Path     | Language | Lines | Changed | Depth | Status                  |\n" +
		"| -------- | -------- | ----: | ------: | ----: | ----------------------- |\n" +
		"| a.go     | go       |     3 |       1 |     1 | reindented              |\n" +
		"| b.py     | python   |    12 |       0 |     2 | unchanged               |\n" +
		"| c\\|d.txt |          |     0 |       0 |     0 | error: unknown language |\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteReportMarkdownEmpty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, reindent.WriteReport(&buf, reindent.ReportMarkdown))
	want := "| Path | Language | Lines | Changed | Depth | Status |\n" +
		"| ---- | -------- | ----: | ------: | ----: | ------ |\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteReportUnsupported(t *testing.T) {
	t.Parallel()
	err := reindent.WriteReport(&bytes.Buffer{}, reindent.ReportFormat("csv"))
	assert.ErrorIs(t, err, reindent.ErrUnsupportedFormat)
}

func TestWriteReportWriterError(t *testing.T) {
	t.Parallel()
	for _, f := range reindent.ReportFormats() {
		t.Run(f.String(), func(t *testing.T) {
			t.Parallel()
			err := reindent.WriteReport(&errWriter{}, f, sampleReports...)
			assert.Error(t, err)
		})
	}
}
