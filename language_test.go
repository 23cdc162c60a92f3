package reindent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/reindent"
)

func TestRegistryLookup(t *testing.T) {
	t.Parallel()
	reg := reindent.Builtin()
	tests := map[string]struct {
		name    string
		want    string
		wantErr require.ErrorAssertionFunc
	}{
		"name":        {name: "python", want: "python", wantErr: require.NoError},
		"alias":       {name: "js", want: "javascript", wantErr: require.NoError},
		"mixed case":  {name: "Ruby", want: "ruby", wantErr: require.NoError},
		"whitespace":  {name: " go ", want: "go", wantErr: require.NoError},
		"symbol name": {name: "c++", want: "cpp", wantErr: require.NoError},
		"unknown":     {name: "cobol", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := reg.Lookup(tt.name)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestRegistryLookupSentinel(t *testing.T) {
	t.Parallel()
	_, err := reindent.Builtin().Lookup("cobol")
	assert.ErrorIs(t, err, reindent.ErrUnknownLanguage)
}

func TestRegistryForPath(t *testing.T) {
	t.Parallel()
	reg := reindent.Builtin()
	tests := map[string]struct {
		path    string
		want    string
		wantErr require.ErrorAssertionFunc
	}{
		"go":           {path: "main.go", want: "go", wantErr: require.NoError},
		"nested":       {path: "src/app/index.tsx", want: "typescript", wantErr: require.NoError},
		"upper ext":    {path: "PAGE.HTML", want: "html", wantErr: require.NoError},
		"header":       {path: "x.h", want: "c", wantErr: require.NoError},
		"svelte":       {path: "App.svelte", want: "svelte", wantErr: require.NoError},
		"no extension": {path: "Makefile", wantErr: require.Error},
		"dotfile":      {path: ".bashrc", wantErr: require.Error},
		"unknown ext":  {path: "a.cob", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := reg.ForPath(tt.path)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestRegistryAddReplaces(t *testing.T) {
	t.Parallel()
	reg := reindent.Builtin()
	before := len(reg.Languages())

	reg.Add(reindent.Language{Name: "Python", Extensions: []string{".pyx"}, Unit: "\t", Rules: reindent.ColonRules{}})

	assert.Len(t, reg.Languages(), before)
	l, err := reg.Lookup("python")
	require.NoError(t, err)
	assert.Equal(t, "\t", l.Unit)

	l, err = reg.ForPath("mod.pyx")
	require.NoError(t, err)
	assert.Equal(t, "Python", l.Name)
}

func TestRegistryAddNew(t *testing.T) {
	t.Parallel()
	var reg reindent.Registry
	_, err := reg.Lookup("crystal")
	require.ErrorIs(t, err, reindent.ErrUnknownLanguage)

	reg.Add(reindent.Language{
		Name:       "crystal",
		Aliases:    []string{"cr"},
		Extensions: []string{"cr"},
		Rules:      reindent.KeywordRules{Openers: []string{"def"}, Closers: []string{"end"}},
	})
	l, err := reg.Lookup("CR")
	require.NoError(t, err)
	assert.Equal(t, "crystal", l.Name)
	assert.Equal(t, reindent.FamilyKeyword, l.Family())
}

func TestRegistryLanguagesSorted(t *testing.T) {
	t.Parallel()
	reg := reindent.NewRegistry(
		reindent.Language{Name: "zig", Rules: reindent.BraceRules{}},
		reindent.Language{Name: "ada", Rules: reindent.KeywordRules{}},
	)
	langs := reg.Languages()
	require.Len(t, langs, 2)
	assert.Equal(t, "ada", langs[0].Name)
	assert.Equal(t, "zig", langs[1].Name)
}

func TestBuiltins(t *testing.T) {
	t.Parallel()
	langs := reindent.Builtins()
	require.NotEmpty(t, langs)
	for _, l := range langs {
		assert.NotEmpty(t, l.Name)
		assert.NotEmpty(t, l.Extensions, l.Name)
		assert.NotNil(t, l.Rules, l.Name)
		assert.NotZero(t, l.Family(), l.Name)
	}

	// Returned slice is a copy.
	langs[0].Name = "mutated"
	assert.NotEqual(t, "mutated", reindent.Builtins()[0].Name)
}

func TestBuiltinFamilies(t *testing.T) {
	t.Parallel()
	reg := reindent.Builtin()
	tests := map[string]reindent.Family{
		"javascript": reindent.FamilyBrace,
		"json":       reindent.FamilyBrace,
		"python":     reindent.FamilyColon,
		"ruby":       reindent.FamilyKeyword,
		"lua":        reindent.FamilyKeyword,
		"sql":        reindent.FamilyKeyword,
		"html":       reindent.FamilyMarkup,
		"svelte":     reindent.FamilyMarkup,
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			l, err := reg.Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, want, l.Family())
		})
	}
}

func TestLanguageConfig(t *testing.T) {
	t.Parallel()
	l := reindent.Language{Name: "x", Unit: "\t"}
	assert.Equal(t, reindent.Config{Unit: "\t", BraceStyle: reindent.SameLine}, l.Config())

	l.Unit = ""
	assert.Equal(t, reindent.DefaultConfig(), l.Config())
}

func TestBuiltinGo(t *testing.T) {
	t.Parallel()
	l, err := reindent.Builtin().Lookup("go")
	require.NoError(t, err)
	src := "func main() {\nfor i := range 3 {\nfmt.Println(i)\n}\n}\n"
	want := "func main() {\n\tfor i := range 3 {\n\t\tfmt.Println(i)\n\t}\n}\n"
	assert.Equal(t, want, reindent.Reindent(src, l.Config(), l.Rules))
}
