package reindent

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// Language binds a rules table to the names and file extensions it serves.
type Language struct {
	Name       string
	Aliases    []string
	Extensions []string // without the leading dot
	Unit       string   // conventional indent unit
	Rules      Rules
}

// Config returns the language's conventional configuration.
func (l Language) Config() Config {
	cfg := DefaultConfig()
	if l.Unit != "" {
		cfg.Unit = l.Unit
	}
	return cfg
}

// Family reports the family of the language's rules.
func (l Language) Family() Family {
	f, _ := FamilyOf(l.Rules)
	return f
}

var (
	cBraces    = BraceRules{Open: "{[(", Close: "}])", Split: "{"}
	cssBraces  = BraceRules{Open: "{", Close: "}", Split: "{"}
	jsonBraces = BraceRules{Open: "{[", Close: "}]"}

	htmlVoid = []string{
		"area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr",
	}

	rubyDoBlock = regexp.MustCompile(`\bdo\s*\|[^|]*\|$`)
	luaFunction = regexp.MustCompile(`\bfunction\s*[\w.:]*\s*\([^)]*\)$`)
)

var builtins = []Language{
	{Name: "javascript", Aliases: []string{"js", "jsx", "node"}, Extensions: []string{"js", "mjs", "cjs", "jsx"}, Unit: "  ", Rules: cBraces},
	{Name: "typescript", Aliases: []string{"ts", "tsx"}, Extensions: []string{"ts", "mts", "cts", "tsx"}, Unit: "  ", Rules: cBraces},
	{Name: "java", Extensions: []string{"java"}, Unit: "    ", Rules: cBraces},
	{Name: "csharp", Aliases: []string{"c#", "cs"}, Extensions: []string{"cs"}, Unit: "    ", Rules: cBraces},
	{Name: "go", Aliases: []string{"golang"}, Extensions: []string{"go"}, Unit: "\t", Rules: cBraces},
	{Name: "rust", Aliases: []string{"rs"}, Extensions: []string{"rs"}, Unit: "    ", Rules: cBraces},
	{Name: "kotlin", Aliases: []string{"kt"}, Extensions: []string{"kt", "kts"}, Unit: "    ", Rules: cBraces},
	{Name: "swift", Extensions: []string{"swift"}, Unit: "    ", Rules: cBraces},
	{Name: "php", Extensions: []string{"php"}, Unit: "    ", Rules: cBraces},
	{Name: "c", Extensions: []string{"c", "h"}, Unit: "    ", Rules: cBraces},
	{Name: "cpp", Aliases: []string{"c++", "cxx"}, Extensions: []string{"cc", "cpp", "cxx", "hpp", "hh"}, Unit: "    ", Rules: cBraces},
	{Name: "css", Aliases: []string{"scss", "less"}, Extensions: []string{"css", "scss", "less"}, Unit: "  ", Rules: cssBraces},
	{Name: "json", Extensions: []string{"json"}, Unit: "  ", Rules: jsonBraces},
	{Name: "python", Aliases: []string{"py"}, Extensions: []string{"py", "pyw"}, Unit: "    ", Rules: ColonRules{
		Reopeners:   []string{"elif", "else", "except", "finally"},
		Terminators: []string{"return", "pass", "raise", "break", "continue"},
	}},
	{Name: "ruby", Aliases: []string{"rb"}, Extensions: []string{"rb", "rake"}, Unit: "  ", Rules: Combine(
		KeywordRules{
			Openers:     []string{"def", "class", "module", "if", "unless", "while", "until", "for", "case", "begin"},
			Trailers:    []string{"do"},
			Closers:     []string{"end"},
			Reopeners:   []string{"else", "elsif", "when", "in", "rescue", "ensure"},
			OpenPattern: rubyDoBlock,
		},
		BraceRules{Open: "{[(", Close: "}])"},
	)},
	{Name: "lua", Extensions: []string{"lua"}, Unit: "  ", Rules: Combine(
		KeywordRules{
			Openers:     []string{"function", "repeat"},
			Trailers:    []string{"then", "do"},
			Closers:     []string{"end", "until"},
			Reopeners:   []string{"else", "elseif"},
			OpenPattern: luaFunction,
		},
		BraceRules{Open: "{(", Close: "})"},
	)},
	{Name: "sql", Extensions: []string{"sql"}, Unit: "  ", Rules: Combine(
		KeywordRules{
			Openers:  []string{"begin", "case"},
			Trailers: []string{"begin", "case"},
			Closers:  []string{"end"},
			FoldCase: true,
		},
		BraceRules{Open: "(", Close: ")"},
	)},
	{Name: "html", Aliases: []string{"htm"}, Extensions: []string{"html", "htm"}, Unit: "  ", Rules: MarkupRules{Void: htmlVoid, FoldCase: true}},
	{Name: "xml", Aliases: []string{"svg", "xsl"}, Extensions: []string{"xml", "svg", "xsl", "xsd", "plist"}, Unit: "  ", Rules: MarkupRules{}},
	{Name: "vue", Extensions: []string{"vue"}, Unit: "  ", Rules: MarkupRules{Void: htmlVoid}},
	{Name: "svelte", Extensions: []string{"svelte"}, Unit: "  ", Rules: MarkupRules{Void: htmlVoid, Blocks: true}},
}

// Builtins returns the built-in languages.
func Builtins() []Language {
	return slices.Clone(builtins)
}

// Registry resolves languages by name, alias, or file extension.
// The zero value is empty and ready to use.
type Registry struct {
	langs []Language
	names map[string]int
	exts  map[string]int
}

// NewRegistry returns a registry holding langs. Later entries override
// earlier ones with the same name, alias, or extension.
func NewRegistry(langs ...Language) *Registry {
	r := &Registry{}
	for _, l := range langs {
		r.Add(l)
	}
	return r
}

// Builtin returns a registry of the built-in languages.
func Builtin() *Registry {
	return NewRegistry(builtins...)
}

// Add registers l, replacing any language with the same name.
func (r *Registry) Add(l Language) {
	if r.names == nil {
		r.names = make(map[string]int)
		r.exts = make(map[string]int)
	}
	idx := len(r.langs)
	if i, ok := r.names[key(l.Name)]; ok && key(r.langs[i].Name) == key(l.Name) {
		idx = i
		r.langs[i] = l
	} else {
		r.langs = append(r.langs, l)
	}
	r.names[key(l.Name)] = idx
	for _, a := range l.Aliases {
		r.names[key(a)] = idx
	}
	for _, e := range l.Extensions {
		r.exts[key(strings.TrimPrefix(e, "."))] = idx
	}
}

// Lookup returns the language with the given name or alias.
func (r *Registry) Lookup(name string) (Language, error) {
	if i, ok := r.names[key(name)]; ok {
		return r.langs[i], nil
	}
	return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}

// ForPath returns the language registered for the extension of path.
func (r *Registry) ForPath(path string) (Language, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if i, ok := r.exts[key(ext)]; ok && ext != "" {
		return r.langs[i], nil
	}
	return Language{}, fmt.Errorf("%w: no language for %q", ErrUnknownLanguage, filepath.Base(path))
}

// Languages returns the registered languages sorted by name.
func (r *Registry) Languages() []Language {
	out := slices.Clone(r.langs)
	slices.SortFunc(out, func(a, b Language) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func key(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
