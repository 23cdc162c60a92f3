package reindent

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// RuleFormat is the encoding of a rule set file.
type RuleFormat string

const (
	RulesYAML RuleFormat = "yaml"
	RulesTOML RuleFormat = "toml"
)

// RuleSet is a file of user-defined languages.
type RuleSet struct {
	Languages []LanguageSpec `yaml:"languages" toml:"languages"`
}

// LanguageSpec describes one language in a rule set. Which fields apply
// depends on Family.
type LanguageSpec struct {
	Name       string   `yaml:"name" toml:"name"`
	Aliases    []string `yaml:"aliases,omitempty" toml:"aliases"`
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions"`
	Unit       string   `yaml:"unit,omitempty" toml:"unit"`
	Family     string   `yaml:"family" toml:"family"`

	// brace
	Open  string `yaml:"open,omitempty" toml:"open"`
	Close string `yaml:"close,omitempty" toml:"close"`
	Split string `yaml:"split,omitempty" toml:"split"`

	// colon and keyword
	Openers     []string `yaml:"openers,omitempty" toml:"openers"`
	Trailers    []string `yaml:"trailers,omitempty" toml:"trailers"`
	Closers     []string `yaml:"closers,omitempty" toml:"closers"`
	Reopeners   []string `yaml:"reopeners,omitempty" toml:"reopeners"`
	Terminators []string `yaml:"terminators,omitempty" toml:"terminators"`
	OpenPattern string   `yaml:"open_pattern,omitempty" toml:"open_pattern"`

	// markup
	Void   []string `yaml:"void,omitempty" toml:"void"`
	Blocks bool     `yaml:"blocks,omitempty" toml:"blocks"`

	FoldCase bool `yaml:"fold_case,omitempty" toml:"fold_case"`
}

// DecodeRuleSet reads a rule set in the given format.
func DecodeRuleSet(r io.Reader, format RuleFormat) (RuleSet, error) {
	var rs RuleSet
	switch format {
	case RulesYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&rs); err != nil && !errors.Is(err, io.EOF) {
			return RuleSet{}, fmt.Errorf("%w: %s", ErrInvalidRuleSet, err)
		}
	case RulesTOML:
		md, err := toml.NewDecoder(r).Decode(&rs)
		if err != nil {
			return RuleSet{}, fmt.Errorf("%w: %s", ErrInvalidRuleSet, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return RuleSet{}, fmt.Errorf("%w: unknown key %q", ErrInvalidRuleSet, undecoded[0].String())
		}
	default:
		return RuleSet{}, fmt.Errorf("%w: rule format %q", ErrUnsupportedFormat, format)
	}
	return rs, nil
}

// LoadRuleSet reads a rule set file. The format follows the extension:
// .toml is TOML, anything else YAML.
func LoadRuleSet(path string) (RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return RuleSet{}, err
	}
	defer f.Close()
	format := RulesYAML
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = RulesTOML
	}
	rs, err := DecodeRuleSet(f, format)
	if err != nil {
		return RuleSet{}, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// Build converts every spec to a [Language].
func (rs RuleSet) Build() ([]Language, error) {
	out := make([]Language, 0, len(rs.Languages))
	for i, spec := range rs.Languages {
		l, err := spec.Build()
		if err != nil {
			return nil, fmt.Errorf("languages[%d]: %w", i, err)
		}
		out = append(out, l)
	}
	return out, nil
}

// Build converts the spec to a [Language].
func (s LanguageSpec) Build() (Language, error) {
	if strings.TrimSpace(s.Name) == "" {
		return Language{}, fmt.Errorf("%w: missing name", ErrInvalidRuleSet)
	}
	family, err := ParseFamily(s.Family)
	if err != nil {
		return Language{}, fmt.Errorf("%s: %w", s.Name, err)
	}
	l := Language{
		Name:       s.Name,
		Aliases:    s.Aliases,
		Extensions: s.Extensions,
		Unit:       s.Unit,
	}
	switch family {
	case FamilyBrace:
		if s.Open == "" || s.Close == "" {
			return Language{}, fmt.Errorf("%w: %s: brace family needs open and close", ErrInvalidRuleSet, s.Name)
		}
		l.Rules = BraceRules{Open: s.Open, Close: s.Close, Split: s.Split}
	case FamilyColon:
		l.Rules = ColonRules{Reopeners: s.Reopeners, Terminators: s.Terminators}
	case FamilyKeyword:
		if len(s.Closers) == 0 {
			return Language{}, fmt.Errorf("%w: %s: keyword family needs closers", ErrInvalidRuleSet, s.Name)
		}
		kw := KeywordRules{
			Openers:   s.Openers,
			Trailers:  s.Trailers,
			Closers:   s.Closers,
			Reopeners: s.Reopeners,
			FoldCase:  s.FoldCase,
		}
		if s.OpenPattern != "" {
			if kw.OpenPattern, err = regexp.Compile(s.OpenPattern); err != nil {
				return Language{}, fmt.Errorf("%w: %s: open_pattern: %s", ErrInvalidRuleSet, s.Name, err)
			}
		}
		l.Rules = kw
	case FamilyMarkup:
		l.Rules = MarkupRules{Void: s.Void, FoldCase: s.FoldCase, Blocks: s.Blocks}
	}
	return l, nil
}
