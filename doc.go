// Package reindent rewrites the leading whitespace of source text using a
// single forward pass over its lines.
//
// The central entry point is [Reindent], which takes the text, a [Config]
// (indent unit and [BraceStyle]), and a [Rules] value that classifies each
// trimmed line. Nothing is parsed: a line either lowers the depth before it is
// emitted, raises it afterwards, both, or neither.
//
//	out := reindent.Reindent(src, reindent.Config{Unit: "  "}, reindent.BraceRules{Open: "{", Close: "}"})
//
// Reindent never fails. Excess closing tokens clamp the depth at zero, blank
// lines come out empty, and with [SameLine] braces the output has exactly as
// many lines as the input.
//
// # Rules
//
// Four rule families cover the usual block syntaxes:
//
//   - [BraceRules]: C, Java, JavaScript, Go, Rust, CSS, JSON
//   - [ColonRules]: Python: a trailing colon opens a block
//   - [KeywordRules]: Ruby, Lua, SQL: blocks end with a keyword
//   - [MarkupRules]: HTML, XML, Vue, Svelte
//
// [Combine] merges rules, e.g. keywords plus parentheses for SQL. Rules may
// implement optional interfaces:
//
//   - [Splitter]: moves a trailing opener onto its own line under [NewLine]
//   - [Terminator]: closes a block after a line, e.g. Python's return
//
// # Languages
//
// [Builtin] returns a [Registry] of ready-made languages resolvable by name,
// alias, or file extension. Additional languages can be described in YAML or
// TOML and loaded with [LoadRuleSet]:
//
//	languages:
//	  - name: crystal
//	    extensions: [cr]
//	    family: keyword
//	    openers: [def, class, if]
//	    closers: [end]
//
// # Companions
//
// A few independent functions sit next to the reindenter and are meant to be
// composed by callers:
//
//   - [CheckBalance]: bracket balance validation
//   - [DetectUnit]: guess the indent unit of existing text
//   - [Measure]: reindent and collect [Stats]
//   - [Chain], [TrimTrailingSpace], [CollapseBlankLines]: text transforms
//   - [WriteReport]: render [FileReport] values as text, JSON, YAML, or Markdown
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrUnknownBraceStyle]: unknown brace style name
//   - [ErrUnknownFamily]: unknown rule family name
//   - [ErrUnknownLanguage]: no language for a name or path
//   - [ErrInvalidRuleSet]: malformed rule set file
//   - [ErrUnsupportedFormat]: unknown report or rule file format
//   - [ErrUnbalanced]: matched by [*BalanceError]
package reindent
