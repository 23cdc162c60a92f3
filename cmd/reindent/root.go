package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/bjaus/reindent"
)

var version = "dev"

// app holds state shared by all subcommands of one invocation.
type app struct {
	v        *viper.Viper
	cfgFile  string
	log      *slog.Logger
	colors   palette
	registry *reindent.Registry
}

// newRootCmd builds the command tree.
//
// Configuration is read, highest priority first, from command-line flags,
// REINDENT_* environment variables (REINDENT_BRACE_STYLE, REINDENT_INDENT, ...),
// and a config file: --config, then REINDENT_CONFIG_FILE, then .reindent.yaml
// in the working directory.
func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:   "reindent",
		Short: "Re-indent source files line by line",
		Long: `reindent rewrites the leading whitespace of source files using per-language
block rules. It doesn't parse: lines that open a block indent what follows,
lines that close one are dedented.

Quick start:
  reindent fmt src/                 Reindent every known file under src/
  reindent fmt --check .            List files that would change
  reindent fmt --lang python -      Reindent stdin
  reindent langs                    List supported languages
  reindent mcp                      Serve the reindenter over MCP`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default .reindent.yaml, can also use REINDENT_CONFIG_FILE)")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.StringSlice("rules", nil, "rule set files (.yaml or .toml) defining extra languages")

	root.AddCommand(newFmtCmd(a), newLangsCmd(a), newDetectCmd(a), newMCPCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := a.v.BindPFlags(cmd.InheritedFlags()); err != nil {
		return err
	}
	if err := a.loadConfig(); err != nil {
		return err
	}

	log, err := newLogger(cmd.ErrOrStderr(), a.v.GetString("log-level"))
	if err != nil {
		return err
	}
	a.log = log

	enabled, err := colorEnabled(a.v.GetString("color"), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	a.colors = newPalette(enabled)

	a.registry, err = buildRegistry(a.v.GetStringSlice("rules"))
	if err != nil {
		return err
	}
	if path := a.v.ConfigFileUsed(); path != "" {
		a.log.Debug("using config file", "path", path)
	}
	return nil
}

func (a *app) loadConfig() error {
	explicit := true
	switch {
	case a.cfgFile != "":
		a.v.SetConfigFile(a.cfgFile)
	case os.Getenv("REINDENT_CONFIG_FILE") != "":
		a.v.SetConfigFile(os.Getenv("REINDENT_CONFIG_FILE"))
	default:
		explicit = false
		a.v.AddConfigPath(".")
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".reindent")
	}

	a.v.SetEnvPrefix("REINDENT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !explicit && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// buildRegistry returns the built-in languages plus those in the rule files.
func buildRegistry(ruleFiles []string) (*reindent.Registry, error) {
	reg := reindent.Builtin()
	for _, path := range ruleFiles {
		rs, err := reindent.LoadRuleSet(path)
		if err != nil {
			return nil, err
		}
		langs, err := rs.Build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for _, l := range langs {
			reg.Add(l)
		}
	}
	return reg, nil
}

// --- color ---

type palette struct {
	changed *color.Color
	failed  *color.Color
	dim     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		changed: color.New(color.FgYellow),
		failed:  color.New(color.FgRed, color.Bold),
		dim:     color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.changed, p.failed, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func colorEnabled(mode string, out io.Writer) (bool, error) {
	switch strings.ToLower(mode) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("unknown color mode %q", mode)
	}
}
