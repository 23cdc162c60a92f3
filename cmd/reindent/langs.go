package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/bjaus/reindent"
)

func newLangsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "langs",
		Aliases: []string{"languages"},
		Short:   "List supported languages",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeLanguages(cmd.OutOrStdout(), a.registry.Languages())
		},
	}
}

func writeLanguages(w io.Writer, langs []reindent.Language) error {
	rows := [][]string{{"NAME", "FAMILY", "UNIT", "EXTENSIONS"}}
	for _, l := range langs {
		rows = append(rows, []string{l.Name, l.Family().String(), describeUnit(l.Config().Unit), strings.Join(l.Extensions, " ")})
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
			} else {
				cells[i] = runewidth.FillRight(cell, widths[i])
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

// describeUnit renders an indent unit for humans.
func describeUnit(unit string) string {
	switch {
	case unit == "":
		return "none"
	case strings.Trim(unit, "\t") == "":
		if len(unit) == 1 {
			return "tab"
		}
		return fmt.Sprintf("%d tabs", len(unit))
	case strings.Trim(unit, " ") == "":
		return fmt.Sprintf("%d spaces", len(unit))
	default:
		return fmt.Sprintf("%q", unit)
	}
}
