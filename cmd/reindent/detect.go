package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjaus/reindent"
)

func newDetectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file> [file...]",
		Short: "Print the indent unit a file already uses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var failed bool
			for _, path := range args {
				src, err := os.ReadFile(path)
				if err != nil {
					failed = true
					a.colors.failed.Fprintf(cmd.ErrOrStderr(), "detect: %v\n", err)
					continue
				}
				unit, _ := reindent.DetectUnit(string(src))
				fmt.Fprintf(out, "%s: %s\n", path, describeUnit(unit))
			}
			if failed {
				return fmt.Errorf("detect: failed to read some files")
			}
			return nil
		},
	}
}
