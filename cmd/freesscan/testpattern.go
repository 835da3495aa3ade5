package freesscan

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cer4sco/freesscan/internal/detect"
	"github.com/cer4sco/freesscan/internal/patterns"
	"github.com/cer4sco/freesscan/internal/report"
)

var flagTestPatterns string

func init() {
	cmd := &cobra.Command{
		Use:   "test-pattern <name>",
		Short: "Run a single pattern against text read from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := patterns.Default(flagTestPatterns)
			if err != nil {
				return err
			}
			rule, ok := reg.Lookup(args[0])
			if !ok {
				names := make([]string, 0, reg.Len())
				for r := range reg.All() {
					names = append(names, r.Name)
				}
				return usagef("unknown pattern %q; available: %s", args[0], strings.Join(names, ", "))
			}
			single, err := patterns.Load([]patterns.Group{{Name: rule.Group, Defs: []patterns.Def{def(rule)}}}, "")
			if err != nil {
				return err
			}
			fs := slices.Collect(detect.New(single).ScanReader("stdin", cmd.InOrStdin()))
			if flagFormat == "json" {
				return report.WriteJSON(cmd.OutOrStdout(), fs)
			}
			if len(fs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no match")
				return nil
			}
			report.PrintTable(cmd.OutOrStdout(), fs, report.PrintOptions{NoColor: true})
			return nil
		},
	}
	cmd.Flags().StringVar(&flagTestPatterns, "config", "", "custom pattern file (YAML)")
	rootCmd.AddCommand(cmd)
}

func def(r patterns.Rule) patterns.Def {
	return patterns.Def{
		Name:        r.Name,
		Regex:       r.Regex.String(),
		Severity:    string(r.Severity),
		Description: r.Description,
		Remediation: r.Remediation,
	}
}
