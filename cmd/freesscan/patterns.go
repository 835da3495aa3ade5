package freesscan

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cer4sco/freesscan/internal/patterns"
)

var flagListPatterns string

func init() {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List secret patterns (bundled and custom)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := patterns.Default(flagListPatterns)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flagFormat == "json" {
				defs := make([]patterns.Def, 0, reg.Len())
				for r := range reg.All() {
					defs = append(defs, def(r))
				}
				return writeIndented(out, defs)
			}
			rows := make([][]string, 0, reg.Len())
			for r := range reg.All() {
				rows = append(rows, []string{r.Name, r.Group, string(r.Severity), r.Description})
			}
			tw := tablewriter.NewWriter(out)
			tw.Header("Name", "Group", "Severity", "Description")
			if err := tw.Bulk(rows); err != nil {
				return err
			}
			if err := tw.Render(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d patterns\n", reg.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&flagListPatterns, "config", "", "custom pattern file (YAML)")
	rootCmd.AddCommand(cmd)
}
