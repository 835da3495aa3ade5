package freesscan

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cer4sco/freesscan/internal/netscan"
)

func init() {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "List the well-known ports probed by default and their risk",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := netscan.DefaultServices()
			out := cmd.OutOrStdout()
			if flagFormat == "json" {
				type row struct {
					Port        int    `json:"port"`
					Service     string `json:"service"`
					Severity    string `json:"severity"`
					Remediation string `json:"remediation"`
				}
				rows := []row{}
				for _, s := range table.All() {
					rows = append(rows, row{s.Port, s.Name, string(table.Severity(s.Port)), table.Remediation(s.Port)})
				}
				return writeIndented(out, rows)
			}
			var rows [][]string
			for _, s := range table.All() {
				rows = append(rows, []string{strconv.Itoa(s.Port), s.Name, string(table.Severity(s.Port)), table.Remediation(s.Port)})
			}
			tw := tablewriter.NewWriter(out)
			tw.Header("Port", "Service", "Severity", "Remediation")
			if err := tw.Bulk(rows); err != nil {
				return err
			}
			return tw.Render()
		},
	}
	rootCmd.AddCommand(cmd)
}
