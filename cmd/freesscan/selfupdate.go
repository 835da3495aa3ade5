package freesscan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cer4sco/freesscan/internal/update"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "self-update",
		Short: "Replace this binary with the latest GitHub release",
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := update.Resolve(version)
			latest, err := update.SelfUpdate(current)
			if err != nil {
				return err
			}
			if update.Newer(latest, current) {
				fmt.Fprintf(cmd.OutOrStdout(), "updated to v%s; re-run your command\n", latest)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "already at the latest version (%s)\n", current)
			}
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the freesscan version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), update.Resolve(version))
		},
	})
}
