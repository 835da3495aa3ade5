package freesscan

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cer4sco/freesscan/internal/detect"
	"github.com/cer4sco/freesscan/internal/engine"
	"github.com/cer4sco/freesscan/internal/patterns"
	"github.com/cer4sco/freesscan/internal/report"
)

var (
	flagBaselineTarget   string
	flagBaselineOutput   string
	flagBaselinePatterns string
)

func init() {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage baselines of accepted findings",
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "Record every current secret finding as accepted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			abs, err := filepath.Abs(flagBaselineTarget)
			if err != nil {
				return err
			}
			reg, err := patterns.Default(flagBaselinePatterns)
			if err != nil {
				return err
			}
			res, err := engine.ScanSecrets(cmd.Context(), engine.Config{Root: abs, DefaultExcludes: true, Logger: logger}, detect.New(reg))
			if err != nil {
				return err
			}
			if err := report.SaveBaseline(flagBaselineOutput, res.Findings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated: %d findings recorded in %s\n", len(res.Findings), flagBaselineOutput)
			return nil
		},
	}
	update.Flags().StringVarP(&flagBaselineTarget, "target", "t", ".", "file or directory to scan")
	update.Flags().StringVar(&flagBaselineOutput, "output", defaultBaselinePath, "baseline file to write")
	update.Flags().StringVar(&flagBaselinePatterns, "config", "", "custom pattern file (YAML)")

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(update)
}
