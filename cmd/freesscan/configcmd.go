package freesscan

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cer4sco/freesscan/internal/config"
	"github.com/cer4sco/freesscan/internal/engine"
	"github.com/cer4sco/freesscan/internal/netscan"
)

var (
	cfgOutput          string
	cfgForce           bool
	cfgThreads         int
	cfgWorkers         int
	cfgMaxBytes        int64
	cfgTimeout         time.Duration
	cfgBannerTimeout   time.Duration
	cfgNoColor         bool
	cfgDefaultExcludes bool
	cfgPatternsFile    string
	cfgStore           string
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .freesscan.yml with default scan options",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", config.LocalNames[0], "output file path")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	initCmd.Flags().IntVar(&cfgThreads, "threads", 0, "files scanned concurrently (0 = GOMAXPROCS)")
	initCmd.Flags().IntVar(&cfgWorkers, "workers", netscan.DefaultWorkers, "concurrent port probes")
	initCmd.Flags().Int64Var(&cfgMaxBytes, "max-bytes", engine.DefaultMaxBytes, "skip files larger than this")
	initCmd.Flags().DurationVar(&cfgTimeout, "timeout", netscan.DefaultTimeout, "connect timeout per port")
	initCmd.Flags().DurationVar(&cfgBannerTimeout, "banner-timeout", netscan.DefaultBannerTimeout, "banner read timeout")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgDefaultExcludes, "default-excludes", true, "skip vendored, generated and lock files")
	initCmd.Flags().StringVar(&cfgPatternsFile, "patterns-file", "", "custom pattern file to load on every scan")
	initCmd.Flags().StringVar(&cfgStore, "store", "", "result store: postgres | badger:<dir>")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	fc := config.FileConfig{
		MaxBytes:        int64Ptr(cfgMaxBytes),
		Threads:         intPtr(cfgThreads),
		Workers:         intPtr(cfgWorkers),
		Timeout:         strPtr(cfgTimeout.String()),
		BannerTimeout:   strPtr(cfgBannerTimeout.String()),
		PatternsFile:    optStrPtr(cfgPatternsFile),
		DefaultExcludes: boolPtr(cfgDefaultExcludes),
		NoColor:         boolPtr(cfgNoColor),
		Store:           optStrPtr(cfgStore),
	}
	if err := fc.Validate(); err != nil {
		return usagef("%v", err)
	}
	if err := config.Write(cfgOutput, fc, cfgForce); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}

func strPtr(s string) *string { return &s }
func optStrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }
