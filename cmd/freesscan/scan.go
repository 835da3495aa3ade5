package freesscan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cer4sco/freesscan/internal/config"
	"github.com/cer4sco/freesscan/internal/detect"
	"github.com/cer4sco/freesscan/internal/engine"
	"github.com/cer4sco/freesscan/internal/metrics"
	"github.com/cer4sco/freesscan/internal/netscan"
	"github.com/cer4sco/freesscan/internal/patterns"
	"github.com/cer4sco/freesscan/internal/report"
	"github.com/cer4sco/freesscan/internal/store"
	"github.com/cer4sco/freesscan/internal/types"
	"github.com/cer4sco/freesscan/internal/update"
)

const defaultBaselinePath = "freesscan.baseline.json"

var (
	flagType            string
	flagTarget          string
	flagHost            string
	flagPatterns        string
	flagScanID          string
	flagPortRange       string
	flagPorts           string
	flagTimeout         time.Duration
	flagBannerTimeout   time.Duration
	flagWorkers         int
	flagThreads         int
	flagInclude         string
	flagExclude         string
	flagMaxBytes        int64
	flagDefaultExcludes bool
	flagBaseline        string
	flagStore           string
	flagEnvFile         string
	flagMetricsFile     string
	flagNoUpdateCheck   bool
	flagStoreRetention  time.Duration
	flagDryRun          bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a file tree for secrets and/or a host for exposed services",
		Example: `  freesscan scan --target ./repo
  freesscan scan --type port --target 10.0.0.5 --port-range 1-1024
  freesscan scan --type full --target . --host db.internal --format json`,
		RunE: runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagType, "type", "secret", "scan type: secret|port|full")
	cmd.Flags().StringVarP(&flagTarget, "target", "t", "", "file or directory for secret scans, hostname or IP for port scans")
	cmd.Flags().StringVar(&flagHost, "host", "", "host for the port half of a full scan (default: --target); only valid with --type full")
	cmd.Flags().StringVar(&flagPatterns, "config", "", "custom pattern file (YAML)")
	cmd.Flags().StringVar(&flagScanID, "scan-id", "", "scan ID recorded with stored results")
	cmd.Flags().StringVar(&flagPortRange, "port-range", "", "inclusive port range, e.g. 1-1024")
	cmd.Flags().StringVar(&flagPorts, "ports", "", "comma-separated ports and ranges, e.g. 22,80,8000-8010")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", netscan.DefaultTimeout, "connect timeout per port")
	cmd.Flags().DurationVar(&flagBannerTimeout, "banner-timeout", netscan.DefaultBannerTimeout, "banner read timeout per open port")
	cmd.Flags().IntVar(&flagWorkers, "workers", netscan.DefaultWorkers, "concurrent port probes")
	cmd.Flags().IntVar(&flagThreads, "threads", 0, "files scanned concurrently (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", engine.DefaultMaxBytes, "skip files larger than this")
	cmd.Flags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "also skip vendored, generated and lock files")
	cmd.Flags().StringVar(&flagBaseline, "baseline", defaultBaselinePath, "baseline file of accepted findings")
	cmd.Flags().StringVar(&flagStore, "store", "", "result store: postgres | badger:<dir> (default: none, postgres when --scan-id is set)")
	cmd.Flags().StringVar(&flagEnvFile, "env-file", "", "file of DB_* variables for the postgres store")
	cmd.Flags().StringVar(&flagMetricsFile, "metrics-file", "", "write Prometheus metrics to this file after the scan")
	cmd.Flags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable the new release notice")
	cmd.Flags().DurationVar(&flagStoreRetention, "store-retention", 0, "after saving, drop stored records older than this (badger store only; 0 keeps all)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "list the files a secret scan would read, then exit")
}

// scanPlan is the fully resolved configuration of one scan invocation.
type scanPlan struct {
	Type        string
	Target      string
	Host        string
	Ports       []int
	Secrets     engine.Config
	Probe       netscan.Prober
	Workers     int
	Patterns    string
	Baseline    string
	Store       string
	ScanID      string
	EnvFile     string
	MetricsFile string
	Retention   time.Duration
	NoColor     bool
	Format      string
}

func (p scanPlan) secrets() bool { return p.Type == "secret" || p.Type == "full" }
func (p scanPlan) ports() bool   { return p.Type == "port" || p.Type == "full" }

func runScan(cmd *cobra.Command, _ []string) error {
	plan, err := resolvePlan(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if flagDryRun {
		return listFiles(ctx, out, plan)
	}

	if !flagNoUpdateCheck && plan.Format == "text" {
		if latest, newer := update.NewChecker().Check(ctx, version); newer {
			fmt.Fprintf(cmd.ErrOrStderr(), "(new version available: %s)  run 'freesscan self-update' to upgrade\n", latest)
		}
	}

	m := metrics.New()
	plan.Secrets.Metrics = m
	plan.Probe.Metrics = m
	findings, stats, err := executePlan(ctx, plan)
	if err != nil {
		return err
	}

	shown := applyBaseline(findings, plan.Baseline)
	if err := render(out, plan, shown, stats); err != nil {
		return err
	}

	saveResults(ctx, plan, findings)
	m.ObserveFindings(findings)
	if plan.MetricsFile != "" {
		if err := m.WriteFile(plan.MetricsFile); err != nil {
			logger.Warn().Err(err).Str("path", plan.MetricsFile).Msg("could not write metrics")
		}
	}
	exitCode = report.ExitCode(shown)
	return nil
}

func resolvePlan(cmd *cobra.Command) (scanPlan, error) {
	var plan scanPlan
	switch flagType {
	case "secret", "port", "full":
	default:
		return plan, usagef("invalid --type %q (want secret, port or full)", flagType)
	}
	switch flagFormat {
	case "text", "json", "summary", "table", "sarif":
	default:
		return plan, usagef("invalid --format %q (want text, json, summary, table or sarif)", flagFormat)
	}
	if strings.TrimSpace(flagTarget) == "" {
		return plan, usagef("--target is required")
	}
	if flagPorts != "" && flagPortRange != "" {
		return plan, usagef("--ports and --port-range are mutually exclusive")
	}
	if flagHost != "" && flagType != "full" {
		return plan, usagef("--host only applies to --type full")
	}
	if flagDryRun && flagType == "port" {
		return plan, usagef("--dry-run lists files and needs --type secret or full")
	}
	if flagStoreRetention < 0 {
		return plan, usagef("--store-retention must not be negative")
	}

	plan.Type = flagType
	plan.Format = flagFormat
	plan.Target = flagTarget

	// config precedence: CLI > local (next to the target) > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	} else if !errors.Is(err, config.ErrNotFound) {
		return plan, err
	}
	if c, err := config.LoadLocal(localConfigDir(plan)); err == nil {
		lcfg = c
	} else if !errors.Is(err, config.ErrNotFound) {
		return plan, err
	}

	flags := cmd.Flags()
	plan.Patterns = pickString(flagPatterns, lcfg.PatternsFile, gcfg.PatternsFile)
	plan.Baseline = flagBaseline
	if !flags.Changed("baseline") {
		if b := pickString("", lcfg.Baseline, gcfg.Baseline); b != "" {
			plan.Baseline = b
		}
	}
	plan.Store = pickString(flagStore, lcfg.Store, gcfg.Store)
	if plan.Store == "" && flagScanID != "" {
		plan.Store = "postgres"
	}
	plan.ScanID = flagScanID
	plan.EnvFile = flagEnvFile
	plan.MetricsFile = flagMetricsFile
	plan.Retention = flagStoreRetention
	plan.NoColor = pickBool(flagNoColor, flags.Changed("no-color"), lcfg.NoColor, gcfg.NoColor) ||
		!colorCapable(cmd.OutOrStdout())

	if plan.secrets() {
		abs, err := filepath.Abs(plan.Target)
		if err != nil {
			return plan, err
		}
		plan.Secrets = engine.Config{
			Root:            abs,
			IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
			ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
			MaxBytes:        pickInt64(flagMaxBytes, flags.Changed("max-bytes"), lcfg.MaxBytes, gcfg.MaxBytes),
			Threads:         pickInt(flagThreads, flags.Changed("threads"), lcfg.Threads, gcfg.Threads),
			DefaultExcludes: pickBool(flagDefaultExcludes, flags.Changed("default-excludes"), lcfg.DefaultExcludes, gcfg.DefaultExcludes),
			Logger:          logger,
		}
	}

	if plan.ports() {
		plan.Host = plan.Target
		if plan.Type == "full" && flagHost != "" {
			plan.Host = flagHost
		}
		ports, err := resolvePorts()
		if err != nil {
			return plan, err
		}
		plan.Ports = ports
		plan.Workers = pickInt(flagWorkers, flags.Changed("workers"), lcfg.Workers, gcfg.Workers)
		plan.Probe = netscan.Prober{
			Timeout:       pickDuration(flagTimeout, flags.Changed("timeout"), lcfg.TimeoutDuration(), gcfg.TimeoutDuration()),
			BannerTimeout: pickDuration(flagBannerTimeout, flags.Changed("banner-timeout"), lcfg.BannerTimeoutDuration(), gcfg.BannerTimeoutDuration()),
			Services:      netscan.DefaultServices(),
			Logger:        logger,
		}
	}
	return plan, nil
}

// localConfigDir is the directory searched for a project config file: the
// target itself, the directory holding a file target, or the working
// directory for port scans.
func localConfigDir(plan scanPlan) string {
	if plan.Type == "port" {
		wd, _ := os.Getwd()
		return wd
	}
	if fi, err := os.Stat(plan.Target); err == nil && !fi.IsDir() {
		return filepath.Dir(plan.Target)
	}
	return plan.Target
}

func resolvePorts() ([]int, error) {
	switch {
	case flagPorts != "":
		return netscan.ParsePorts(flagPorts)
	case flagPortRange != "":
		start, end, err := netscan.ParseRange(flagPortRange)
		if err != nil {
			return nil, err
		}
		ports := make([]int, 0, end-start+1)
		for p := start; p <= end; p++ {
			ports = append(ports, p)
		}
		return ports, nil
	default:
		return netscan.CommonPorts(), nil
	}
}

// executePlan builds the pattern registry (a bad custom file is fatal
// before anything is scanned) and runs the requested engines.
func executePlan(ctx context.Context, plan scanPlan) ([]types.Finding, report.PrintOptions, error) {
	var stats report.PrintOptions
	findings := []types.Finding{}
	started := time.Now()

	if plan.secrets() {
		reg, err := patterns.Default(plan.Patterns)
		if err != nil {
			return nil, stats, err
		}
		logger.Debug().Int("rules", reg.Len()).Msg("pattern registry loaded")
		res, err := engine.ScanSecrets(ctx, plan.Secrets, detect.New(reg))
		if err != nil {
			return nil, stats, err
		}
		findings = append(findings, res.Findings...)
		stats.FilesScanned = res.FilesScanned
	}

	if plan.ports() {
		probe := plan.Probe
		sc := netscan.NewScanner(&probe, plan.Workers)
		t0 := time.Now()
		fs, err := sc.Scan(ctx, plan.Host, plan.Ports)
		if err != nil {
			return nil, stats, err
		}
		probe.Metrics.ObserveDuration("port", time.Since(t0))
		findings = append(findings, fs...)
	}

	stats.Duration = time.Since(started)
	stats.NoColor = plan.NoColor
	return findings, stats, nil
}

// applyBaseline hides findings recorded in the baseline file. A missing
// file means nothing is suppressed.
func applyBaseline(findings []types.Finding, path string) []types.Finding {
	if path == "" {
		return findings
	}
	base, err := report.LoadBaseline(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Err(err).Str("path", path).Msg("ignoring unreadable baseline")
		}
		return findings
	}
	return report.FilterNewFindings(findings, base)
}

func render(w io.Writer, plan scanPlan, findings []types.Finding, stats report.PrintOptions) error {
	switch plan.Format {
	case "json":
		return report.WriteJSON(w, findings)
	case "sarif":
		props := map[string]any{
			"scanType":     plan.Type,
			"filesScanned": stats.FilesScanned,
			"durationMs":   stats.Duration.Milliseconds(),
		}
		if err := report.WriteSARIF(w, findings, version, props); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case "summary":
		report.PrintSummary(w, findings, stats)
	case "table":
		report.PrintTable(w, findings, stats)
	default:
		report.PrintText(w, findings, stats)
	}
	return nil
}

// saveResults hands every finding, baselined or not, to the configured
// store. Failures are logged; the report has already been written.
func saveResults(ctx context.Context, plan scanPlan, findings []types.Finding) {
	if plan.Store == "" {
		return
	}
	db, err := config.LoadDB(plan.EnvFile)
	if err != nil {
		logger.Warn().Err(err).Msg("could not load database settings")
		return
	}
	sink, err := store.Open(ctx, plan.Store, db, logger)
	if err != nil {
		logger.Warn().Err(err).Str("store", plan.Store).Msg("could not open result store")
		return
	}
	defer sink.Close()
	if err := sink.Save(ctx, plan.ScanID, findings); err != nil {
		logger.Warn().Err(err).Str("store", plan.Store).Msg("could not store findings")
		return
	}
	logger.Info().Str("store", plan.Store).Int("findings", len(findings)).Msg("findings stored")
	if plan.Retention <= 0 {
		return
	}
	p, ok := sink.(store.Pruner)
	if !ok {
		logger.Warn().Str("store", plan.Store).Msg("--store-retention is ignored for this store")
		return
	}
	n, err := p.PruneOlderThan(time.Now().Add(-plan.Retention))
	if err != nil {
		logger.Warn().Err(err).Msg("could not prune stored records")
		return
	}
	logger.Info().Int("removed", n).Dur("retention", plan.Retention).Msg("pruned stored records")
}

// listFiles prints the files a secret scan of plan would read.
func listFiles(ctx context.Context, w io.Writer, plan scanPlan) error {
	cfg := plan.Secrets
	if _, err := os.Stat(cfg.Root); err != nil {
		return &engine.InvalidTargetError{Target: cfg.Root, Err: err}
	}
	ign, err := engine.LoadIgnore(cfg.Root)
	if err != nil {
		logger.Warn().Err(err).Msg("ignoring unreadable ignore file")
	}
	n := 0
	err = engine.Walk(ctx, cfg, ign, func(p string) {
		fmt.Fprintln(w, p)
		n++
	})
	logger.Info().Int("files", n).Msg("dry run")
	return err
}

func colorCapable(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && report.ColorEnabled(f)
}
