package freesscan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cer4sco/freesscan/internal/report"
	"github.com/cer4sco/freesscan/internal/store"
	"github.com/cer4sco/freesscan/internal/types"
)

var (
	flagHistoryStore     string
	flagHistoryOlderThan time.Duration
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect scans saved in a local badger store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sink, err := openHistory()
			if err != nil {
				return err
			}
			defer sink.Close()
			recs, err := sink.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flagFormat == "json" {
				return writeIndented(out, recs)
			}
			rows := make([][]string, 0, len(recs))
			for _, r := range recs {
				rows = append(rows, []string{r.ID, r.ScanID, r.StoredAt.Format(time.RFC3339), strconv.Itoa(len(r.Findings)), countsLine(r.SeverityCounts)})
			}
			tw := tablewriter.NewWriter(out)
			tw.Header("ID", "Scan ID", "Stored", "Findings", "By Severity")
			if err := tw.Bulk(rows); err != nil {
				return err
			}
			return tw.Render()
		},
	}
	cmd.PersistentFlags().StringVar(&flagHistoryStore, "store", "", "badger store to read, as badger:<dir>")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the findings of one saved scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sink, err := openHistory()
			if err != nil {
				return err
			}
			defer sink.Close()
			rec, err := sink.Get(args[0])
			if errors.Is(err, store.ErrNotFound) {
				return usagef("no saved scan %q", args[0])
			}
			if err != nil {
				return err
			}
			fs := make([]types.Finding, 0, len(rec.Findings))
			for _, f := range rec.Findings {
				fs = append(fs, f.Finding)
			}
			opts := report.PrintOptions{NoColor: flagNoColor || !colorCapable(cmd.OutOrStdout()), Now: rec.StoredAt}
			return render(cmd.OutOrStdout(), scanPlan{Format: flagFormat, Type: "history"}, fs, opts)
		},
	}

	prune := &cobra.Command{
		Use:   "prune",
		Short: "Delete saved scans older than --older-than",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flagHistoryOlderThan <= 0 {
				return usagef("--older-than must be positive")
			}
			sink, err := openHistory()
			if err != nil {
				return err
			}
			defer sink.Close()
			n, err := sink.PruneOlderThan(time.Now().Add(-flagHistoryOlderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d saved scans\n", n)
			return nil
		},
	}
	prune.Flags().DurationVar(&flagHistoryOlderThan, "older-than", 0, "age above which saved scans are removed, e.g. 720h")

	cmd.AddCommand(show, prune)
	rootCmd.AddCommand(cmd)
}

func openHistory() (*store.BadgerSink, error) {
	dir, ok := strings.CutPrefix(flagHistoryStore, "badger:")
	if !ok || dir == "" {
		return nil, usagef("--store badger:<dir> is required")
	}
	return store.OpenBadger(dir, logger)
}

func countsLine(m map[string]int) string {
	var parts []string
	for _, s := range types.Severities {
		if n := m[string(s)]; n > 0 {
			parts = append(parts, string(s)+"="+strconv.Itoa(n))
		}
	}
	return strings.Join(parts, " ")
}
