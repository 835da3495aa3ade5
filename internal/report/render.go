package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/cer4sco/freesscan/internal/types"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	Now          time.Time // header timestamp; zero means time.Now
}

// WriteJSON writes findings as an indented JSON array. An empty collection
// is written as [].
func WriteJSON(w io.Writer, findings []types.Finding) error {
	if findings == nil {
		findings = []types.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// PrintText writes a detailed, numbered report with per-severity totals.
func PrintText(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No findings detected.")
		printFooter(w, opts)
		return
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(w, "Security Scan Results - %s\n", now.Format(time.RFC3339))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total findings: %d\n\n", len(findings))
	fmt.Fprintln(w, "Summary by Severity:")
	for _, sc := range BySeverity(findings) {
		fmt.Fprintf(w, "  %s: %d\n", severityLabel(sc.Severity, opts.NoColor), sc.Count)
	}
	fmt.Fprintf(w, "\n%s\n\n", rule)

	for i, f := range sortFindings(findings) {
		fmt.Fprintf(w, "Finding #%d\n", i+1)
		fmt.Fprintf(w, "  Severity: %s\n", severityLabel(f.Severity, opts.NoColor))
		fmt.Fprintf(w, "  Type: %s\n", f.Kind)
		fmt.Fprintf(w, "  Location: %s\n", location(f))
		fmt.Fprintf(w, "  Description: %s\n", f.Description)
		if f.Service != "" {
			fmt.Fprintf(w, "  Service: %s\n", f.Service)
		}
		if f.Evidence != "" {
			label := "Match"
			if f.Kind == "open_port" {
				label = "Banner"
			}
			fmt.Fprintf(w, "  %s: %s\n", label, oneLine(f.Evidence))
		}
		if f.Remediation != "" {
			fmt.Fprintf(w, "  Remediation: %s\n", f.Remediation)
		}
		fmt.Fprintln(w)
	}
	printFooter(w, opts)
}

// PrintSummary writes totals per severity and the ten most frequent kinds.
func PrintSummary(w io.Writer, findings []types.Finding, opts PrintOptions) {
	fmt.Fprintln(w, "SCAN SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 40))
	fmt.Fprintf(w, "Total Findings: %d\n", len(findings))
	fmt.Fprintln(w, "\nBy Severity:")
	for _, sc := range BySeverity(findings) {
		fmt.Fprintf(w, "  %s: %d\n", severityLabel(sc.Severity, opts.NoColor), sc.Count)
	}
	fmt.Fprintln(w, "\nTop Finding Types:")
	for _, kc := range TopKinds(findings, 10) {
		fmt.Fprintf(w, "  %s: %d\n", kc.Kind, kc.Count)
	}
	printFooter(w, opts)
}

// PrintTable renders one row per finding.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No findings detected.")
		printFooter(w, opts)
		return
	}
	table := tablewriter.NewWriter(w)
	table.Header("Severity", "Type", "Location", "Evidence")
	rows := make([][]string, 0, len(findings))
	for _, f := range sortFindings(findings) {
		rows = append(rows, []string{
			severityLabel(f.Severity, opts.NoColor),
			f.Kind,
			location(f),
			oneLine(f.Evidence),
		})
	}
	_ = table.Bulk(rows)
	_ = table.Render()
	printFooter(w, opts)
}

func printFooter(w io.Writer, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned <= 0 {
		return
	}
	fmt.Fprintln(w)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
	}
}

// location renders path:line for content findings and host:port for ports.
func location(f types.Finding) string {
	if f.Line > 0 {
		return f.Location + ":" + strconv.Itoa(f.Line)
	}
	return f.Location
}

func oneLine(s string) string {
	s = strings.TrimSpace(s)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
