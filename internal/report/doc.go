// Package report renders findings as JSON, detailed text, aggregated
// summaries, tables and SARIF, and maintains the findings baseline.
package report
