package report

import (
	"encoding/json"
	"io"

	"github.com/cer4sco/freesscan/internal/types"
)

const sarifSchema = "https://json.schemastore.org/sarif-2.1.0.json"

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
	Help             sarifMessage `json:"help"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	RuleIndex int          `json:"ruleIndex"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt     `json:"artifactLocation"`
	Region           *sarifRegion `json:"region,omitempty"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SevCritical, types.SevHigh:
		return "error"
	case types.SevMedium:
		return "warning"
	default:
		return "note"
	}
}

// WriteSARIF writes findings as SARIF 2.1.0. props, when non-empty, is
// attached to the run (scan statistics).
func WriteSARIF(w io.Writer, findings []types.Finding, version string, props map[string]any) error {
	run := sarifRun{
		Tool:       sarifTool{Driver: sarifDriver{Name: "freesscan", Version: version, Rules: []sarifRule{}}},
		Results:    []sarifResult{},
		Properties: props,
	}
	ruleIdx := map[string]int{}
	for _, f := range sortFindings(findings) {
		idx, ok := ruleIdx[f.Kind]
		if !ok {
			idx = len(run.Tool.Driver.Rules)
			ruleIdx[f.Kind] = idx
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, sarifRule{
				ID:               f.Kind,
				ShortDescription: sarifMessage{Text: f.Description},
				Help:             sarifMessage{Text: f.Remediation},
			})
		}
		phys := sarifPhys{ArtifactLocation: sarifArt{URI: f.Location}}
		if f.Line > 0 {
			phys.Region = &sarifRegion{StartLine: f.Line}
		}
		run.Results = append(run.Results, sarifResult{
			RuleID:    f.Kind,
			RuleIndex: idx,
			Level:     sevToLevel(f.Severity),
			Message:   sarifMessage{Text: f.Description},
			Locations: []sarifLoc{{PhysicalLocation: phys}},
		})
	}
	doc := sarif{Schema: sarifSchema, Version: "2.1.0", Runs: []sarifRun{run}}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
