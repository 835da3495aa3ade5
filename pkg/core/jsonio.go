package core

import (
	"encoding/json"
	"io"

	"github.com/cer4sco/freesscan/internal/report"
)

// MarshalFindings writes findings in the CLI's JSON shape.
func MarshalFindings(w io.Writer, findings []Finding) error {
	return report.WriteJSON(w, findings)
}

// UnmarshalFindings decodes the JSON array written by MarshalFindings.
func UnmarshalFindings(r io.Reader) ([]Finding, error) {
	var fs []Finding
	if err := json.NewDecoder(r).Decode(&fs); err != nil {
		return nil, err
	}
	return fs, nil
}
