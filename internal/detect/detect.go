package detect

import (
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/cer4sco/freesscan/internal/patterns"
	"github.com/cer4sco/freesscan/internal/types"
)

// ScanErrorKind is the finding kind emitted when content cannot be read.
const ScanErrorKind = "scan_error"

// Detector matches every rule of a registry against each line it is given.
// It holds no mutable state and may be shared across goroutines.
type Detector struct {
	rules []patterns.Rule
}

// New builds a detector over the rules of reg.
func New(reg *patterns.Registry) *Detector {
	return &Detector{rules: reg.Rules()}
}

// Scan yields findings for contentID. A read error from lines produces a
// single scan_error finding and ends the sequence.
func (d *Detector) Scan(contentID string, lines iter.Seq2[Line, error]) iter.Seq[types.Finding] {
	return func(yield func(types.Finding) bool) {
		var sup suppressor
		for ln, err := range lines {
			if err != nil {
				yield(ScanError(contentID, err))
				return
			}
			if sup.skip(ln.Text) {
				continue
			}
			for _, r := range d.rules {
				for _, m := range matchAll(r, ln.Text) {
					if !yield(newFinding(r, contentID, ln.Number, m)) {
						return
					}
				}
			}
		}
	}
}

// ScanReader scans r as a single content unit.
func (d *Detector) ScanReader(contentID string, r io.Reader) iter.Seq[types.Finding] {
	return d.Scan(contentID, Lines(r))
}

// ScanFile opens path each time the sequence is ranged over, so the result
// can be iterated more than once. Open failures become a scan_error finding.
func (d *Detector) ScanFile(path string) iter.Seq[types.Finding] {
	return func(yield func(types.Finding) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(ScanError(path, err))
			return
		}
		defer f.Close()
		for fd := range d.ScanReader(path, f) {
			if !yield(fd) {
				return
			}
		}
	}
}

// matchAll returns every non-overlapping match of r on text. A panic inside
// the matcher drops this rule for this line only.
func matchAll(r patterns.Rule, text string) (ms []string) {
	defer func() {
		if recover() != nil {
			ms = nil
		}
	}()
	return r.Regex.FindAllString(text, -1)
}

func newFinding(r patterns.Rule, id string, line int, m string) types.Finding {
	return types.Finding{
		Kind:        r.Name,
		Severity:    r.Severity,
		Location:    id,
		Line:        line,
		Evidence:    types.CapEvidence(Redact(m)),
		Description: r.Description,
		Remediation: r.Remediation,
	}
}

// ScanError builds the informational finding for unreadable content.
func ScanError(id string, err error) types.Finding {
	return types.Finding{
		Kind:        ScanErrorKind,
		Severity:    types.SevInfo,
		Location:    id,
		Evidence:    types.CapEvidence(fmt.Sprint(err)),
		Description: "Error scanning file",
		Remediation: "Check file permissions and encoding",
	}
}
