package patterns

import (
	"fmt"
	"regexp"

	"github.com/cer4sco/freesscan/internal/types"
)

// Def is the uncompiled form of a rule, as written in the built-in tables and
// in custom pattern files.
type Def struct {
	Name        string `yaml:"name" json:"name"`
	Regex       string `yaml:"regex" json:"regex"`
	Severity    string `yaml:"severity" json:"severity"`
	Description string `yaml:"description" json:"description"`
	Remediation string `yaml:"remediation" json:"remediation"`
}

// Group is a named, ordered set of rule definitions.
type Group struct {
	Name string
	Defs []Def
}

// Rule is a compiled pattern rule.
type Rule struct {
	Name        string
	Regex       *regexp.Regexp
	Severity    types.Severity
	Description string
	Remediation string
	Group       string
}

// ConfigError reports a rule definition or pattern document that could not be
// loaded. The whole load fails when one is returned.
type ConfigError struct {
	Path string // empty for built-in groups
	Rule string // empty when the document itself is malformed
	Err  error
}

func (e *ConfigError) Error() string {
	src := e.Path
	if src == "" {
		src = "built-in patterns"
	}
	if e.Rule != "" {
		return fmt.Sprintf("%s: rule %q: %v", src, e.Rule, e.Err)
	}
	return fmt.Sprintf("%s: %v", src, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func compile(group string, d Def) (Rule, error) {
	if d.Name == "" {
		return Rule{}, fmt.Errorf("empty rule name")
	}
	if d.Regex == "" {
		return Rule{}, fmt.Errorf("empty regex")
	}
	re, err := regexp.Compile(d.Regex)
	if err != nil {
		return Rule{}, fmt.Errorf("invalid regex: %w", err)
	}
	sev, err := types.ParseSeverity(d.Severity)
	if err != nil {
		return Rule{}, err
	}
	return Rule{
		Name:        d.Name,
		Regex:       re,
		Severity:    sev,
		Description: d.Description,
		Remediation: d.Remediation,
		Group:       group,
	}, nil
}
