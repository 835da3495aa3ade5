package patterns

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Builtin returns the default rule groups in load order.
func Builtin() []Group {
	return []Group{awsGroup, genericGroup, cloudGroup}
}

// Registry is an immutable, ordered set of compiled rules.
type Registry struct {
	rules []Rule
	index map[string]int
}

// File is the shape of a custom patterns document. JSON documents are valid
// YAML, so either syntax is accepted.
type File struct {
	Patterns []Def `yaml:"patterns"`
}

// Load compiles groups in order and, when configPath names an existing file,
// appends the custom rules it defines. A configPath that does not exist is
// ignored. Any bad rule fails the whole load with a *ConfigError.
func Load(groups []Group, configPath string) (*Registry, error) {
	r := &Registry{index: map[string]int{}}
	for _, g := range groups {
		for _, d := range g.Defs {
			if err := r.add(g.Name, d); err != nil {
				return nil, &ConfigError{Rule: d.Name, Err: err}
			}
		}
	}
	if configPath == "" {
		return r, nil
	}
	defs, err := readFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, &ConfigError{Path: configPath, Err: err}
	}
	for _, d := range defs {
		if err := r.add("custom", d); err != nil {
			return nil, &ConfigError{Path: configPath, Rule: d.Name, Err: err}
		}
	}
	return r, nil
}

// Default loads the built-in groups plus an optional custom file.
func Default(configPath string) (*Registry, error) {
	return Load(Builtin(), configPath)
}

func readFile(path string) ([]Def, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse patterns: %w", err)
	}
	return f.Patterns, nil
}

func (r *Registry) add(group string, d Def) error {
	rule, err := compile(group, d)
	if err != nil {
		return err
	}
	if _, dup := r.index[rule.Name]; dup {
		return fmt.Errorf("duplicate rule name")
	}
	r.index[rule.Name] = len(r.rules)
	r.rules = append(r.rules, rule)
	return nil
}

// Rules returns a copy of the rules in load order.
func (r *Registry) Rules() []Rule { return slices.Clone(r.rules) }

// All iterates the rules in load order.
func (r *Registry) All() iter.Seq[Rule] {
	return func(yield func(Rule) bool) {
		for _, rule := range r.rules {
			if !yield(rule) {
				return
			}
		}
	}
}

func (r *Registry) Len() int { return len(r.rules) }

// Lookup finds a rule by name.
func (r *Registry) Lookup(name string) (Rule, bool) {
	i, ok := r.index[name]
	if !ok {
		return Rule{}, false
	}
	return r.rules[i], true
}
