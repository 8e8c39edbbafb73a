package categorizer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RulesFile is the on-disk form of a rule table (categorization-rules.yaml).
type RulesFile struct {
	Rules    []Rule `yaml:"rules"`
	Fallback string `yaml:"fallback,omitempty"`
}

// Load reads a rule file and returns a Categorizer. A file with no rules
// yields the default table.
func Load(path string) (*Categorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	var rf RulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	if len(rf.Rules) == 0 {
		return New(DefaultRules(), rf.Fallback), nil
	}
	if err := ValidateRules(rf.Rules); err != nil {
		return nil, fmt.Errorf("invalid rules in %s: %w", path, err)
	}
	return New(rf.Rules, rf.Fallback), nil
}

// Save writes a rule table to a YAML file.
func Save(path string, rf RulesFile) error {
	data, err := yaml.Marshal(rf)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}

// ValidateRules checks that every rule names a category and has at least one
// non-blank keyword.
func ValidateRules(rules []Rule) error {
	for i, r := range rules {
		if strings.TrimSpace(r.Category) == "" {
			return fmt.Errorf("rule %d: missing category", i+1)
		}
		ok := false
		for _, kw := range r.Keywords {
			if strings.TrimSpace(kw) != "" {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("rule %d (%s): no keywords", i+1, r.Category)
		}
	}
	return nil
}
