package categorizer

import (
	"strings"

	"github.com/cleared-dev/stmtledger/internal/model"
)

// Rule assigns Category to any description containing one of Keywords.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Categorizer maps free-text descriptions to a category label by walking an
// ordered rule table. The first matching rule wins.
type Categorizer struct {
	rules    []Rule
	fallback string
}

// New creates a Categorizer from an ordered rule table. Keywords are matched
// case-insensitively. An empty fallback defaults to "Other".
func New(rules []Rule, fallback string) *Categorizer {
	if fallback == "" {
		fallback = model.CategoryOther
	}
	normalized := make([]Rule, len(rules))
	for i, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(kw); kw != "" {
				kws = append(kws, kw)
			}
		}
		normalized[i] = Rule{Category: r.Category, Keywords: kws}
	}
	return &Categorizer{rules: normalized, fallback: fallback}
}

// Default returns a Categorizer over DefaultRules.
func Default() *Categorizer {
	return New(DefaultRules(), model.CategoryOther)
}

// Categorize returns the category of the first rule with a keyword contained
// in description, or the fallback category.
func (c *Categorizer) Categorize(description string) string {
	text := strings.ToLower(description)
	for _, r := range c.rules {
		if containsAny(text, r.Keywords...) {
			return r.Category
		}
	}
	return c.fallback
}

// Rules returns a copy of the normalized rule table.
func (c *Categorizer) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = Rule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// Fallback returns the category used when no rule matches.
func (c *Categorizer) Fallback() string { return c.fallback }

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
