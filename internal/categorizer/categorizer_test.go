package categorizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/stmtledger/internal/model"
)

func TestDefault_Categorize(t *testing.T) {
	c := Default()
	tests := []struct {
		desc string
		want string
	}{
		{"Pak N Save", model.CategoryGroceries},
		{"WOOLWORTHS NZ 123", model.CategoryGroceries},
		{"Mobil Petone", model.CategoryTransport},
		{"Z Energy Lower Hutt", model.CategoryTransport},
		{"CityFitness Wellington", model.CategoryFitness},
		{"KFC Queen St", model.CategoryEatingOut},
		{"Spotify P1234", model.CategorySubscriptions},
		{"Salary Payment", model.CategoryIncome},
		{"Credit Transfer From J Smith", model.CategoryIncome},
		{"Unichem Pharmacy", model.CategoryHealth},
		{"Transfer to savings", model.CategoryOther},
		{"", model.CategoryOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Categorize(tt.desc), "Categorize(%q)", tt.desc)
	}
}

func TestCategorize_FirstRuleWins(t *testing.T) {
	c := Default()
	// Matches both the grocery and the income table; groceries come first.
	assert.Equal(t, model.CategoryGroceries, c.Categorize("Pak N Save Deposit Refund"))
	// Fuel is a transport keyword; subscriptions come later.
	assert.Equal(t, model.CategoryTransport, c.Categorize("Apple Fuel Stop"))
}

func TestCategorize_Pure(t *testing.T) {
	c := Default()
	first := c.Categorize("Netflix.com")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Categorize("Netflix.com"))
	}
}

func TestNew_CaseInsensitiveKeywords(t *testing.T) {
	c := New([]Rule{{Category: "Pets", Keywords: []string{"Animates", ""}}}, "")
	assert.Equal(t, "Pets", c.Categorize("ANIMATES PORIRUA"))
	assert.Equal(t, model.CategoryOther, c.Fallback())
	assert.Equal(t, []string{"animates"}, c.Rules()[0].Keywords)
}

func TestNew_CustomFallback(t *testing.T) {
	c := New(nil, "Uncategorized")
	assert.Equal(t, "Uncategorized", c.Categorize("anything"))
}

func TestRules_ReturnsCopy(t *testing.T) {
	c := Default()
	rules := c.Rules()
	rules[0].Keywords[0] = "mutated"
	assert.Equal(t, model.CategoryOther, c.Categorize("mutated"))
}

func TestLoad_CustomRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `rules:
  - category: Pets
    keywords: [animates, vet]
  - category: Groceries
    keywords: [pak n save]
fallback: Misc
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Pets", c.Categorize("Animates Porirua"))
	assert.Equal(t, "Groceries", c.Categorize("Pak N Save"))
	assert.Equal(t, "Misc", c.Categorize("Mobil"))
}

func TestLoad_EmptyRulesUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: []\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Rules(), len(DefaultRules()))
	assert.Equal(t, model.CategoryGroceries, c.Categorize("Countdown"))
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - category: Pets\n    keywords: []\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no keywords")
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, Save(path, RulesFile{Rules: DefaultRules()}))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Rules(), c.Rules())
}

func TestValidateRules(t *testing.T) {
	assert.NoError(t, ValidateRules(DefaultRules()))
	assert.Error(t, ValidateRules([]Rule{{Category: " ", Keywords: []string{"x"}}}))
	assert.Error(t, ValidateRules([]Rule{{Category: "X", Keywords: []string{" "}}}))
}
