package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/stmtledger/internal/statement"
)

// FileName is the config file looked up in the working directory.
const FileName = "stmtledger.yaml"

// Config represents the top-level stmtledger.yaml configuration.
type Config struct {
	Statement      StatementConfig      `yaml:"statement"`
	Categorization CategorizationConfig `yaml:"categorization"`
	Analysis       AnalysisConfig       `yaml:"analysis"`
	Report         ReportConfig         `yaml:"report"`
	RunLog         RunLogConfig         `yaml:"run_log"`
}

// StatementConfig controls how statement lines are resolved.
type StatementConfig struct {
	Year           int               `yaml:"year"`   // 0 means the current year
	Policy         string            `yaml:"policy"` // explicit-marker or balance-delta
	OpeningBalance string            `yaml:"opening_balance,omitempty"`
	Markers        map[string]string `yaml:"markers,omitempty"` // e.g. {"TF": "debit"}
}

// CategorizationConfig points at the keyword rule table.
type CategorizationConfig struct {
	RulesFile string `yaml:"rules_file"`
}

// AnalysisConfig controls the language-model boundary.
type AnalysisConfig struct {
	Model      string `yaml:"model"`
	MaxRecords int    `yaml:"max_records"`
}

// ReportConfig controls the HTML report.
type ReportConfig struct {
	Output         string `yaml:"output"`
	CurrencySymbol string `yaml:"currency_symbol"`
	TopSpending    int    `yaml:"top_spending"`
}

// RunLogConfig controls logs/parse-log.csv.
type RunLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Load reads a stmtledger.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault reads path, falling back to Default when it does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Statement: StatementConfig{
			Policy: string(statement.PolicyExplicitMarker),
		},
		Categorization: CategorizationConfig{
			RulesFile: "rules/categorization-rules.yaml",
		},
		Analysis: AnalysisConfig{
			Model:      "gemini-2.5-flash",
			MaxRecords: 200,
		},
		Report: ReportConfig{
			Output:         "output/report.html",
			CurrencySymbol: "$",
			TopSpending:    5,
		},
		RunLog: RunLogConfig{
			Enabled: true,
			Dir:     ".",
		},
	}
}

// ParsedPolicy returns the configured direction policy.
func (s StatementConfig) ParsedPolicy() (statement.Policy, error) {
	return statement.ParsePolicy(s.Policy)
}

// Opening returns the configured opening balance, invalid when unset.
func (s StatementConfig) Opening() (decimal.NullDecimal, error) {
	v := strings.TrimSpace(s.OpeningBalance)
	if v == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", ""))
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("opening_balance %q: %w", s.OpeningBalance, err)
	}
	return decimal.NewNullDecimal(d), nil
}

// MarkerTable merges configured markers over the defaults.
func (s StatementConfig) MarkerTable() (statement.MarkerTable, error) {
	extra, err := statement.ParseMarkers(s.Markers)
	if err != nil {
		return nil, err
	}
	table := statement.DefaultMarkers()
	for k, v := range extra {
		table[k] = v
	}
	return table, nil
}

// Validate checks the values that are parsed lazily elsewhere.
func (c *Config) Validate() error {
	var errs []error
	if c.Statement.Year < 0 {
		errs = append(errs, fmt.Errorf("statement.year must not be negative, got %d", c.Statement.Year))
	}
	if _, err := c.Statement.ParsedPolicy(); err != nil {
		errs = append(errs, fmt.Errorf("statement.policy: %w", err))
	}
	if _, err := c.Statement.Opening(); err != nil {
		errs = append(errs, fmt.Errorf("statement.%w", err))
	}
	if _, err := c.Statement.MarkerTable(); err != nil {
		errs = append(errs, fmt.Errorf("statement.markers: %w", err))
	}
	if c.Analysis.MaxRecords < 0 {
		errs = append(errs, fmt.Errorf("analysis.max_records must not be negative, got %d", c.Analysis.MaxRecords))
	}
	return errors.Join(errs...)
}
