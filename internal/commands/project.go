package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/stmtledger/internal/categorizer"
	"github.com/cleared-dev/stmtledger/internal/config"
	"github.com/cleared-dev/stmtledger/internal/export"
	"github.com/cleared-dev/stmtledger/internal/extract"
	"github.com/cleared-dev/stmtledger/internal/model"
	"github.com/cleared-dev/stmtledger/internal/runlog"
	"github.com/cleared-dev/stmtledger/internal/statement"
)

// statementFlags override the statement section of stmtledger.yaml.
type statementFlags struct {
	year    int
	policy  string
	opening string
}

func (f *statementFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.year, "year", 0, "year of the statement dates (default: config, then current year)")
	cmd.Flags().StringVar(&f.policy, "policy", "", "direction policy: explicit-marker or balance-delta")
	cmd.Flags().StringVar(&f.opening, "opening-balance", "", "balance before the first statement line")
}

// project is a loaded stmtledger.yaml plus the directory it lives in.
type project struct {
	dir    string
	cfg    *config.Config
	logger *log.Logger

	runLogMu sync.Mutex
}

func loadProject(g *globalFlags) (*project, error) {
	dir, err := filepath.Abs(g.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.LoadOrDefault(filepath.Join(dir, config.FileName))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.FileName, err)
	}
	return &project{dir: dir, cfg: cfg, logger: g.logger()}, nil
}

// path resolves rel against the project directory.
func (p *project) path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.dir, rel)
}

func (p *project) categorizer() (*categorizer.Categorizer, error) {
	path := p.path(p.cfg.Categorization.RulesFile)
	c, err := categorizer.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		p.logger.Debug("no rules file, using built-in rules", "path", path)
		return categorizer.Default(), nil
	}
	return c, err
}

// options merges flags over the config into parse options.
func (p *project) options(f statementFlags) (statement.Options, error) {
	sc := p.cfg.Statement
	if f.year != 0 {
		sc.Year = f.year
	}
	if f.policy != "" {
		sc.Policy = f.policy
	}
	if f.opening != "" {
		sc.OpeningBalance = f.opening
	}

	year := sc.Year
	if year == 0 {
		year = time.Now().Year()
	}
	policy, err := sc.ParsedPolicy()
	if err != nil {
		return statement.Options{}, err
	}
	opening, err := sc.Opening()
	if err != nil {
		return statement.Options{}, err
	}
	markers, err := sc.MarkerTable()
	if err != nil {
		return statement.Options{}, err
	}
	cat, err := p.categorizer()
	if err != nil {
		return statement.Options{}, err
	}

	return statement.Options{
		Year:           year,
		Policy:         policy,
		Markers:        markers,
		Categorizer:    cat,
		OpeningBalance: opening,
		Logger:         p.logger,
	}, nil
}

// parseDocument runs one document through the pipeline, records the run in
// the parse log and reports validation failures. An empty ledger is not an
// error here; callers decide.
func (p *project) parseDocument(path string, opts statement.Options) (*statement.Ledger, error) {
	l, err := statement.ParseDocument(path, extract.DefaultRegistry(), opts)
	if err != nil {
		return nil, err
	}
	p.logRun(l, path)
	for _, v := range statement.Validate(l) {
		p.logger.Warn("validation failed", "document", path, "check", v.Check, "line", v.Line, "detail", v.Description)
	}
	if l.Empty() {
		p.logger.Warn("no transactions found", "document", path)
	}
	return l, nil
}

func (p *project) logRun(l *statement.Ledger, document string) {
	if !p.cfg.RunLog.Enabled {
		return
	}
	p.runLogMu.Lock()
	defer p.runLogMu.Unlock()
	if err := runlog.Append(p.path(p.cfg.RunLog.Dir), runlog.FromLedger(l, document, time.Now())); err != nil {
		p.logger.Warn("failed to write parse log", "error", err)
	}
}

// loadRecords reads a ledger CSV written by "parse --format csv", or parses
// a statement document.
func (p *project) loadRecords(path string, f statementFlags) ([]model.TransactionRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening ledger: %w", err)
		}
		defer file.Close()
		records, err := export.ReadLedger(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("%s: %w", path, statement.ErrNoTransactionsFound)
		}
		return records, nil
	}

	opts, err := p.options(f)
	if err != nil {
		return nil, err
	}
	l, err := p.parseDocument(path, opts)
	if err != nil {
		return nil, err
	}
	if l.Empty() {
		return nil, fmt.Errorf("%s: %w", path, statement.ErrNoTransactionsFound)
	}
	return l.Records(), nil
}
