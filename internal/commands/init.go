package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/stmtledger/internal/categorizer"
	"github.com/cleared-dev/stmtledger/internal/config"
	"github.com/cleared-dev/stmtledger/internal/model"
	"github.com/cleared-dev/stmtledger/internal/statement"
)

func newInitCommand() *cobra.Command {
	var year int
	var policy string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new stmtledger project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, year, policy)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "statement year (0 uses the current year at parse time)")
	cmd.Flags().StringVar(&policy, "policy", string(statement.PolicyExplicitMarker), "direction policy: explicit-marker or balance-delta")

	return cmd
}

func runInit(out io.Writer, dir string, year int, policy string) error {
	p, err := statement.ParsePolicy(policy)
	if err != nil {
		return err
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	dirs := []string{"rules", "logs", "output", "statements"}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default()
	cfg.Statement.Year = year
	cfg.Statement.Policy = string(p)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// The default table is written out so it can be edited in place.
	rules := categorizer.RulesFile{Rules: categorizer.DefaultRules(), Fallback: model.CategoryOther}
	if err := categorizer.Save(filepath.Join(dir, cfg.Categorization.RulesFile), rules); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}

	gitignore := "output/\nlogs/\nstatements/\n.env\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "statements", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	fmt.Fprintf(out, "Initialized stmtledger project at %s\n", dir)
	return nil
}
