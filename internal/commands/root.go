package commands

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/stmtledger/internal/buildinfo"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose bool
	dir     string
}

// logger returns the CLI logger writing to stderr. --verbose switches to
// debug level.
func (g *globalFlags) logger() *log.Logger {
	level := log.InfoLevel
	if g.verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: g.verbose,
		Prefix:          "stmtledger",
	})
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "stmtledger",
		Short:   "Turn bank statements into a categorized ledger",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log per-line decisions")
	rootCmd.PersistentFlags().StringVar(&g.dir, "dir", ".", "project directory holding stmtledger.yaml")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newParseCommand(g))
	rootCmd.AddCommand(newReportCommand(g))
	rootCmd.AddCommand(newAnalyzeCommand(g))

	return rootCmd
}
