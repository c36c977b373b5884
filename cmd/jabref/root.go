package jabref

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON          bool
	flagCSV           bool
	flagTable         bool
	flagNoColor       bool
	flagNoCache       bool
	flagNoUpdateCheck bool
	flagSelfUpdate    bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the jabref CLI.
var rootCmd = &cobra.Command{
	Use:           "jabref",
	Short:         "Check the integrity of your BibTeX library",
	Long:          "jabref parses a BibTeX library, runs integrity checks on every entry and reports the problems in an interactive dialog or on stdout.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the jabref CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagCSV, "csv", false, "emit CSV")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "force plain table output even on a TTY")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the check-result cache")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	rootCmd.PersistentFlags().BoolVar(&flagSelfUpdate, "self-update", false, "update jabref to the latest release")
}
