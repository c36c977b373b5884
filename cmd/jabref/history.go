package jabref

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/diegomarinho/jabref/internal/audit"
)

var flagHistoryLimit int

func init() {
	cmd := &cobra.Command{
		Use:   "history [library.bib]",
		Short: "Show past check runs for a library",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "show at most this many runs")
}

func runHistory(_ *cobra.Command, args []string) error {
	library, err := resolveLibrary(args)
	if err != nil {
		return err
	}
	abs, _ := filepath.Abs(library)

	records, err := audit.NewLog(abs).LoadHistory()
	if err != nil {
		return fmt.Errorf("no check history for %s yet", library)
	}
	if flagHistoryLimit > 0 && len(records) > flagHistoryLimit {
		records = records[:flagHistoryLimit]
	}
	for _, r := range records {
		fmt.Fprintf(os.Stdout, "%s  %-20s %3d problems  (%s)\n",
			r.Timestamp.Format("2006-01-02 15:04"), r.Library, r.TotalProblems, r.Duration)
	}
	return nil
}
