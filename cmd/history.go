package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pwrequiem/go-board-archive/internal/report"
)

var (
	historyStart   string
	historyEnd     string
	historyClasses string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the raw event history for a date range, newest first",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyStart, "start", "", "range start (YYYY-MM-DD, default: Monday of this week)")
	historyCmd.Flags().StringVar(&historyEnd, "end", "", "range end (YYYY-MM-DD, default: today)")
	historyCmd.Flags().StringVar(&historyClasses, "classes", "", "comma-separated class filter (id, short code, or name)")
}

func runHistory(_ *cobra.Command, _ []string) error {
	db, err := openArchive()
	if err != nil {
		return err
	}
	defer db.Close()

	start, end := resolveRange(historyStart, historyEnd)
	classes, err := parseClasses(historyClasses)
	if err != nil {
		return err
	}

	rows, err := db.HistoryRows(start, end, classes)
	if err != nil {
		return fmt.Errorf("query history: %w", err)
	}
	report.PrintHistory(os.Stdout, rows)
	return nil
}
