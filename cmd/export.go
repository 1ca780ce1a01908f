package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export per-player per-day contribution sums as CSV",
	Long: `Writes one row per player per day with gold and valor totals, ordered by
day (newest first) then gold. Semicolon-delimited for spreadsheet import.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (default: stdout)")
}

func runExport(_ *cobra.Command, _ []string) error {
	db, err := openArchive()
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.DailyContributions()
	if err != nil {
		return fmt.Errorf("query contributions: %w", err)
	}

	var out io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	w.Comma = ';'
	if err := w.Write([]string{"role_id", "nickname", "day", "gold", "valor"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.FormatInt(r.RoleID, 10),
			r.Nickname,
			r.Day,
			strconv.FormatInt(r.Gold, 10),
			strconv.FormatInt(r.Valor, 10),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	if exportOut != "" {
		fmt.Fprintf(os.Stdout, "Wrote %d rows to %s\n", len(rows), exportOut)
	}
	return nil
}
