package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pwrequiem/go-board-archive/internal/board"
	"github.com/pwrequiem/go-board-archive/internal/ingest"
	"github.com/pwrequiem/go-board-archive/internal/report"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Decode board log files and merge them into the archive",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	db, err := openArchive()
	if err != nil {
		return err
	}
	defer db.Close()

	rec := ingest.New(db, ingest.Keywords{})
	for _, path := range args {
		entries, err := board.ParseFile(path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		res, err := rec.Apply(entries)
		if err != nil {
			return fmt.Errorf("ingest %s: %w", path, err)
		}
		fmt.Fprintf(os.Stdout, "%s: ", path)
		report.PrintImportSummary(os.Stdout, res)
	}
	return nil
}
