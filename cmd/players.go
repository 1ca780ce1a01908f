package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pwrequiem/go-board-archive/internal/report"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List all tracked players",
	RunE:  runPlayers,
}

func runPlayers(_ *cobra.Command, _ []string) error {
	db, err := openArchive()
	if err != nil {
		return err
	}
	defer db.Close()

	players, err := db.ListPlayers()
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	report.PrintPlayers(os.Stdout, players)
	return nil
}
