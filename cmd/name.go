package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var nameCmd = &cobra.Command{
	Use:   "name <roleID> <nickname>",
	Short: "Attach a nickname to a player ID",
	Args:  cobra.ExactArgs(2),
	RunE:  runName,
}

func runName(_ *cobra.Command, args []string) error {
	roleID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid role ID %q", args[0])
	}

	db, err := openArchive()
	if err != nil {
		return err
	}
	defer db.Close()

	exists, err := db.PlayerExists(roleID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("player %d not found; ingest some logs first", roleID)
	}

	if err := db.SetNickname(roleID, args[1]); err != nil {
		return fmt.Errorf("set nickname: %w", err)
	}
	fmt.Fprintf(os.Stdout, "ID %d is now known as %s\n", roleID, args[1])
	return nil
}
