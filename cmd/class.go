package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pwrequiem/go-board-archive/internal/model"
)

var classCmd = &cobra.Command{
	Use:   "class <roleID> <class>",
	Short: "Attach a character class to a player ID",
	Long: `Accepts a class ID, short code, or full name.
Example: boardarchive class 1024 WB`,
	Args: cobra.ExactArgs(2),
	RunE: runClass,
}

func runClass(_ *cobra.Command, args []string) error {
	roleID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid role ID %q", args[0])
	}

	class, ok := model.LookupClass(args[1])
	if !ok {
		var shorts []string
		for _, c := range model.Classes {
			shorts = append(shorts, c.Short)
		}
		return fmt.Errorf("unknown class %q, available: %s", args[1], strings.Join(shorts, ", "))
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

	if err := db.SetClass(roleID, class.ID); err != nil {
		return fmt.Errorf("set class: %w", err)
	}
	fmt.Fprintf(os.Stdout, "ID %d class set to %s %s\n", roleID, class.Icon, class.Name)
	return nil
}
