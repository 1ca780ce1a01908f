package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pwrequiem/go-board-archive/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the archive HTTP API (uploads, board JSON, metrics)",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: $BOARD_ARCHIVE_ADDR or :8080)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Optional .env in the working directory, same as the other deployments.
	_ = godotenv.Load()

	if v := os.Getenv("BOARD_ARCHIVE_DB"); v != "" && !cmd.Flag("db").Changed {
		dbPath = v
	}
	addr := serveAddr
	if addr == "" {
		addr = os.Getenv("BOARD_ARCHIVE_ADDR")
	}
	if addr == "" {
		addr = ":8080"
	}

	db, err := openArchive()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(os.Stdout, "Serving archive on %s (db: %s)\n", addr, dbPath)
	return server.New(db).Router().Run(addr)
}
