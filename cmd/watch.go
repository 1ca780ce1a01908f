package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pwrequiem/go-board-archive/internal/uploader"
	"github.com/pwrequiem/go-board-archive/internal/watcher"
)

var (
	watchConfig string
	watchDir    string
	watchServer string
	watchLog    string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a game log directory and upload settled board files",
	Long: `Monitors the game's FactionHistoryData directory and uploads every
FactionBoard file that has been untouched for five minutes, removing it
after the server confirms the upload. Configure via YAML file, BOARD_WATCH_*
environment variables, or flags.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchConfig, "config", "", "YAML config file")
	watchCmd.Flags().StringVar(&watchDir, "dir", "", "directory to watch (overrides config)")
	watchCmd.Flags().StringVar(&watchServer, "server", "", "archive server URL (overrides config)")
	watchCmd.Flags().StringVar(&watchLog, "log", "watcher.log", "log file path")
}

func runWatch(_ *cobra.Command, _ []string) error {
	if watchDir != "" {
		os.Setenv("BOARD_WATCH_DIR", watchDir)
	}
	if watchServer != "" {
		os.Setenv("BOARD_WATCH_SERVER_URL", watchServer)
	}

	cfg, err := watcher.LoadConfig(watchConfig)
	if err != nil {
		return fmt.Errorf("load watch config: %w", err)
	}

	logW := io.Writer(os.Stderr)
	if watchLog != "" {
		f, err := os.OpenFile(watchLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logW = io.MultiWriter(os.Stderr, f)
	}
	logger := log.New(logW, "", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := uploader.NewClient(cfg.ServerURL)
	err = watcher.New(*cfg, client, logger).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
