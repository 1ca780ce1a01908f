package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pwrequiem/go-board-archive/internal/model"
	"github.com/pwrequiem/go-board-archive/internal/report"
)

var (
	reportStart   string
	reportEnd     string
	reportClasses string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the contribution leaderboard for a date range",
	Long: `Ranks in-clan players by stage-7 completions, with total valor as the
tiebreak. Defaults to the current week (Monday through today).`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportStart, "start", "", "range start (YYYY-MM-DD, default: Monday of this week)")
	reportCmd.Flags().StringVar(&reportEnd, "end", "", "range end (YYYY-MM-DD, default: today)")
	reportCmd.Flags().StringVar(&reportClasses, "classes", "", "comma-separated class filter (id, short code, or name)")
}

func runReport(_ *cobra.Command, _ []string) error {
	db, err := openArchive()
	if err != nil {
		return err
	}
	defer db.Close()

	start, end := resolveRange(reportStart, reportEnd)
	classes, err := parseClasses(reportClasses)
	if err != nil {
		return err
	}

	rows, err := report.Leaderboard(db, start, end, classes)
	if err != nil {
		return fmt.Errorf("build leaderboard: %w", err)
	}
	lastUpdate, err := db.LastUpdate()
	if err != nil {
		return fmt.Errorf("query last update: %w", err)
	}

	report.PrintBoardHeader(os.Stdout, start, end, lastUpdate)
	report.PrintLeaderboard(os.Stdout, rows)
	return nil
}

func resolveRange(start, end string) (string, string) {
	defStart, defEnd := report.WeekRange(time.Now())
	if start == "" {
		start = defStart
	}
	if end == "" {
		end = defEnd
	}
	return start, end
}

func parseClasses(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, ok := model.LookupClass(part)
		if !ok {
			return nil, fmt.Errorf("unknown class %q (use id, short code, or name)", part)
		}
		out = append(out, c.ID)
	}
	return out, nil
}
