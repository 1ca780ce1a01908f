package report

import (
	"sort"
	"time"

	"github.com/pwrequiem/go-board-archive/internal/model"
	"github.com/pwrequiem/go-board-archive/internal/stats"
	"github.com/pwrequiem/go-board-archive/internal/storage"
)

// Row is one player on the contribution leaderboard.
type Row struct {
	RoleID     int64
	Name       string
	ClassID    int
	ClassName  string
	ClassShort string
	stats.Stats
}

// Leaderboard ranks in-clan players by contribution activity between start
// and end (inclusive, YYYY-MM-DD), optionally restricted to a class-ID set.
// Stage-7 completions are the primary ranking signal, total valor the
// tiebreak.
func Leaderboard(db *storage.DB, start, end string, classes []int) ([]Row, error) {
	rows, err := db.ContributionRows(start, end, classes)
	if err != nil {
		return nil, err
	}

	type group struct {
		row    Row
		events []stats.Event
	}
	byPlayer := make(map[int64]*group)
	var order []int64
	for _, r := range rows {
		g, ok := byPlayer[r.RoleID]
		if !ok {
			g = &group{row: Row{RoleID: r.RoleID, Name: r.Name, ClassID: r.ClassID}}
			if c, ok := model.ClassByID(r.ClassID); ok {
				g.row.ClassName = c.Name
				g.row.ClassShort = c.Short
			}
			byPlayer[r.RoleID] = g
			order = append(order, r.RoleID)
		}
		if r.HasEvent {
			g.events = append(g.events, stats.Event{
				Timestamp: r.Timestamp,
				Value:     r.Value,
				Type:      r.Type,
			})
		}
	}

	out := make([]Row, 0, len(order))
	for _, rid := range order {
		g := byPlayer[rid]
		g.row.Stats = stats.Analyze(g.events)
		out = append(out, g.row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].S7 != out[j].S7 {
			return out[i].S7 > out[j].S7
		}
		return out[i].TotalValor > out[j].TotalValor
	})
	return out, nil
}

// WeekRange returns the default report range: Monday of now's week through
// now, local time, as YYYY-MM-DD strings.
func WeekRange(now time.Time) (start, end string) {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	monday := now.AddDate(0, 0, -(weekday - 1))
	return monday.Format("2006-01-02"), now.Format("2006-01-02")
}
