package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pwrequiem/go-board-archive/internal/ingest"
	"github.com/pwrequiem/go-board-archive/internal/model"
	"github.com/pwrequiem/go-board-archive/internal/storage"
)

// PrintBoardHeader prints the report range and the freshest event timestamp
// (shown in UTC+3, the game server's wall clock).
func PrintBoardHeader(w io.Writer, start, end string, lastUpdate int64) {
	updated := "no data"
	if lastUpdate > 0 {
		updated = time.Unix(lastUpdate, 0).UTC().Add(3 * time.Hour).Format("02.01.2006 15:04") + " (UTC+3)"
	}
	fmt.Fprintf(w, "\nRange: %s — %s  |  Last update: %s\n\n", start, end, updated)
}

// PrintImportSummary prints the outcome of one file ingestion.
func PrintImportSummary(w io.Writer, res ingest.Result) {
	fmt.Fprintf(w, "Parsed: %d  |  New events: %d  |  New players: %d\n", res.Parsed, res.NewEvents, res.NewPlayers)
}

// PrintLeaderboard renders the ranked contribution table.
func PrintLeaderboard(w io.Writer, rows []Row) {
	table := newTable(w)
	table.Header("#", "NAME", "CLASS", "S1", "S2", "S3", "S4", "S5", "S6", "S7", "ADEPTS", "DANCES", "VALOR", "GOLD")

	for i, r := range rows {
		class := "—"
		if r.ClassShort != "" {
			class = r.ClassShort
		}
		table.Append(
			strconv.Itoa(i+1),
			r.Name,
			class,
			strconv.Itoa(r.S1),
			strconv.Itoa(r.S2),
			strconv.Itoa(r.S3),
			strconv.Itoa(r.S4),
			strconv.Itoa(r.S5),
			strconv.Itoa(r.S6),
			strconv.Itoa(r.S7),
			strconv.Itoa(r.Adepts),
			strconv.Itoa(r.Dances),
			strconv.FormatInt(r.TotalValor, 10),
			strconv.FormatInt(r.TotalGold, 10),
		)
	}
	table.Render()
}

// PrintHistory renders the raw event history, newest first.
func PrintHistory(w io.Writer, rows []storage.HistoryRow) {
	table := newTable(w)
	table.Header("DATE", "PLAYER", "CLASS", "EVENT", "ROLE_ID")

	for _, r := range rows {
		class := ""
		if c, ok := model.ClassByID(r.ClassID); ok {
			class = c.Short
		}
		table.Append(r.Date, r.Name, class, r.Desc, strconv.FormatInt(r.RoleID, 10))
	}
	table.Render()
}

// PrintPlayers renders the tracked-player roster.
func PrintPlayers(w io.Writer, players []model.Player) {
	table := newTable(w)
	table.Header("ROLE_ID", "NAME", "CLASS", "IN_CLAN", "FIRST_SEEN")

	for _, p := range players {
		class := "—"
		if c, ok := model.ClassByID(p.ClassID); ok {
			class = c.Short
		}
		inClan := "no"
		if p.InClan {
			inClan = "yes"
		}
		table.Append(strconv.FormatInt(p.RoleID, 10), p.DisplayName(), class, inClan, p.FirstSeen)
	}
	table.Render()
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}
