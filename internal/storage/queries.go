package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pwrequiem/go-board-archive/internal/model"
)

// PlayerExists reports whether a player row exists for roleID.
func (db *DB) PlayerExists(roleID int64) (bool, error) {
	var one int
	err := db.conn.QueryRow("SELECT 1 FROM players WHERE role_id = ?", roleID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetPlayer returns the player with the given roleID, or nil if unknown.
func (db *DB) GetPlayer(roleID int64) (*model.Player, error) {
	var p model.Player
	var nick sql.NullString
	var inClan int
	err := db.conn.QueryRow(`
		SELECT role_id, nickname, first_seen, in_clan, class_id
		FROM players WHERE role_id = ?`, roleID).
		Scan(&p.RoleID, &nick, &p.FirstSeen, &inClan, &p.ClassID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Nickname = nick.String
	p.InClan = inClan != 0
	return &p, nil
}

// ListPlayers returns all tracked players ordered by role ID.
func (db *DB) ListPlayers() ([]model.Player, error) {
	rows, err := db.conn.Query(`
		SELECT role_id, nickname, first_seen, in_clan, class_id
		FROM players ORDER BY role_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Player
	for rows.Next() {
		var p model.Player
		var nick sql.NullString
		var inClan int
		if err := rows.Scan(&p.RoleID, &nick, &p.FirstSeen, &inClan, &p.ClassID); err != nil {
			return nil, err
		}
		p.Nickname = nick.String
		p.InClan = inClan != 0
		out = append(out, p)
	}
	return out, rows.Err()
}

// SetNickname sets (or, for an empty string, clears) a player's nickname.
func (db *DB) SetNickname(roleID int64, nick string) error {
	if nick == "" {
		_, err := db.conn.Exec("UPDATE players SET nickname = NULL WHERE role_id = ?", roleID)
		return err
	}
	_, err := db.conn.Exec("UPDATE players SET nickname = ? WHERE role_id = ?", nick, roleID)
	return err
}

// SetClass assigns a class ID to a player (-1 clears it).
func (db *DB) SetClass(roleID int64, classID int) error {
	_, err := db.conn.Exec("UPDATE players SET class_id = ? WHERE role_id = ?", classID, roleID)
	return err
}

// ContributionRow is one in-clan player's contribution event within a date
// range. Players with no events in range still produce one row with
// HasEvent unset, so they appear on the board with zero totals.
type ContributionRow struct {
	RoleID    int64
	Name      string
	ClassID   int
	HasEvent  bool
	Timestamp int64
	Value     int64
	Type      int
}

// ContributionRows returns contribution events (valor and gold) for in-clan
// players between start and end (inclusive, YYYY-MM-DD), optionally
// restricted to a set of class IDs.
func (db *DB) ContributionRows(start, end string, classes []int) ([]ContributionRow, error) {
	q := `
		SELECT
			p.role_id,
			COALESCE(p.nickname, 'ID ' || p.role_id),
			p.class_id,
			e.timestamp,
			e.value,
			e.event_type
		FROM players p
		LEFT JOIN events e ON p.role_id = e.role_id
			AND e.event_type IN (?, ?)
			AND substr(e.event_date, 1, 10) >= ?
			AND substr(e.event_date, 1, 10) <= ?
		WHERE p.in_clan = 1`
	args := []any{model.TypeValor, model.TypeGold, start, end}

	if len(classes) > 0 {
		q += " AND p.class_id IN (" + placeholders(len(classes)) + ")"
		for _, c := range classes {
			args = append(args, c)
		}
	}

	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ContributionRow
	for rows.Next() {
		var r ContributionRow
		var ts, val, typ sql.NullInt64
		if err := rows.Scan(&r.RoleID, &r.Name, &r.ClassID, &ts, &val, &typ); err != nil {
			return nil, err
		}
		if ts.Valid {
			r.HasEvent = true
			r.Timestamp = ts.Int64
			r.Value = val.Int64
			r.Type = int(typ.Int64)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// HistoryRow is one event in the full activity history view.
type HistoryRow struct {
	Date    string
	Name    string
	ClassID int // -1 when the player is unknown or unassigned
	Desc    string
	Type    int
	RoleID  int64
}

// HistoryRows returns all events between start and end (inclusive,
// YYYY-MM-DD), newest first, optionally restricted to a set of class IDs.
func (db *DB) HistoryRows(start, end string, classes []int) ([]HistoryRow, error) {
	q := `
		SELECT
			e.event_date,
			COALESCE(p.nickname, 'ID ' || e.role_id),
			p.class_id,
			e.raw_desc,
			e.event_type,
			e.role_id
		FROM events e
		LEFT JOIN players p ON e.role_id = p.role_id
		WHERE substr(e.event_date, 1, 10) >= ?
		  AND substr(e.event_date, 1, 10) <= ?`
	args := []any{start, end}

	if len(classes) > 0 {
		q += " AND p.class_id IN (" + placeholders(len(classes)) + ")"
		for _, c := range classes {
			args = append(args, c)
		}
	}
	q += " ORDER BY e.timestamp DESC"

	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var r HistoryRow
		var classID sql.NullInt64
		if err := rows.Scan(&r.Date, &r.Name, &classID, &r.Desc, &r.Type, &r.RoleID); err != nil {
			return nil, err
		}
		r.ClassID = -1
		if classID.Valid {
			r.ClassID = int(classID.Int64)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DailyRow is a per-player per-day contribution total.
type DailyRow struct {
	RoleID   int64
	Nickname string
	Day      string
	Gold     int64
	Valor    int64
}

// DailyContributions returns per-player per-day gold/valor sums across the
// whole archive, ordered by day (newest first) then gold.
func (db *DB) DailyContributions() ([]DailyRow, error) {
	rows, err := db.conn.Query(fmt.Sprintf(`
		SELECT
			e.role_id,
			COALESCE(p.nickname, 'Unknown ID'),
			substr(e.event_date, 1, 10) AS day,
			SUM(CASE WHEN e.event_type = %d THEN e.value ELSE 0 END) AS gold,
			SUM(CASE WHEN e.event_type = %d THEN e.value ELSE 0 END) AS valor
		FROM events e
		LEFT JOIN players p ON e.role_id = p.role_id
		WHERE e.event_type IN (%d, %d)
		GROUP BY e.role_id, day
		ORDER BY day DESC, gold DESC`,
		model.TypeGold, model.TypeValor, model.TypeValor, model.TypeGold))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DailyRow
	for rows.Next() {
		var r DailyRow
		if err := rows.Scan(&r.RoleID, &r.Nickname, &r.Day, &r.Gold, &r.Valor); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LastUpdate returns the newest event timestamp in the archive, or 0 when
// the archive is empty.
func (db *DB) LastUpdate() (int64, error) {
	var ts sql.NullInt64
	if err := db.conn.QueryRow("SELECT MAX(timestamp) FROM events").Scan(&ts); err != nil {
		return 0, err
	}
	return ts.Int64, nil
}

// EventCount returns the total number of stored events.
func (db *DB) EventCount() (int, error) {
	var n int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM events").Scan(&n)
	return n, err
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
