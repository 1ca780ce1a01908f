package storage

import (
	"database/sql"

	"github.com/pwrequiem/go-board-archive/internal/model"
)

// Tx is a write transaction over the archive. All per-file ingestion writes
// go through one Tx so a crash mid-batch leaves prior commits intact.
type Tx struct {
	tx *sql.Tx
}

// EnsurePlayer inserts a player row if absent (in_clan defaults to 1).
// Reports whether a row was actually created; an existing row is untouched.
func (t *Tx) EnsurePlayer(roleID int64) (bool, error) {
	res, err := t.tx.Exec("INSERT OR IGNORE INTO players (role_id, in_clan) VALUES (?, 1)", roleID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SetMembership sets a player's in-clan flag unconditionally.
func (t *Tx) SetMembership(roleID int64, inClan bool) error {
	_, err := t.tx.Exec("UPDATE players SET in_clan = ? WHERE role_id = ?", boolInt(inClan), roleID)
	return err
}

// InsertEvent inserts an event; the UNIQUE(role_id, timestamp, event_type)
// constraint silently drops duplicates. Reports whether a row was inserted.
func (t *Tx) InsertEvent(e model.Event) (bool, error) {
	res, err := t.tx.Exec(`
		INSERT INTO events (role_id, timestamp, event_date, event_type, value, raw_desc)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.RoleID, e.Timestamp, e.Date, e.Type, e.Value, e.Desc,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Commit commits the transaction.
func (t *Tx) Commit() error { return t.tx.Commit() }

// Rollback aborts the transaction; a no-op after Commit.
func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
