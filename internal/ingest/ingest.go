// Package ingest reconciles decoded board entries against the archive:
// player rows are created on first sight, membership is re-derived from
// event text, and events are inserted under the (role, timestamp, type)
// dedupe key so re-uploading overlapping files is safe.
package ingest

import (
	"fmt"
	"strings"

	"github.com/pwrequiem/go-board-archive/internal/model"
	"github.com/pwrequiem/go-board-archive/internal/storage"
)

// Keywords are the lower-cased description markers that drive membership
// transitions. The exact strings are a localized-content detail of the game
// client, so they are a parameter rather than a constant.
type Keywords struct {
	Leave []string
	Join  []string
}

// DefaultKeywords matches the English board descriptions.
func DefaultKeywords() Keywords {
	return Keywords{
		Leave: []string{"left", "expelled", "departed"},
		Join:  []string{"accepted", "joined"},
	}
}

// Result reports what one batch changed.
type Result struct {
	Parsed     int
	NewPlayers int
	NewEvents  int
}

// Reconciler applies decoded batches to the archive.
type Reconciler struct {
	db *storage.DB
	kw Keywords
}

// New returns a Reconciler writing to db. Zero-valued keyword sets fall back
// to the defaults.
func New(db *storage.DB, kw Keywords) *Reconciler {
	if len(kw.Leave) == 0 && len(kw.Join) == 0 {
		kw = DefaultKeywords()
	}
	return &Reconciler{db: db, kw: kw}
}

// Apply reconciles one file's entries in batch order within a single
// transaction. Entries are applied as given; when several events touch the
// same player's membership, the last one applied wins. An empty batch is a
// no-op, not an error.
func (r *Reconciler) Apply(entries []model.Entry) (Result, error) {
	res := Result{Parsed: len(entries)}
	if len(entries) == 0 {
		return res, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return res, err
	}
	defer tx.Rollback()

	for _, e := range entries {
		created, err := tx.EnsurePlayer(e.RoleID)
		if err != nil {
			return res, fmt.Errorf("ensure player %d: %w", e.RoleID, err)
		}
		if created {
			res.NewPlayers++
		}

		desc := strings.ToLower(e.Description)
		switch {
		case containsAny(desc, r.kw.Leave):
			if err := tx.SetMembership(e.RoleID, false); err != nil {
				return res, fmt.Errorf("set membership %d: %w", e.RoleID, err)
			}
		case e.Type == model.TypeValor || e.Type == model.TypeGold || containsAny(desc, r.kw.Join):
			if err := tx.SetMembership(e.RoleID, true); err != nil {
				return res, fmt.Errorf("set membership %d: %w", e.RoleID, err)
			}
		}

		inserted, err := tx.InsertEvent(model.Event{
			RoleID:    e.RoleID,
			Timestamp: e.Timestamp,
			Date:      e.Date,
			Type:      e.Type,
			Value:     e.Value,
			Desc:      e.Description,
		})
		if err != nil {
			return res, fmt.Errorf("insert event %d/%d: %w", e.RoleID, e.Timestamp, err)
		}
		if inserted {
			res.NewEvents++
		}
	}

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("commit batch: %w", err)
	}
	return res, nil
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(s, m) {
			return true
		}
	}
	return false
}
