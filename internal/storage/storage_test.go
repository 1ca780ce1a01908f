package storage

import (
	"testing"

	"github.com/pwrequiem/go-board-archive/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mustApply(t *testing.T, db *DB, fn func(tx *Tx) error) {
	t.Helper()
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		t.Fatalf("tx: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestEnsurePlayerIdempotent(t *testing.T) {
	db := openMemDB(t)

	mustApply(t, db, func(tx *Tx) error {
		created, err := tx.EnsurePlayer(1024)
		if err != nil {
			return err
		}
		if !created {
			t.Error("first EnsurePlayer should create a row")
		}
		created, err = tx.EnsurePlayer(1024)
		if err != nil {
			return err
		}
		if created {
			t.Error("second EnsurePlayer should be a no-op")
		}
		return nil
	})

	p, err := db.GetPlayer(1024)
	if err != nil {
		t.Fatalf("GetPlayer: %v", err)
	}
	if p == nil {
		t.Fatal("player not found after insert")
	}
	if !p.InClan {
		t.Error("new players should default to in-clan")
	}
	if p.ClassID != -1 {
		t.Errorf("new players should default to class -1, got %d", p.ClassID)
	}
}

func TestInsertEventDedupeKey(t *testing.T) {
	db := openMemDB(t)

	e := model.Event{RoleID: 1, Timestamp: 1_700_000_000, Date: "2023-11-14 22:13:20", Type: model.TypeValor, Value: 40, Desc: "contribution (valor): 40"}

	mustApply(t, db, func(tx *Tx) error {
		if _, err := tx.EnsurePlayer(1); err != nil {
			return err
		}
		ins, err := tx.InsertEvent(e)
		if err != nil {
			return err
		}
		if !ins {
			t.Error("first insert should store a row")
		}

		// Same (role, timestamp, type) with a different description is a
		// silent no-op, not an update.
		dup := e
		dup.Desc = "different text"
		ins, err = tx.InsertEvent(dup)
		if err != nil {
			return err
		}
		if ins {
			t.Error("duplicate key should be ignored")
		}

		// Different type under the same role/timestamp is a new event.
		g := e
		g.Type = model.TypeGold
		ins, err = tx.InsertEvent(g)
		if err != nil {
			return err
		}
		if !ins {
			t.Error("distinct event type should insert")
		}
		return nil
	})

	n, err := db.EventCount()
	if err != nil {
		t.Fatalf("EventCount: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 events, got %d", n)
	}
}

func TestNicknameSetAndClear(t *testing.T) {
	db := openMemDB(t)
	mustApply(t, db, func(tx *Tx) error {
		_, err := tx.EnsurePlayer(7)
		return err
	})

	if err := db.SetNickname(7, "Shade"); err != nil {
		t.Fatalf("SetNickname: %v", err)
	}
	p, _ := db.GetPlayer(7)
	if p.DisplayName() != "Shade" {
		t.Errorf("want Shade, got %q", p.DisplayName())
	}

	// Empty string clears the nickname back to NULL and the fallback name.
	if err := db.SetNickname(7, ""); err != nil {
		t.Fatalf("clear nickname: %v", err)
	}
	p, _ = db.GetPlayer(7)
	if p.DisplayName() != "ID 7" {
		t.Errorf("want fallback ID 7, got %q", p.DisplayName())
	}
}

func TestContributionRowsRangeAndMembership(t *testing.T) {
	db := openMemDB(t)

	mustApply(t, db, func(tx *Tx) error {
		for _, rid := range []int64{1, 2, 3} {
			if _, err := tx.EnsurePlayer(rid); err != nil {
				return err
			}
		}
		events := []model.Event{
			{RoleID: 1, Timestamp: 100, Date: "2025-03-03 10:00:00", Type: model.TypeValor, Value: 40},
			{RoleID: 1, Timestamp: 200, Date: "2025-03-20 10:00:00", Type: model.TypeValor, Value: 70}, // outside range
			{RoleID: 1, Timestamp: 300, Date: "2025-03-04 10:00:00", Type: model.TypeJoin},             // non-contribution
			{RoleID: 2, Timestamp: 400, Date: "2025-03-05 10:00:00", Type: model.TypeGold, Value: 999},
		}
		for _, e := range events {
			if _, err := tx.InsertEvent(e); err != nil {
				return err
			}
		}
		// Player 2 has left the guild.
		return tx.SetMembership(2, false)
	})

	rows, err := db.ContributionRows("2025-03-01", "2025-03-07", nil)
	if err != nil {
		t.Fatalf("ContributionRows: %v", err)
	}

	var sawOut bool
	byRole := map[int64]int{}
	for _, r := range rows {
		if r.RoleID == 2 {
			sawOut = true
		}
		if r.HasEvent {
			byRole[r.RoleID]++
		}
	}
	if sawOut {
		t.Error("out-of-clan player should be excluded")
	}
	if byRole[1] != 1 {
		t.Errorf("player 1: want exactly 1 in-range contribution, got %d", byRole[1])
	}

	// Player 3 has no events but is in-clan: it must still appear, eventless.
	var sawThree bool
	for _, r := range rows {
		if r.RoleID == 3 {
			sawThree = true
			if r.HasEvent {
				t.Error("player 3 should have no events")
			}
			if r.Name != "ID 3" {
				t.Errorf("player 3 fallback name: got %q", r.Name)
			}
		}
	}
	if !sawThree {
		t.Error("eventless in-clan player missing from rows")
	}
}

func TestContributionRowsClassFilter(t *testing.T) {
	db := openMemDB(t)

	mustApply(t, db, func(tx *Tx) error {
		if _, err := tx.EnsurePlayer(1); err != nil {
			return err
		}
		_, err := tx.EnsurePlayer(2)
		return err
	})
	if err := db.SetClass(1, 4); err != nil {
		t.Fatal(err)
	}

	rows, err := db.ContributionRows("2025-01-01", "2025-12-31", []int{4})
	if err != nil {
		t.Fatalf("ContributionRows: %v", err)
	}
	if len(rows) != 1 || rows[0].RoleID != 1 {
		t.Errorf("class filter: expected only player 1, got %+v", rows)
	}
}

func TestHistoryRowsNewestFirst(t *testing.T) {
	db := openMemDB(t)

	mustApply(t, db, func(tx *Tx) error {
		if _, err := tx.EnsurePlayer(1); err != nil {
			return err
		}
		events := []model.Event{
			{RoleID: 1, Timestamp: 100, Date: "2025-03-03 10:00:00", Type: model.TypeJoin, Desc: "joined guild"},
			{RoleID: 1, Timestamp: 300, Date: "2025-03-05 10:00:00", Type: model.TypeLeave, Desc: "left guild"},
			{RoleID: 1, Timestamp: 200, Date: "2025-03-04 10:00:00", Type: model.TypeGold, Value: 10, Desc: "contribution (gold): 10"},
		}
		for _, e := range events {
			if _, err := tx.InsertEvent(e); err != nil {
				return err
			}
		}
		return nil
	})

	rows, err := db.HistoryRows("2025-03-01", "2025-03-07", nil)
	if err != nil {
		t.Fatalf("HistoryRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Desc != "left guild" {
		t.Errorf("expected newest first, got %q", rows[0].Desc)
	}
	if rows[0].Name != "ID 1" {
		t.Errorf("fallback name: got %q", rows[0].Name)
	}
}

func TestDailyContributionsAndLastUpdate(t *testing.T) {
	db := openMemDB(t)

	mustApply(t, db, func(tx *Tx) error {
		if _, err := tx.EnsurePlayer(1); err != nil {
			return err
		}
		events := []model.Event{
			{RoleID: 1, Timestamp: 100, Date: "2025-03-03 08:00:00", Type: model.TypeGold, Value: 500},
			{RoleID: 1, Timestamp: 200, Date: "2025-03-03 09:00:00", Type: model.TypeGold, Value: 250},
			{RoleID: 1, Timestamp: 300, Date: "2025-03-03 10:00:00", Type: model.TypeValor, Value: 40},
			{RoleID: 1, Timestamp: 900, Date: "2025-03-04 10:00:00", Type: model.TypeValor, Value: 70},
		}
		for _, e := range events {
			if _, err := tx.InsertEvent(e); err != nil {
				return err
			}
		}
		return nil
	})

	rows, err := db.DailyContributions()
	if err != nil {
		t.Fatalf("DailyContributions: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 day rows, got %d", len(rows))
	}
	// Newest day first.
	if rows[0].Day != "2025-03-04" || rows[0].Valor != 70 {
		t.Errorf("row 0: got %+v", rows[0])
	}
	if rows[1].Day != "2025-03-03" || rows[1].Gold != 750 || rows[1].Valor != 40 {
		t.Errorf("row 1: got %+v", rows[1])
	}
	if rows[0].Nickname != "Unknown ID" {
		t.Errorf("export fallback name: got %q", rows[0].Nickname)
	}

	last, err := db.LastUpdate()
	if err != nil {
		t.Fatalf("LastUpdate: %v", err)
	}
	if last != 900 {
		t.Errorf("LastUpdate: want 900, got %d", last)
	}
}

func TestLastUpdateEmpty(t *testing.T) {
	db := openMemDB(t)
	last, err := db.LastUpdate()
	if err != nil {
		t.Fatalf("LastUpdate: %v", err)
	}
	if last != 0 {
		t.Errorf("empty archive: want 0, got %d", last)
	}
}
