package ingest

import (
	"testing"

	"github.com/pwrequiem/go-board-archive/internal/model"
	"github.com/pwrequiem/go-board-archive/internal/storage"
)

func openMemDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func entry(rid, ts int64, typ int, val int64, desc string) model.Entry {
	return model.Entry{
		RoleID:      rid,
		Timestamp:   ts,
		Date:        "2025-03-03 10:00:00",
		Type:        typ,
		Value:       val,
		Description: desc,
	}
}

func TestApplyCountsAndIdempotency(t *testing.T) {
	db := openMemDB(t)
	rec := New(db, Keywords{})

	batch := []model.Entry{
		entry(1, 100, model.TypeValor, 40, "contribution (valor): 40"),
		entry(1, 200, model.TypeGold, 500, "contribution (gold): 500"),
		entry(2, 300, model.TypeJoin, 0, "joined guild"),
	}

	res, err := rec.Apply(batch)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Parsed != 3 || res.NewPlayers != 2 || res.NewEvents != 3 {
		t.Errorf("first pass: got %+v", res)
	}

	// Re-ingesting the same file changes nothing.
	res, err = rec.Apply(batch)
	if err != nil {
		t.Fatalf("Apply again: %v", err)
	}
	if res.NewPlayers != 0 || res.NewEvents != 0 {
		t.Errorf("second pass should be a no-op: got %+v", res)
	}

	n, err := db.EventCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("expected 3 persisted events, got %d", n)
	}
}

func TestApplyOverlappingBatches(t *testing.T) {
	db := openMemDB(t)
	rec := New(db, Keywords{})

	first := []model.Entry{
		entry(1, 100, model.TypeValor, 4, "contribution (valor): 4"),
		entry(1, 200, model.TypeValor, 8, "contribution (valor): 8"),
	}
	second := append([]model.Entry{
		entry(1, 300, model.TypeValor, 2, "contribution (valor): 2"),
	}, first...)

	if _, err := rec.Apply(first); err != nil {
		t.Fatal(err)
	}
	res, err := rec.Apply(second)
	if err != nil {
		t.Fatal(err)
	}
	if res.NewEvents != 1 {
		t.Errorf("overlap: want 1 new event, got %d", res.NewEvents)
	}
}

func TestMembershipLastEventWins(t *testing.T) {
	db := openMemDB(t)
	rec := New(db, Keywords{})

	batch := []model.Entry{
		entry(5, 100, model.TypeGold, 500, "contribution (gold): 500"),
		entry(5, 200, model.TypeLeave, 0, "left guild"),
	}
	if _, err := rec.Apply(batch); err != nil {
		t.Fatal(err)
	}
	p, err := db.GetPlayer(5)
	if err != nil {
		t.Fatal(err)
	}
	if p.InClan {
		t.Error("leave after contribution: player should be out of clan")
	}

	// Reversed order: the contribution is applied last and wins.
	db2 := openMemDB(t)
	rec2 := New(db2, Keywords{})
	reversed := []model.Entry{batch[1], batch[0]}
	if _, err := rec2.Apply(reversed); err != nil {
		t.Fatal(err)
	}
	p, err = db2.GetPlayer(5)
	if err != nil {
		t.Fatal(err)
	}
	if !p.InClan {
		t.Error("contribution after leave: player should be in clan")
	}
}

func TestMembershipKeywords(t *testing.T) {
	db := openMemDB(t)
	rec := New(db, Keywords{})

	// Expelled by another player: target 9 referenced only in an expel event.
	if _, err := rec.Apply([]model.Entry{
		entry(9, 100, model.TypeExpel, 9, "expelled 9"),
	}); err != nil {
		t.Fatal(err)
	}
	p, _ := db.GetPlayer(9)
	if p.InClan {
		t.Error("expelled player should be out of clan")
	}

	// A join marker brings them back.
	if _, err := rec.Apply([]model.Entry{
		entry(9, 200, model.TypeJoin, 0, "joined guild"),
	}); err != nil {
		t.Fatal(err)
	}
	p, _ = db.GetPlayer(9)
	if !p.InClan {
		t.Error("joined player should be in clan")
	}

	// Neutral events leave the state untouched.
	if _, err := rec.Apply([]model.Entry{
		entry(9, 300, model.TypeItem, 55, "received item 55"),
	}); err != nil {
		t.Fatal(err)
	}
	p, _ = db.GetPlayer(9)
	if !p.InClan {
		t.Error("neutral event must not change membership")
	}
}

func TestCustomKeywords(t *testing.T) {
	db := openMemDB(t)
	rec := New(db, Keywords{Leave: []string{"verlassen"}, Join: []string{"beigetreten"}})

	if _, err := rec.Apply([]model.Entry{
		entry(3, 100, model.TypeLeave, 0, "gilde verlassen"),
	}); err != nil {
		t.Fatal(err)
	}
	p, _ := db.GetPlayer(3)
	if p.InClan {
		t.Error("localized leave marker should transition out of clan")
	}
}

func TestApplyEmptyBatch(t *testing.T) {
	db := openMemDB(t)
	rec := New(db, Keywords{})

	res, err := rec.Apply(nil)
	if err != nil {
		t.Fatalf("empty batch should not error: %v", err)
	}
	if res != (Result{}) {
		t.Errorf("empty batch should report zero counts: %+v", res)
	}
}
