package board

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/pwrequiem/go-board-archive/internal/model"
)

const (
	// headerSize is the fixed file header (two int32s, from/to record ids).
	// It is skipped, not validated.
	headerSize = 8
	// recordSize is one fixed-layout record: seven little-endian int32s.
	recordSize = 28
	// minTimestamp filters out empty slots in the on-disk ring, which carry
	// near-epoch timestamps. Real entries start around September 2020.
	minTimestamp = 1_600_000_000
)

// ErrorDate is the display date for timestamps that cannot be represented
// as a local wall-clock time.
const ErrorDate = "Error Date"

// RawRecord is one undecoded board record in on-disk field order.
type RawRecord struct {
	Type      int32
	SubjectID int32
	Timestamp int32
	RoleID    int32
	P0        int32
	P1        int32
	P2        int32
}

// ParseFile reads and decodes the board file at path. A missing file yields
// an empty result, not an error.
func ParseFile(path string) ([]model.Entry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read board file: %w", err)
	}
	return Parse(data), nil
}

// Parse decodes raw board bytes into classified entries, newest first.
// A truncated trailing record is discarded silently.
func Parse(data []byte) []model.Entry {
	if len(data) <= headerSize {
		return nil
	}
	data = data[headerSize:]

	var entries []model.Entry
	for len(data) >= recordSize {
		rec := decodeRecord(data)
		data = data[recordSize:]

		if rec.Timestamp < minTimestamp {
			continue
		}

		desc, value := Classify(rec.Type, rec.P0, rec.P1, rec.P2)
		entries = append(entries, model.Entry{
			Date:        formatDate(int64(rec.Timestamp)),
			Timestamp:   int64(rec.Timestamp),
			RoleID:      int64(rec.RoleID),
			Type:        int(rec.Type),
			Description: desc,
			Value:       value,
			RawParams:   [3]int32{rec.P0, rec.P1, rec.P2},
		})
	}

	// Newest first for presentation and ingestion alike.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries
}

func decodeRecord(b []byte) RawRecord {
	f := func(i int) int32 {
		return int32(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return RawRecord{
		Type:      f(0),
		SubjectID: f(1),
		Timestamp: f(2),
		RoleID:    f(3),
		P0:        f(4),
		P1:        f(5),
		P2:        f(6),
	}
}

func formatDate(ts int64) string {
	t := time.Unix(ts, 0)
	if y := t.Year(); y < 1970 || y > 9999 {
		return ErrorDate
	}
	return t.Format("2006-01-02 15:04:05")
}
