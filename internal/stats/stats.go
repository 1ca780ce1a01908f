// Package stats computes per-player activity counters from a contribution
// event history: gold/valor totals and the seven-stage valor classification
// with its paired-event ("dance") heuristic.
package stats

import (
	"sort"

	"github.com/pwrequiem/go-board-archive/internal/model"
)

// danceWindow is the maximum gap (exclusive, seconds) between the paired
// valor events of a single dance.
const danceWindow = 1200

// Event is one contribution event in a player's timeline.
type Event struct {
	Timestamp int64
	Value     int64
	Type      int
}

// Stats are the aggregate counters for one player.
type Stats struct {
	S1, S2, S3, S4, S5, S6, S7 int
	Adepts                     int
	Dances                     int
	TotalGold                  int64
	TotalValor                 int64
}

// Analyze scans one player's event history and fills the counters. The input
// is sorted in place by timestamp; malformed histories (empty, single event,
// duplicate timestamps) produce a valid, possibly all-zero, result.
//
// Valor values map to stages 1..7 (4, 6, 10, 14, 24, 40, 70) or adepts (7).
// A value-4 event whose immediate neighbor is the matching half of a pair
// (a 2 before it or an 8 after it, within the window) counts as one dance
// instead of stage 1; the pair halves themselves are never counted
// separately. The check is positional: only the adjacent slots in the
// sorted sequence are inspected, so clusters of three or more qualifying
// events may pair either way. That matches the game's observed behavior
// and is kept as-is.
func Analyze(events []Event) Stats {
	var s Stats

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})

	for i, ev := range events {
		if ev.Type == model.TypeGold {
			s.TotalGold += ev.Value
			continue
		}
		if ev.Type != model.TypeValor {
			continue
		}
		s.TotalValor += ev.Value

		switch ev.Value {
		case 4:
			if pairedDance(events, i) {
				s.Dances++
			} else {
				s.S1++
			}
		case 6:
			s.S2++
		case 10:
			s.S3++
		case 14:
			s.S4++
		case 24:
			s.S5++
		case 40:
			s.S6++
		case 70:
			s.S7++
		case 7:
			s.Adepts++
		case 2, 8:
			// Pair halves; the dance is counted at its value-4 event.
		}
	}
	return s
}

// pairedDance reports whether the value-4 event at index i forms a dance
// with its previous (valor 2) or next (valor 8) neighbor.
func pairedDance(events []Event, i int) bool {
	cur := events[i]
	if i > 0 {
		prev := events[i-1]
		if prev.Type == model.TypeValor && prev.Value == 2 && cur.Timestamp-prev.Timestamp < danceWindow {
			return true
		}
	}
	if i < len(events)-1 {
		next := events[i+1]
		if next.Type == model.TypeValor && next.Value == 8 && next.Timestamp-cur.Timestamp < danceWindow {
			return true
		}
	}
	return false
}
