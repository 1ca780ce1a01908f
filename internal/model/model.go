package model

import "fmt"

// Board event type codes, as written by the game client.
const (
	TypeItem    = 0
	TypeValor   = 1
	TypeGold    = 2
	TypeInvite  = 5
	TypeJoin    = 6
	TypeDecline = 7
	TypeLeave   = 8
	TypeRank    = 9
	TypeExpel   = 10
)

// Entry is one decoded and classified board record.
type Entry struct {
	Date        string // local wall-clock display date
	Timestamp   int64  // unix seconds
	RoleID      int64
	Type        int
	Description string
	Value       int64 // canonical quantity (param0)
	RawParams   [3]int32
}

// Event is a persisted board event. (RoleID, Timestamp, Type) is the
// deduplication identity.
type Event struct {
	RoleID    int64
	Timestamp int64
	Date      string
	Type      int
	Value     int64
	Desc      string
}

// Player is a tracked guild member, created the first time any event
// references its role ID.
type Player struct {
	RoleID    int64
	Nickname  string // empty when unset
	FirstSeen string
	InClan    bool
	ClassID   int // -1 when unassigned
}

// FallbackName is the display name for players with no nickname set.
func FallbackName(roleID int64) string {
	return fmt.Sprintf("ID %d", roleID)
}

// DisplayName returns the nickname, or the "ID <roleID>" fallback.
func (p Player) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	return FallbackName(p.RoleID)
}
