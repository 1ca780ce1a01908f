package model

import (
	"strconv"
	"strings"
)

// Class is a playable character class. Players are tagged with a class by an
// administrator; the board log itself carries no class information.
type Class struct {
	ID    int
	Name  string
	Short string
	Icon  string
}

// Classes lists every known class, ordered by ID.
var Classes = []Class{
	{0, "Warrior", "WR", "⚔️"},
	{1, "Mage", "MG", "🔥"},
	{2, "Psychic", "PSY", "🔮"},
	{3, "Druid", "DR", "🦊"},
	{4, "Werebeast", "WB", "🐯"},
	{5, "Assassin", "SIN", "🗡️"},
	{6, "Archer", "EA", "🏹"},
	{7, "Priest", "EP", "🪽"},
	{8, "Seeker", "SK", "👁️"},
	{9, "Mystic", "MS", "🌿"},
	{10, "Phantom", "DB", "🌑"},
	{11, "Reaper", "SB", "🌙"},
	{12, "Gunner", "GS", "🔫"},
	{13, "Paladin", "PAL", "🛡️"},
	{14, "Wanderer", "MY", "🐵"},
	{15, "Bard", "BRD", "🎵"},
	{16, "Bloodspirit", "VAMP", "🩸"},
}

// ClassByID returns the class with the given ID.
func ClassByID(id int) (Class, bool) {
	if id < 0 || id >= len(Classes) {
		return Class{}, false
	}
	return Classes[id], true
}

// LookupClass resolves a class from user input: a numeric ID, a short code,
// or a full name, case-insensitively.
func LookupClass(s string) (Class, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if id, err := strconv.Atoi(s); err == nil {
		return ClassByID(id)
	}
	for _, c := range Classes {
		if strings.ToLower(c.Short) == s || strings.ToLower(c.Name) == s {
			return c, true
		}
	}
	return Class{}, false
}
