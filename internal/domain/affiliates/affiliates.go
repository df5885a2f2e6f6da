// Package affiliates turns an organization roster into the set of tracked teams.
package affiliates

import (
	"sort"
	"strings"

	"mlb-affiliates-service/internal/domain/feeds"
)

// UnknownLevel is reported when a record carries no level information at all.
const UnknownLevel = "Unknown"

// Affiliate is a tracked team with its display level.
type Affiliate struct {
	TeamID      int    `json:"team_id"`
	DisplayName string `json:"display_name"`
	Level       string `json:"level"`
}

// TrackedSet maps team id to affiliate. It is built once per request and only read afterwards.
type TrackedSet map[int]Affiliate

// Contains reports whether the team is tracked.
func (s TrackedSet) Contains(teamID int) bool {
	_, ok := s[teamID]
	return ok
}

// Get returns the affiliate for a team id.
func (s TrackedSet) Get(teamID int) (Affiliate, bool) {
	a, ok := s[teamID]
	return a, ok
}

// IDs returns the tracked team ids in ascending order.
func (s TrackedSet) IDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// LevelTable maps an upstream sport name to a short level label.
type LevelTable map[string]string

// DefaultLevelTable returns a fresh copy of the standard level labels.
func DefaultLevelTable() LevelTable {
	return LevelTable{
		"Major League Baseball": "MLB",
		"Triple-A":              "AAA",
		"Double-A":              "AA",
		"High-A":                "A+",
		"Single-A":              "A",
		"Rookie":                "R",
	}
}

// Resolver derives levels and builds tracked sets.
type Resolver struct {
	levels LevelTable
}

// NewResolver copies the given table; a nil table falls back to DefaultLevelTable.
func NewResolver(levels LevelTable) *Resolver {
	if levels == nil {
		levels = DefaultLevelTable()
	}
	copied := make(LevelTable, len(levels))
	for k, v := range levels {
		copied[k] = v
	}
	return &Resolver{levels: copied}
}

// Level resolves the display level: table lookup by sport name, then the
// sport abbreviation, then the raw sport name, then UnknownLevel.
func (r *Resolver) Level(sport feeds.Sport) string {
	if level, ok := r.levels[sport.Name]; ok {
		return level
	}
	if abbr := strings.TrimSpace(sport.Abbreviation); abbr != "" {
		return abbr
	}
	if name := strings.TrimSpace(sport.Name); name != "" {
		return name
	}
	return UnknownLevel
}

// Resolve builds the tracked set. The first record wins when a team id repeats.
func (r *Resolver) Resolve(records []feeds.AffiliateRecord) TrackedSet {
	set := make(TrackedSet, len(records))
	for _, rec := range records {
		if _, seen := set[rec.ID]; seen {
			continue
		}
		set[rec.ID] = Affiliate{
			TeamID:      rec.ID,
			DisplayName: rec.Name,
			Level:       r.Level(rec.Sport),
		}
	}
	return set
}

// SportIDs returns the distinct non-zero sport ids of the roster in ascending order.
func SportIDs(records []feeds.AffiliateRecord) []int {
	seen := make(map[int]struct{}, len(records))
	ids := make([]int, 0, len(records))
	for _, rec := range records {
		if rec.Sport.ID == 0 {
			continue
		}
		if _, ok := seen[rec.Sport.ID]; ok {
			continue
		}
		seen[rec.Sport.ID] = struct{}{}
		ids = append(ids, rec.Sport.ID)
	}
	sort.Ints(ids)
	return ids
}
