// Package feeds holds the upstream payload shapes read by the schedule pipeline.
// Values are decoded as-is and only read afterwards; nothing here is mutated by the core.
package feeds

// AffiliatesResponse is the payload of the affiliate roster endpoint.
type AffiliatesResponse struct {
	Teams []AffiliateRecord `json:"teams"`
}

// AffiliateRecord is one team of a parent club's organization.
type AffiliateRecord struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Sport Sport  `json:"sport"`
}

// Sport describes the league level a team plays in.
type Sport struct {
	ID           int    `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// ScheduleResponse is the payload of the schedule endpoint.
type ScheduleResponse struct {
	Dates []ScheduleDay `json:"dates"`
}

// ScheduleDay groups the games of one calendar day.
type ScheduleDay struct {
	Date  string `json:"date"`
	Games []Game `json:"games"`
}

// Game is a single schedule entry.
type Game struct {
	GamePk    int        `json:"gamePk"`
	GameDate  string     `json:"gameDate"`
	Status    GameStatus `json:"status"`
	Teams     GameTeams  `json:"teams"`
	Venue     Venue      `json:"venue"`
	Decisions *Decisions `json:"decisions,omitempty"`
}

// GameStatus carries the coarse and the human readable status.
type GameStatus struct {
	AbstractGameState string `json:"abstractGameState"`
	DetailedState     string `json:"detailedState"`
}

// GameTeams holds both sides of a schedule entry.
type GameTeams struct {
	Home GameTeam `json:"home"`
	Away GameTeam `json:"away"`
}

// GameTeam is one side of a schedule entry.
type GameTeam struct {
	Team            TeamRef `json:"team"`
	Score           *int    `json:"score,omitempty"`
	ProbablePitcher *Person `json:"probablePitcher,omitempty"`
}

// ScoreOrZero returns the reported score, or zero when the upstream omitted it.
func (t GameTeam) ScoreOrZero() int {
	if t.Score == nil {
		return 0
	}
	return *t.Score
}

// TeamRef identifies a team.
type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Venue identifies a ballpark.
type Venue struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

// Person identifies a player.
type Person struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

// Named reports whether the person carries a usable display name.
func (p *Person) Named() bool {
	return p != nil && p.FullName != ""
}

// Decisions lists the pitchers of record embedded in a finished schedule entry.
type Decisions struct {
	Winner *Person `json:"winner,omitempty"`
	Loser  *Person `json:"loser,omitempty"`
	Save   *Person `json:"save,omitempty"`
}
