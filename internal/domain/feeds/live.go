package feeds

// LiveFeed is the live game feed payload. Only the pieces read by the
// reconciler are modelled.
type LiveFeed struct {
	GamePk   int          `json:"gamePk"`
	GameData LiveGameData `json:"gameData"`
	LiveData LiveData     `json:"liveData"`
}

// LiveGameData carries the feed's own copy of the game status.
type LiveGameData struct {
	Status GameStatus `json:"status"`
}

// LiveData wraps the line score.
type LiveData struct {
	Linescore *Linescore `json:"linescore,omitempty"`
}

// Linescore is the in-game situation.
type Linescore struct {
	CurrentInning *int             `json:"currentInning,omitempty"`
	InningHalf    string           `json:"inningHalf,omitempty"`
	Outs          *int             `json:"outs,omitempty"`
	Offense       LinescoreOffense `json:"offense"`
	Defense       LinescoreDefense `json:"defense"`
}

// LinescoreOffense lists the batter and the base occupants.
type LinescoreOffense struct {
	Batter *Person `json:"batter,omitempty"`
	First  *Person `json:"first,omitempty"`
	Second *Person `json:"second,omitempty"`
	Third  *Person `json:"third,omitempty"`
}

// LinescoreDefense lists the pitcher on the mound.
type LinescoreDefense struct {
	Pitcher *Person `json:"pitcher,omitempty"`
}

// PlayByPlay is the play-by-play payload.
type PlayByPlay struct {
	AllPlays []Play `json:"allPlays"`
}

// Play is one plate appearance with its runner movements.
type Play struct {
	About   PlayAbout    `json:"about"`
	Runners []PlayRunner `json:"runners"`
}

// PlayAbout places a play in the game.
type PlayAbout struct {
	AtBatIndex  int    `json:"atBatIndex"`
	HalfInning  string `json:"halfInning"`
	IsTopInning bool   `json:"isTopInning"`
	Inning      int    `json:"inning"`
}

// PlayRunner is one runner movement within a play.
type PlayRunner struct {
	Movement RunnerMovement `json:"movement"`
	Details  RunnerDetails  `json:"details"`
}

// RunnerMovement describes where a runner started and ended. A null base is
// decoded as the empty string and means home plate.
type RunnerMovement struct {
	Start string `json:"start"`
	End   string `json:"end"`
	IsOut bool   `json:"isOut"`
}

// RunnerDetails identifies the runner.
type RunnerDetails struct {
	Runner Person `json:"runner"`
}
