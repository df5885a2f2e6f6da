package reconcile

import (
	"strconv"

	"mlb-affiliates-service/internal/domain/feeds"
	"mlb-affiliates-service/internal/domain/games"
)

// inProgressInputs are the payloads available for one live game. plays is
// called at most once, and only when the live feed shows no runners.
type inProgressInputs struct {
	game  feeds.Game
	live  *feeds.LiveFeed
	box   *feeds.Boxscore
	plays func() *feeds.PlayByPlay
}

// liveState is the partial situation one source can vouch for.
type liveState struct {
	inning      Field[inningMark]
	outs        Field[int]
	pitcher     Field[string]
	batter      Field[string]
	battingSide Field[string]
}

func (s *liveState) fill(o liveState) {
	s.inning.Fill(o.inning)
	s.outs.Fill(o.outs)
	s.pitcher.Fill(o.pitcher)
	s.batter.Fill(o.batter)
	s.battingSide.Fill(o.battingSide)
}

// mergeStates folds partial states from most to least authoritative.
func mergeStates(states ...liveState) liveState {
	var merged liveState
	for _, s := range states {
		merged.fill(s)
	}
	correctHalf(&merged)
	return merged
}

func assembleInProgress(in inProgressInputs, parse StatusParser, unknown string) games.InProgressDetail {
	d := games.NewInProgressDetail(unknown)
	if in.game.Venue.Name != "" {
		d.Venue = in.game.Venue.Name
	}
	d.Score = scheduleScore(in.game)

	texts := []string{in.game.Status.DetailedState}
	if in.live != nil {
		texts = append(texts, in.live.GameData.Status.DetailedState)
	}
	state := mergeStates(
		fromLiveFeed(in.live),
		fromBoxscore(in.box),
		fromStatusText(parse, texts...),
	)

	if mark, ok := state.inning.Get(); ok {
		d.Inning = mark.String()
	}
	if outs, ok := state.outs.Get(); ok {
		d.Outs = strconv.Itoa(outs)
	}
	d.CurrentPitcher = state.pitcher.Or(unknown)
	d.Batter = state.batter.Or(unknown)

	runners, _ := resolveRunners(in, state)
	d.RunnersOnBase = runners
	return d
}

func fromLiveFeed(feed *feeds.LiveFeed) liveState {
	var s liveState
	if feed == nil || feed.LiveData.Linescore == nil {
		return s
	}
	ls := feed.LiveData.Linescore
	if ls.CurrentInning != nil && *ls.CurrentInning > 0 {
		s.inning.Offer(inningMark{Half: normalizeHalf(ls.InningHalf), Number: *ls.CurrentInning}, SourceLiveFeed)
	}
	if ls.Outs != nil && *ls.Outs >= 0 {
		s.outs.Offer(*ls.Outs, SourceLiveFeed)
	}
	if ls.Defense.Pitcher.Named() {
		s.pitcher.Offer(ls.Defense.Pitcher.FullName, SourceLiveFeed)
	}
	if ls.Offense.Batter.Named() {
		s.batter.Offer(ls.Offense.Batter.FullName, SourceLiveFeed)
	}
	return s
}

// fromBoxscore reads the flagged pitcher and batter. Inning and outs come
// from the pitcher's innings pitched; a pitcher with no outs yet yields neither.
func fromBoxscore(box *feeds.Boxscore) liveState {
	var s liveState
	if box == nil {
		return s
	}
	if p, _, ok := flaggedPlayer(box, func(st feeds.PlayerGameStatus) bool { return st.IsCurrentPitcher }); ok {
		if p.Person.FullName != "" {
			s.pitcher.Offer(p.Person.FullName, SourceBoxscore)
		}
		if ip, ok := ParseInningsPitched(p.Stats.Pitching.InningsPitched); ok && ip.TotalOuts() > 0 {
			s.inning.Offer(inningMark{Half: halfBottom, Number: ip.InningNumber()}, SourceBoxscore)
			s.outs.Offer(ip.OutsInInning(), SourceBoxscore)
		}
	}
	if p, side, ok := flaggedPlayer(box, func(st feeds.PlayerGameStatus) bool { return st.IsCurrentBatter }); ok {
		if p.Person.FullName != "" {
			s.batter.Offer(p.Person.FullName, SourceBoxscore)
		}
		s.battingSide.Offer(side, SourceBoxscore)
	}
	return s
}

// flaggedPlayer scans the home roster, then the away roster, in upstream order.
func flaggedPlayer(box *feeds.Boxscore, match func(feeds.PlayerGameStatus) bool) (feeds.BoxscorePlayer, string, bool) {
	for _, side := range []string{feeds.SideHome, feeds.SideAway} {
		for _, p := range box.Teams.Side(side).Players {
			if match(p.GameStatus) {
				return p, side, true
			}
		}
	}
	return feeds.BoxscorePlayer{}, "", false
}

func fromStatusText(parse StatusParser, texts ...string) liveState {
	var s liveState
	if parse == nil {
		return s
	}
	for _, text := range texts {
		if text == "" {
			continue
		}
		r, ok := parse(text)
		if !ok {
			continue
		}
		if r.Inning > 0 {
			s.inning.Offer(inningMark{Half: r.Half, Number: r.Inning}, SourceStatusText)
		}
		if r.HasOuts {
			s.outs.Offer(r.Outs, SourceStatusText)
		}
	}
	return s
}

// correctHalf rewrites the half inning to match the batting side. A half
// reported by the live feed is left alone.
func correctHalf(s *liveState) {
	side, ok := s.battingSide.Get()
	if !ok {
		return
	}
	mark, ok := s.inning.Get()
	if !ok {
		return
	}
	if s.inning.From() == SourceLiveFeed && mark.Half != "" {
		return
	}
	want := halfForBattingSide(side)
	if mark.Half == want {
		return
	}
	src := s.inning.From()
	mark.Half = want
	s.inning = Field[inningMark]{}
	s.inning.Offer(mark, src)
}

func halfForBattingSide(side string) string {
	if side == feeds.SideAway {
		return halfTop
	}
	return halfBottom
}

// battingSideOf prefers the flagged batter's side and falls back to the half inning.
func battingSideOf(s liveState) string {
	if side, ok := s.battingSide.Get(); ok {
		return side
	}
	if mark, ok := s.inning.Get(); ok {
		switch mark.Half {
		case halfTop:
			return feeds.SideAway
		case halfBottom:
			return feeds.SideHome
		}
	}
	return ""
}
