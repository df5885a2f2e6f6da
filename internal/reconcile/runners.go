package reconcile

import (
	"sort"
	"strings"

	"mlb-affiliates-service/internal/domain/feeds"
)

// resolveRunners walks the runner tiers: live feed occupants, play-by-play
// inference for the current inning, then the boxscore summary heuristic.
// A tier runs only when the one above found nobody on base.
func resolveRunners(in inProgressInputs, state liveState) ([]string, Source) {
	if bases := liveFeedRunners(in.live); len(bases) > 0 {
		return bases, SourceLiveFeed
	}
	if in.plays != nil {
		if pbp := in.plays(); pbp != nil {
			if bases := InferRunners(scopePlays(pbp.AllPlays, state.inning)); len(bases) > 0 {
				return bases, SourcePlayByPlay
			}
		}
	}
	if bases := summaryRunners(in.box, battingSideOf(state)); len(bases) > 0 {
		return bases, SourceBoxscoreSummary
	}
	return []string{}, SourceNone
}

func liveFeedRunners(feed *feeds.LiveFeed) []string {
	if feed == nil || feed.LiveData.Linescore == nil {
		return nil
	}
	off := feed.LiveData.Linescore.Offense
	var bases []string
	for _, b := range []struct {
		label string
		who   *feeds.Person
	}{{"1B", off.First}, {"2B", off.Second}, {"3B", off.Third}} {
		if b.who != nil && (b.who.ID != 0 || b.who.FullName != "") {
			bases = append(bases, b.label)
		}
	}
	return bases
}

// scopePlays keeps the plays of the current inning, and of the current half
// when it is known. Without a known inning the latest play decides both.
func scopePlays(plays []feeds.Play, current Field[inningMark]) []feeds.Play {
	if len(plays) == 0 {
		return nil
	}
	mark, _ := current.Get()
	inning, half := mark.Number, mark.Half
	if inning <= 0 {
		latest := plays[len(plays)-1].About
		inning, half = latest.Inning, playHalf(latest)
	}
	if half != halfTop && half != halfBottom {
		half = ""
		for i := len(plays) - 1; i >= 0; i-- {
			if plays[i].About.Inning == inning {
				half = playHalf(plays[i].About)
				break
			}
		}
	}

	var scoped []feeds.Play
	for _, p := range plays {
		if p.About.Inning != inning {
			continue
		}
		if half != "" && playHalf(p.About) != half {
			continue
		}
		scoped = append(scoped, p)
	}
	return scoped
}

func playHalf(about feeds.PlayAbout) string {
	if about.HalfInning != "" {
		return normalizeHalf(about.HalfInning)
	}
	if about.IsTopInning {
		return halfTop
	}
	return halfBottom
}

// InferRunners reports the bases occupied after the given plays of one half
// inning. Plays are walked newest first; every move off a base counts -1 for
// that base and every arrival on 1B, 2B or 3B counts +1, whoever the runner is.
// A base is occupied when its count is positive. The sums do not depend on the
// order the moves are visited in.
func InferRunners(plays []feeds.Play) []string {
	counts := make(map[string]int)
	for i := len(plays) - 1; i >= 0; i-- {
		for _, mv := range plays[i].Runners {
			start := baseLabel(mv.Movement.Start)
			end := baseLabel(mv.Movement.End)
			if mv.Movement.IsOut {
				end = ""
			}
			if start != "" && start == end {
				continue
			}
			if start != "" {
				counts[start]--
			}
			if end != "" {
				counts[end]++
			}
		}
	}

	bases := make([]string, 0, len(counts))
	for b, n := range counts {
		if n > 0 {
			bases = append(bases, b)
		}
	}
	sort.Strings(bases)
	return bases
}

// baseLabel returns 1B, 2B or 3B, and "" for home, "score" or anything unknown.
func baseLabel(raw string) string {
	switch b := strings.ToUpper(strings.TrimSpace(raw)); b {
	case "1B", "2B", "3B":
		return b
	default:
		return ""
	}
}
