package reconcile

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"mlb-affiliates-service/internal/domain/feeds"
)

var firstNumber = regexp.MustCompile(`\d+`)

// summaryRunners guesses occupancy from boxscore summary lines. It is coarse:
// runners left in scoring position put someone on 2B, a positive left-on-base
// count puts someone on 1B, and doubles or triples lines mark 2B or 3B.
// Only the batting side's lines are read when the side is known.
func summaryRunners(box *feeds.Boxscore, battingSide string) []string {
	if box == nil {
		return nil
	}
	items := append([]feeds.InfoItem(nil), box.Info...)
	sides := []string{feeds.SideHome, feeds.SideAway}
	if battingSide != "" {
		sides = []string{battingSide}
	}
	for _, side := range sides {
		for _, section := range box.Teams.Side(side).Info {
			items = append(items, section.FieldList...)
		}
	}

	occupied := make(map[string]struct{})
	for _, it := range items {
		label := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(it.Label), ":")))
		value := strings.TrimSpace(it.Value)
		if value == "" {
			continue
		}
		switch {
		case strings.Contains(label, "scoring position") || label == "risp" || label == "team risp":
			if n, ok := leadingCount(value); !ok || n > 0 {
				occupied["2B"] = struct{}{}
			}
		case label == "lob" || label == "team lob" || strings.Contains(label, "left on base"):
			if n, ok := leadingCount(value); ok && n > 0 {
				occupied["1B"] = struct{}{}
			}
		case label == "3b":
			occupied["3B"] = struct{}{}
		case label == "2b":
			occupied["2B"] = struct{}{}
		}
	}

	bases := make([]string, 0, len(occupied))
	for b := range occupied {
		bases = append(bases, b)
	}
	sort.Strings(bases)
	return bases
}

func leadingCount(value string) (int, bool) {
	m := firstNumber.FindString(value)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
