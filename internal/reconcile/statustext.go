package reconcile

import (
	"regexp"
	"strconv"
)

var (
	halfInningPattern = regexp.MustCompile(`(?i)(top|bottom)\s*(\d+)`)
	outsPattern       = regexp.MustCompile(`(?i)(\d+)\s*out`)
)

// StatusReading is what a status phrase reveals. Zero Inning means no inning was found.
type StatusReading struct {
	Half    string
	Inning  int
	Outs    int
	HasOuts bool
}

// StatusParser reads inning and outs out of a human readable status phrase.
type StatusParser func(text string) (StatusReading, bool)

// ParseStatusText matches "Top 5th, 2 Out" style phrases.
func ParseStatusText(text string) (StatusReading, bool) {
	var r StatusReading
	if m := halfInningPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[2]); err == nil {
			r.Half = normalizeHalf(m[1])
			r.Inning = n
		}
	}
	if m := outsPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			r.Outs = n
			r.HasOuts = true
		}
	}
	return r, r.Inning > 0 || r.HasOuts
}
