package reconcile

import (
	"strconv"
	"strings"
)

// InningsPitched is a pitcher's workload written as <full>.<partial outs>.
type InningsPitched struct {
	Full    int
	Partial int
}

// ParseInningsPitched parses "5", "5.0", "2.2". The partial part must be 0, 1 or 2.
func ParseInningsPitched(raw string) (InningsPitched, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return InningsPitched{}, false
	}
	whole, frac, hasFrac := strings.Cut(raw, ".")
	full, err := strconv.Atoi(whole)
	if err != nil || full < 0 {
		return InningsPitched{}, false
	}
	ip := InningsPitched{Full: full}
	if hasFrac {
		partial, err := strconv.Atoi(frac)
		if err != nil || partial < 0 || partial > 2 {
			return InningsPitched{}, false
		}
		ip.Partial = partial
	}
	return ip, true
}

// TotalOuts is the number of outs recorded.
func (ip InningsPitched) TotalOuts() int {
	return ip.Full*3 + ip.Partial
}

// OutsInInning is the out count of the inning in progress.
func (ip InningsPitched) OutsInInning() int {
	return ip.TotalOuts() % 3
}

// InningNumber is the inning in progress.
func (ip InningsPitched) InningNumber() int {
	return ip.TotalOuts()/3 + 1
}

// inningMark is an inning number with an optional half.
type inningMark struct {
	Half   string
	Number int
}

func (m inningMark) String() string {
	if m.Half == "" {
		return strconv.Itoa(m.Number)
	}
	return m.Half + " " + strconv.Itoa(m.Number)
}

const (
	halfTop    = "Top"
	halfBottom = "Bottom"
)

// normalizeHalf title-cases top/bottom and passes anything else through trimmed.
func normalizeHalf(raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.EqualFold(raw, halfTop):
		return halfTop
	case strings.EqualFold(raw, halfBottom):
		return halfBottom
	default:
		return raw
	}
}
