package reconcile

// Source identifies where a reconciled value came from.
type Source int

const (
	SourceNone Source = iota
	SourceLiveFeed
	SourceBoxscore
	SourcePlayByPlay
	SourceStatusText
	SourceSchedule
	SourceBoxscoreSummary
)

func (s Source) String() string {
	switch s {
	case SourceLiveFeed:
		return "live_feed"
	case SourceBoxscore:
		return "boxscore"
	case SourcePlayByPlay:
		return "play_by_play"
	case SourceStatusText:
		return "status_text"
	case SourceSchedule:
		return "schedule"
	case SourceBoxscoreSummary:
		return "boxscore_summary"
	default:
		return "none"
	}
}

// Field is a value that keeps the first genuine offer it receives.
// Sources are folded from most to least authoritative, so a later offer
// never replaces an earlier one.
type Field[T any] struct {
	value  T
	source Source
	set    bool
}

// Offer stores v when nothing has been stored yet and reports whether it was kept.
func (f *Field[T]) Offer(v T, src Source) bool {
	if f.set {
		return false
	}
	f.value, f.source, f.set = v, src, true
	return true
}

// Fill takes other's value when f is still unset.
func (f *Field[T]) Fill(other Field[T]) {
	if other.set {
		f.Offer(other.value, other.source)
	}
}

// Get returns the value and whether one was offered.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set
}

// Or returns the value or def when unset.
func (f Field[T]) Or(def T) T {
	if !f.set {
		return def
	}
	return f.value
}

// Set reports whether a value was offered.
func (f Field[T]) Set() bool { return f.set }

// From reports the source of the stored value.
func (f Field[T]) From() Source { return f.source }
