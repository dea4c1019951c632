package task

import (
	"time"

	"github.com/matzehuels/ganttline/pkg/timeline"
)

// DefaultBuffer is the number of days of padding added on each side of the
// overall range.
const DefaultBuffer = 7

// Span is a closed date interval.
type Span struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the inclusive number of calendar days the span covers.
func (s Span) Days() int {
	return timeline.Duration(timeline.StartOfDay(s.Start), timeline.StartOfDay(s.End))
}

// Truncate returns the span with both ends moved to midnight.
func (s Span) Truncate() Span {
	return Span{Start: timeline.StartOfDay(s.Start), End: timeline.StartOfDay(s.End)}
}

// Contains reports whether t falls within the span, inclusive.
func (s Span) Contains(t time.Time) bool {
	return !t.Before(s.Start) && !t.After(s.End)
}

// OverallRange is [OverallRangeAt] evaluated at the current time.
func OverallRange(forest Forest, buffer int) Span {
	return OverallRangeAt(forest, buffer, time.Now())
}

// OverallRangeAt returns the padded date range covering every task in
// forest at every depth, collapsed or not.
//
// The range runs from the earliest Start minus buffer days to the latest
// End plus buffer days. Starts and ends are compared independently, so an
// inverted task still contributes its raw values. Invalid dates are
// ignored; when one side has no valid value it borrows the other side's
// extreme. A forest with no valid dates at all, including an empty one,
// yields [now-buffer, now+buffer].
func OverallRangeAt(forest Forest, buffer int, now time.Time) Span {
	var minStart, maxEnd time.Time
	Walk(forest, func(it *Item, _ int) bool {
		if timeline.Valid(it.Start) && (!timeline.Valid(minStart) || it.Start.Before(minStart)) {
			minStart = it.Start
		}
		if timeline.Valid(it.End) && (!timeline.Valid(maxEnd) || it.End.After(maxEnd)) {
			maxEnd = it.End
		}
		return true
	})

	switch {
	case !timeline.Valid(minStart) && !timeline.Valid(maxEnd):
		minStart, maxEnd = now, now
	case !timeline.Valid(minStart):
		minStart = earliestEnd(forest)
	case !timeline.Valid(maxEnd):
		maxEnd = latestStart(forest)
	}

	return Span{
		Start: minStart.AddDate(0, 0, -buffer),
		End:   maxEnd.AddDate(0, 0, buffer),
	}
}

func earliestEnd(forest Forest) time.Time {
	var out time.Time
	Walk(forest, func(it *Item, _ int) bool {
		if timeline.Valid(it.End) && (!timeline.Valid(out) || it.End.Before(out)) {
			out = it.End
		}
		return true
	})
	return out
}

func latestStart(forest Forest) time.Time {
	var out time.Time
	Walk(forest, func(it *Item, _ int) bool {
		if timeline.Valid(it.Start) && (!timeline.Valid(out) || it.Start.After(out)) {
			out = it.Start
		}
		return true
	})
	return out
}
