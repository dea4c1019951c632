package timeline

import "time"

const day = 24 * time.Hour

// DaysBetween returns the number of whole days from from to to, truncated
// toward zero. The UTC offsets of both instants are folded in first so a
// daylight-saving transition between them does not lose or gain a day.
//
// The result is negative when to is before from and 0 when either side is
// invalid.
func DaysBetween(from, to time.Time) int {
	if !Valid(from) || !Valid(to) {
		return 0
	}
	_, fromOffset := from.Zone()
	_, toOffset := to.Zone()
	d := to.Sub(from) + time.Duration(toOffset-fromOffset)*time.Second
	return int(d / day)
}

// Duration returns the inclusive day count of a task running from start to
// end. Both arguments go through [Normalize] first.
//
// A same-day task lasts 1 day. An inverted range yields 0 or less and
// either side being invalid yields 0; callers treat non-positive durations
// as zero-width.
func Duration(start, end any) int {
	s, e := Normalize(start), Normalize(end)
	if !Valid(s) || !Valid(e) {
		return 0
	}
	return DaysBetween(s, e) + 1
}

// RangeBetween returns every calendar day from start to end inclusive,
// each truncated to midnight. The slice is empty when the truncated start
// falls after the truncated end, or when either side is invalid.
func RangeBetween(start, end time.Time) []time.Time {
	from, to := StartOfDay(start), StartOfDay(end)
	if !Valid(from) || !Valid(to) || from.After(to) {
		return nil
	}

	dates := make([]time.Time, 0, DaysBetween(from, to)+1)
	for cur := from; !cur.After(to); cur = cur.AddDate(0, 0, 1) {
		dates = append(dates, cur)
	}
	return dates
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Sunday || wd == time.Saturday
}

// IsSameDay reports whether t and ref fall on the same calendar day,
// evaluated in t's location.
func IsSameDay(t, ref time.Time) bool {
	if !Valid(t) || !Valid(ref) {
		return false
	}
	y1, m1, d1 := t.Date()
	y2, m2, d2 := ref.In(t.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsToday reports whether t falls on the current local calendar day.
// It reads the wall clock; use [IsSameDay] when a fixed reference instant
// is available.
func IsToday(t time.Time) bool {
	return IsSameDay(t, time.Now())
}
