package timeline

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Invalid is the sentinel returned for dates that could not be normalized.
var Invalid = time.Time{}

// layouts are tried in order when parsing date text. Zone-less layouts are
// interpreted in time.Local.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// Normalize converts a loosely typed date into a time.Time.
//
// Supported inputs are time.Time, *time.Time, date text in one of the
// layouts above, json.Number and integer or float Unix milliseconds.
// Anything else, including unparseable text, yields [Invalid].
func Normalize(v any) time.Time {
	switch d := v.(type) {
	case time.Time:
		return d
	case *time.Time:
		if d == nil {
			return Invalid
		}
		return *d
	case string:
		return Parse(d)
	case json.Number:
		if ms, err := d.Int64(); err == nil {
			return time.UnixMilli(ms)
		}
		if f, err := d.Float64(); err == nil {
			return fromMillis(f)
		}
		return Parse(string(d))
	case int:
		return time.UnixMilli(int64(d))
	case int64:
		return time.UnixMilli(d)
	case float64:
		return fromMillis(d)
	}
	return Invalid
}

// Parse parses date text using the supported layouts.
// It returns [Invalid] when no layout matches.
func Parse(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return Invalid
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return Invalid
}

// Encode writes t as text that [Parse] reads back to the same instant:
// "2006-01-02" for local midnight, "2006-01-02T15:04:05" for other whole
// seconds in time.Local and RFC 3339 with nanoseconds otherwise. Invalid
// dates encode as "".
func Encode(t time.Time) string {
	if !Valid(t) {
		return ""
	}
	if t.Location() != time.Local || t.Nanosecond() != 0 {
		return t.Format(time.RFC3339Nano)
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02T15:04:05")
}

func fromMillis(f float64) time.Time {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Invalid
	}
	return time.UnixMilli(int64(f))
}

// Valid reports whether t is a usable date (not the [Invalid] sentinel).
func Valid(t time.Time) bool {
	return !t.IsZero()
}

// StartOfDay truncates t to midnight in t's own location.
// Invalid dates stay invalid.
func StartOfDay(t time.Time) time.Time {
	if !Valid(t) {
		return Invalid
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays shifts t by n calendar days, keeping the wall-clock time.
func AddDays(t time.Time, n int) time.Time {
	if !Valid(t) {
		return Invalid
	}
	return t.AddDate(0, 0, n)
}

// StartOfWeek returns midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	if !Valid(day) {
		return Invalid
	}
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	if !Valid(t) {
		return Invalid
	}
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
