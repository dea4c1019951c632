package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// DefaultPattern is the pattern used by [FormatDate] when none is given.
const DefaultPattern = "YYYY-MM-DD"

// InvalidText is what invalid dates format to.
const InvalidText = "Invalid Date"

// Formatter renders a date as display text.
type Formatter func(time.Time) string

// PatternFormatter returns a Formatter bound to pattern.
func PatternFormatter(pattern string) Formatter {
	return func(t time.Time) string { return FormatDate(t, pattern) }
}

// tokens are matched longest first at each position.
var tokens = []string{
	"YYYY", "YY",
	"MMMM", "MMM", "MM", "M",
	"DD", "D",
	"dddd", "ddd", "dd", "d",
	"HH", "H", "hh", "h",
	"mm", "m",
	"SSS", "ss", "s",
	"A", "a",
	"ZZ", "Z",
}

// FormatDate formats t with a Day.js-style pattern such as "YYYY-MM-DD" or
// "ddd, MMM D". Text inside square brackets is copied verbatim. A pattern
// with a '%' outside brackets is treated as strftime ("%Y-%m-%d") instead. An empty
// pattern means [DefaultPattern]; invalid dates format as [InvalidText].
func FormatDate(t time.Time, pattern string) string {
	if !Valid(t) {
		return InvalidText
	}
	if pattern == "" {
		pattern = DefaultPattern
	}
	if isStrftime(pattern) {
		return strftime.Format(pattern, t)
	}

	var b strings.Builder
	for i := 0; i < len(pattern); {
		if pattern[i] == '[' {
			if end := strings.IndexByte(pattern[i:], ']'); end > 0 {
				b.WriteString(pattern[i+1 : i+end])
				i += end + 1
				continue
			}
		}
		tok := matchToken(pattern[i:])
		if tok == "" {
			b.WriteByte(pattern[i])
			i++
			continue
		}
		b.WriteString(formatToken(t, tok))
		i += len(tok)
	}
	return b.String()
}

// isStrftime reports whether pattern has a '%' outside a bracketed literal.
func isStrftime(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '[':
			if end := strings.IndexByte(pattern[i:], ']'); end > 0 {
				i += end
			}
		case '%':
			return true
		}
	}
	return false
}

func matchToken(s string) string {
	for _, tok := range tokens {
		if strings.HasPrefix(s, tok) {
			return tok
		}
	}
	return ""
}

func formatToken(t time.Time, tok string) string {
	switch tok {
	case "YYYY":
		return fmt.Sprintf("%04d", t.Year())
	case "YY":
		return fmt.Sprintf("%02d", t.Year()%100)
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		return fmt.Sprintf("%02d", int(t.Month()))
	case "M":
		return fmt.Sprint(int(t.Month()))
	case "DD":
		return fmt.Sprintf("%02d", t.Day())
	case "D":
		return fmt.Sprint(t.Day())
	case "dddd":
		return t.Weekday().String()
	case "ddd":
		return t.Weekday().String()[:3]
	case "dd":
		return t.Weekday().String()[:2]
	case "d":
		return fmt.Sprint(int(t.Weekday()))
	case "HH":
		return fmt.Sprintf("%02d", t.Hour())
	case "H":
		return fmt.Sprint(t.Hour())
	case "hh":
		return fmt.Sprintf("%02d", hour12(t))
	case "h":
		return fmt.Sprint(hour12(t))
	case "mm":
		return fmt.Sprintf("%02d", t.Minute())
	case "m":
		return fmt.Sprint(t.Minute())
	case "ss":
		return fmt.Sprintf("%02d", t.Second())
	case "s":
		return fmt.Sprint(t.Second())
	case "SSS":
		return fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond))
	case "A":
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	case "a":
		if t.Hour() < 12 {
			return "am"
		}
		return "pm"
	case "ZZ":
		return t.Format("-0700")
	case "Z":
		return t.Format("-07:00")
	}
	return tok
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}
