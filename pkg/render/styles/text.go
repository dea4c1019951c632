package styles

import (
	"bytes"
	"encoding/xml"
	"unicode/utf8"
)

const (
	fontCharWidth = 0.55
	fontSizeMin   = 9.0
	fontSizeMax   = 14.0
	fontRowRatio  = 0.4
)

// FontSize returns the label font size for a row of the given height.
func FontSize(rowHeight float64) float64 {
	return max(fontSizeMin, min(fontSizeMax, rowHeight*fontRowRatio))
}

// TruncateLabel shortens label so it fits into width at the given font
// size, marking the cut with "..". At least three characters are kept.
func TruncateLabel(label string, width, fontSize float64) string {
	maxChars := int(width / (fontSize * fontCharWidth))
	if maxChars < 3 {
		maxChars = 3
	}
	if utf8.RuneCountInString(label) <= maxChars {
		return label
	}
	runes := []rune(label)
	return string(runes[:maxChars-2]) + ".."
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
