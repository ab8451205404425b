package panel

import (
	"strings"
	"unicode/utf8"
)

// Truncate cuts s to max runes, marking the cut with "...".
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// Wrap breaks s into at most maxLines lines of at most width runes, splitting on spaces.
// Words longer than width are cut. When the text does not fit, the last line ends in "...".
func Wrap(s string, width, maxLines int) []string {
	words := strings.Fields(s)
	if len(words) == 0 || width <= 0 || maxLines <= 0 {
		return nil
	}
	var lines []string
	cur := ""
	for _, w := range words {
		if utf8.RuneCountInString(w) > width {
			w = string([]rune(w)[:width])
		}
		switch {
		case cur == "":
			cur = w
		case utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(w) <= width:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	lines = append(lines, cur)
	if len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	last := lines[maxLines-1]
	if utf8.RuneCountInString(last)+3 <= width {
		lines[maxLines-1] = last + "..."
	} else {
		lines[maxLines-1] = Truncate(last, width)
	}
	return lines
}
