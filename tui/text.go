package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// fitCell lays text out in exactly w display columns: one space of padding,
// the text truncated with an ellipsis, and a rule on the right edge.
func fitCell(text string, w int) string {
	if w < 3 {
		return strings.Repeat(" ", max(w, 0))
	}
	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' {
			return ' '
		}
		return r
	}, text)
	inner := runewidth.FillRight(runewidth.Truncate(text, w-2, "…"), w-2)
	return " " + inner + "│"
}

// cutCols returns display columns [from, to) of s. A wide rune crossing
// either edge becomes spaces.
func cutCols(s string, from, to int) string {
	if from <= 0 && runewidth.StringWidth(s) <= to {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if col >= to {
			break
		}
		w := runewidth.RuneWidth(r)
		switch {
		case col >= from && col+w <= to:
			b.WriteRune(r)
		case col+w > from:
			// Partially visible wide rune.
			b.WriteString(strings.Repeat(" ", min(col+w, to)-max(col, from)))
		}
		col += w
	}
	return b.String()
}
