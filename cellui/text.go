package cellui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if displayWidth(s) <= width {
		return s
	}
	var buf strings.Builder
	curWidth := 0
	for _, ch := range s {
		chWidth := runewidth.RuneWidth(ch)
		if curWidth+chWidth > width {
			break
		}
		buf.WriteRune(ch)
		curWidth += chWidth
	}
	return buf.String()
}

func padRight(s string, width int) string {
	if displayWidth(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-displayWidth(s))
}

// glyph is one rune of a styled line.
type glyph struct {
	r     rune
	width int
	span  int // index of the segment it came from
}

// layoutLine cuts glyphs into rows of at most width cells. With wrap unset
// everything past the first row is dropped. Wrapping prefers the last blank
// of a row.
func layoutLine(glyphs []glyph, width int, wrap bool) [][]glyph {
	if width <= 0 {
		return nil
	}
	var rows [][]glyph
	start := 0
	for {
		cur, lastBlank, end := 0, -1, start
		for end < len(glyphs) && cur+glyphs[end].width <= width {
			if glyphs[end].r == ' ' {
				lastBlank = end
			}
			cur += glyphs[end].width
			end++
		}
		if end == start && end < len(glyphs) {
			// a glyph wider than the row
			end++
		}
		if end < len(glyphs) && wrap && lastBlank > start {
			end = lastBlank + 1
		}
		rows = append(rows, glyphs[start:end])
		if end >= len(glyphs) || !wrap {
			return rows
		}
		start = end
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
