package cellui

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Style is the fully resolved look of one cell.
type Style struct {
	Fg, Bg    colorful.Color
	Bold      bool
	Reverse   bool
	Underline bool
}

// Surface is a grid of character cells the UI draws on. Wide runes take two
// cells; the surface is told about the first one only.
type Surface interface {
	Size() (width, height int)
	SetCell(x, y int, r rune, style Style)
	ShowCursor(x, y int)
	HideCursor()
}

// Cell is one cell of a Grid. Rune is 0 for the right half of a wide rune.
type Cell struct {
	Rune  rune
	Style Style
}

// Grid is an in-memory Surface.
type Grid struct {
	w, h    int
	cells   []Cell
	cursorX int
	cursorY int
	cursor  bool
}

func NewGrid(w, h int) *Grid {
	g := &Grid{}
	g.Resize(w, h)
	return g
}

// Resize discards the content and changes the size.
func (g *Grid) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g.w, g.h = w, h
	g.cells = make([]Cell, w*h)
	for i := range g.cells {
		g.cells[i].Rune = ' '
	}
}

func (g *Grid) Size() (int, int) { return g.w, g.h }

func (g *Grid) SetCell(x, y int, r rune, style Style) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y*g.w+x] = Cell{Rune: r, Style: style}
	if displayWidth(string(r)) == 2 && x+1 < g.w {
		g.cells[y*g.w+x+1] = Cell{Style: style}
	}
}

func (g *Grid) ShowCursor(x, y int) {
	g.cursorX, g.cursorY, g.cursor = x, y, true
}

func (g *Grid) HideCursor() { g.cursor = false }

// Cursor returns the cursor position and whether it is shown.
func (g *Grid) Cursor() (x, y int, visible bool) {
	return g.cursorX, g.cursorY, g.cursor
}

// Cell returns the cell at x,y; out of range coordinates yield a blank cell.
func (g *Grid) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return Cell{Rune: ' '}
	}
	return g.cells[y*g.w+x]
}

// Line returns row y as text without trailing blanks.
func (g *Grid) Line(y int) string {
	if y < 0 || y >= g.h {
		return ""
	}
	var b strings.Builder
	for _, c := range g.cells[y*g.w : (y+1)*g.w] {
		if c.Rune == 0 {
			continue
		}
		b.WriteRune(c.Rune)
	}
	return strings.TrimRight(b.String(), " ")
}

func (g *Grid) String() string {
	lines := make([]string, g.h)
	for y := range lines {
		lines[y] = g.Line(y)
	}
	return strings.Join(lines, "\n")
}
