// Package viz renders cell populations in the terminal: a Braille
// scatter canvas for still frames, a bubbletea live view, and SVG
// trajectory export.
package viz

import (
	"strings"

	"github.com/san-kum/cellsim/internal/engine"
)

// Braille Patterns: 2x4 dots per character cell, unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights a sub-pixel; the canvas is (Width*2) x (Height*4)
// sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Bounds is a world-coordinate window mapped onto a canvas.
type Bounds struct {
	MinY, MaxY, MinX, MaxX float64
}

// FitBounds computes a padded window covering every frame, so an
// animation keeps a stable viewport.
func FitBounds(frames []engine.Positions) Bounds {
	b := Bounds{MinY: -1, MaxY: 1, MinX: -1, MaxX: 1}

	first := true
	for _, frame := range frames {
		for _, cell := range frame {
			if first {
				b = Bounds{MinY: cell[0], MaxY: cell[0], MinX: cell[1], MaxX: cell[1]}
				first = false
				continue
			}
			if cell[0] < b.MinY {
				b.MinY = cell[0]
			}
			if cell[0] > b.MaxY {
				b.MaxY = cell[0]
			}
			if cell[1] < b.MinX {
				b.MinX = cell[1]
			}
			if cell[1] > b.MaxX {
				b.MaxX = cell[1]
			}
		}
	}

	padY := (b.MaxY - b.MinY) * 0.1
	padX := (b.MaxX - b.MinX) * 0.1
	if padY == 0 {
		padY = 1
	}
	if padX == 0 {
		padX = 1
	}
	b.MinY -= padY
	b.MaxY += padY
	b.MinX -= padX
	b.MaxX += padX

	return b
}

// Plot draws one frame of cell positions into the canvas. The y axis
// grows downward on screen, so world y is flipped.
func (c *Canvas) Plot(pos engine.Positions, b Bounds) {
	subW := float64(c.Width * 2)
	subH := float64(c.Height * 4)
	rangeX := b.MaxX - b.MinX
	rangeY := b.MaxY - b.MinY
	if rangeX == 0 || rangeY == 0 {
		return
	}

	for _, cell := range pos {
		x := int((cell[1] - b.MinX) / rangeX * (subW - 1))
		y := int((b.MaxY - cell[0]) / rangeY * (subH - 1))
		c.Set(x, y)
		// A second dot makes single cells readable.
		c.Set(x+1, y)
	}
}

// RenderFrame is the one-shot helper used by the CLI: scatter one
// frame at the given canvas size.
func RenderFrame(pos engine.Positions, width, height int) string {
	c := NewCanvas(width, height)
	c.Plot(pos, FitBounds([]engine.Positions{pos}))
	return c.String()
}
