package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/cellsim/internal/engine"
)

var svgPalette = []string{
	"#00ff00", "#00bfff", "#ff6347", "#ffd700", "#ee82ee", "#7fffd4",
}

// TrajectorySVG renders every cell's path across the recorded frames
// as one SVG polyline per cell, with the final position marked.
func TrajectorySVG(frames []engine.Positions, width, height int) string {
	if len(frames) == 0 || len(frames[0]) == 0 {
		return ""
	}

	b := FitBounds(frames)
	rangeX := b.MaxX - b.MinX
	rangeY := b.MaxY - b.MinY

	toPixel := func(cell [2]float64) (float64, float64) {
		x := (cell[1] - b.MinX) / rangeX * float64(width)
		y := (b.MaxY - cell[0]) / rangeY * float64(height)
		return x, y
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	numCells := len(frames[0])
	for cell := 0; cell < numCells; cell++ {
		color := svgPalette[cell%len(svgPalette)]

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.6" d="M`, color))
		for i, frame := range frames {
			if cell >= len(frame) {
				break
			}
			x, y := toPixel(frame[cell])
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		last := frames[len(frames)-1]
		if cell < len(last) {
			x, y := toPixel(last[cell])
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2.5" fill="%s"/>
`, x, y, color))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
