package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/parabola-world/internal/evaluate"
	"github.com/vovakirdan/parabola-world/internal/plot"
)

// colorStyles maps plot.Color to lipgloss styles.
var colorStyles = map[plot.Color]lipgloss.Style{
	plot.ColorDefault: lipgloss.NewStyle(),
	plot.ColorGrid:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	plot.ColorTarget:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	plot.ColorFar:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	plot.ColorClose:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	plot.ColorSolved:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	plot.ColorVertex:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	plot.ColorLabel:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
}

// heatColors picks the curve colour from the proximity verdict.
var heatColors = map[evaluate.Heat]plot.Color{
	evaluate.HeatFar:    plot.ColorFar,
	evaluate.HeatClose:  plot.ColorClose,
	evaluate.HeatSolved: plot.ColorSolved,
}

// RenderCanvas converts a canvas to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderCanvas(c *plot.Canvas) string {
	var sb strings.Builder
	sb.Grow(c.Width()*c.Height()*2 + c.Height())

	for y := range c.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < c.Width() {
			cell := c.Get(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < c.Width() {
				cell = c.Get(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[plot.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
