package cli

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	colID      = 5
	colName    = 24
	colAddress = 28
	colUser    = 16
	colCat     = 14
)

type styles struct {
	header lipgloss.Style
	up     lipgloss.Style
	down   lipgloss.Style
	muted  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header: r.NewStyle().Bold(true),
		up:     r.NewStyle().Foreground(lipgloss.Color("2")),
		down:   r.NewStyle().Foreground(lipgloss.Color("1")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// cell pads or truncates s to width terminal cells.
func cell(s string, width int) string {
	if lipgloss.Width(s) > width {
		r := []rune(s)
		for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
			r = r[:len(r)-1]
		}
		s = string(r) + "…"
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

// dot renders the reachability marker.
func (s styles) dot(up bool) string {
	if up {
		return s.up.Render("●")
	}
	return s.down.Render("●")
}
