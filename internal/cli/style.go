package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/vercheck-labs/vercheck/internal/drift"
)

var (
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorGray   = lipgloss.Color("245")
)

const statusFailed = "failed"

// painter styles status words for one output stream. Colour is dropped when
// the stream is not a terminal or the user asked for plain output.
type painter struct {
	r     *lipgloss.Renderer
	plain bool
}

func newPainter(w io.Writer, noColor bool) painter {
	return painter{r: lipgloss.NewRenderer(w), plain: noColor}
}

func (p painter) status(s string) string {
	if p.plain {
		return s
	}
	style := p.r.NewStyle()
	switch drift.Status(s) {
	case drift.UpToDate:
		style = style.Foreground(colorGreen)
	case drift.UpdateAvailable:
		style = style.Foreground(colorYellow).Bold(true)
	case drift.Ahead:
		style = style.Foreground(colorBlue)
	case drift.Different:
		style = style.Foreground(colorGray)
	default:
		style = style.Foreground(colorRed)
	}
	return style.Render(s)
}
