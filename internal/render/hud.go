package render

import (
	"fmt"
	"image/color"

	"github.com/nodeglyph/nodeglyph/internal/nav"
	"github.com/nodeglyph/nodeglyph/internal/overlay"
)

// LogLine is one coloured event log entry.
type LogLine struct {
	Text string
	FG   uint8
}

// HUD is everything the cell grid shows outside the panel.
type HUD struct {
	Phase  nav.Phase
	Scheme string
	Nodes  int
	Links  int
	Muted  bool
	Log    []LogLine
	Status string // transient feedback such as "copied"
}

// PanelWidth is the width of the overlay panel in cells.
const PanelWidth = 40

var phaseColors = map[nav.Phase]uint8{
	nav.Idle:       ColorDarkGray,
	nav.ZoomingIn:  ColorLightCyan,
	nav.Focused:    ColorLightGreen,
	nav.PanelOpen:  ColorYellow,
	nav.ZoomingOut: ColorLightCyan,
}

// DrawHUD writes the status bar, event log and key help into buf.
func DrawHUD(buf *CellBuffer, h HUD) {
	x := 1
	x += buf.WriteString(x, 0, "nodeglyph", ColorWhite, ColorBlack) + 2
	x += buf.WriteString(x, 0, h.Phase.String(), phaseColors[h.Phase], ColorBlack) + 2
	x += buf.WriteString(x, 0, fmt.Sprintf("scheme:%s", h.Scheme), ColorLightCyan, ColorBlack) + 2
	x += buf.WriteString(x, 0, fmt.Sprintf("nodes:%d links:%d", h.Nodes, h.Links), ColorLightGray, ColorBlack) + 2
	if h.Muted {
		buf.WriteString(x, 0, "muted", ColorDarkGray, ColorBlack)
	}
	if h.Status != "" {
		buf.WriteString(buf.Cols-len(h.Status)-1, 0, h.Status, ColorYellow, ColorBlack)
	}

	logTop := buf.Rows - 2 - len(h.Log)
	for i, l := range h.Log {
		buf.Set(1, logTop+i, GlyphBullet, ColorDarkGray, ColorBlack)
		buf.WriteString(3, logTop+i, l.Text, l.FG, ColorBlack)
	}

	buf.WriteString(1, buf.Rows-1, helpText(h.Phase), ColorDarkGray, ColorBlack)
}

func helpText(p nav.Phase) string {
	switch p {
	case nav.Idle:
		return "Click: focus node / spawn  F5: scheme  Esc: quit"
	case nav.Focused:
		return "Click: open panel  Ctrl+L: link node  F5: scheme"
	case nav.PanelOpen:
		return "Enter: convert  Tab: reverse  Ctrl+C: copy  Ctrl+E: export  RMB: hide  Esc: close"
	}
	return ""
}

// DrawPanel writes the overlay panel at (x, y) and returns its height. It
// draws nothing while the panel is hidden.
func DrawPanel(buf *CellBuffer, ov *overlay.Overlay, x, y int) int {
	if !ov.Visible() {
		return 0
	}
	const w = PanelWidth
	inner := w - 4

	code := ov.Code()
	codeRows := wrapCells(code, inner)
	strip := ov.Strip()
	stripRows := wrapColors(strip, inner)

	h := 7 + max(len(codeRows), 1) + len(stripRows)
	buf.Box(x, y, w, h, ColorLightCyan, ColorBlue)

	title := fmt.Sprintf(" %s ", ov.Title())
	buf.WriteClipped(x+2, y, inner, title, ColorWhite, ColorBlue)

	row := y + 1
	buf.WriteString(x+2, row, "Text:", ColorLightGray, ColorBlue)
	row++
	buf.Set(x+1, row, GlyphArrowRight, ColorYellow, ColorBlue)
	buf.WriteClipped(x+2, row, inner, ov.Field()+"_", ColorWhite, ColorBlue)
	row += 2

	buf.WriteString(x+2, row, fmt.Sprintf("Code (%s):", ov.Scheme().Name()), ColorLightGray, ColorBlue)
	row++
	if len(codeRows) == 0 {
		buf.WriteString(x+2, row, "press Enter to convert", ColorDarkGray, ColorBlue)
		row++
	}
	for _, line := range codeRows {
		buf.WriteString(x+2, row, line, ColorYellow, ColorBlue)
		row++
	}
	row++

	for _, colors := range stripRows {
		for i, c := range colors {
			buf.Set(x+2+i, row, GlyphFull, Nearest(c), ColorBlue)
		}
		row++
	}
	return h
}

func wrapCells(s string, width int) []string {
	var out []string
	rs := []rune(s)
	for len(rs) > width {
		out = append(out, string(rs[:width]))
		rs = rs[width:]
	}
	if len(rs) > 0 {
		out = append(out, string(rs))
	}
	return out
}

func wrapColors(cs []color.RGBA, width int) [][]color.RGBA {
	var out [][]color.RGBA
	for len(cs) > width {
		out = append(out, cs[:width])
		cs = cs[width:]
	}
	if len(cs) > 0 {
		out = append(out, cs)
	}
	return out
}
