package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Cell represents a single character cell on screen.
type Cell struct {
	Glyph byte  // CP437 code (0-255)
	FG    uint8 // Foreground color index (0-15)
	BG    uint8 // Background color index (0-15)
}

var blank = Cell{Glyph: ' ', FG: ColorWhite, BG: ColorBlack}

// CellBuffer is a 2D grid of character cells. Black backgrounds are drawn
// transparent so the scene shows through.
type CellBuffer struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// NewCellBuffer creates a new cell buffer filled with blank cells.
func NewCellBuffer(cols, rows int) *CellBuffer {
	b := &CellBuffer{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
	b.Clear()
	return b
}

// Set writes a single cell at (x, y). Out-of-bounds writes are ignored.
func (b *CellBuffer) Set(x, y int, glyph byte, fg, bg uint8) {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		b.Cells[y*b.Cols+x] = Cell{Glyph: glyph, FG: fg, BG: bg}
	}
}

// Get reads a single cell at (x, y). Out-of-bounds reads return a zero cell.
func (b *CellBuffer) Get(x, y int) Cell {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		return b.Cells[y*b.Cols+x]
	}
	return Cell{}
}

// Clear resets all cells to blank.
func (b *CellBuffer) Clear() {
	for i := range b.Cells {
		b.Cells[i] = blank
	}
}

// Fill paints a rectangle with one glyph.
func (b *CellBuffer) Fill(x, y, w, h int, glyph byte, fg, bg uint8) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			b.Set(xx, yy, glyph, fg, bg)
		}
	}
}

// Box draws a single-line frame with a blank interior of colour bg.
func (b *CellBuffer) Box(x, y, w, h int, fg, bg uint8) {
	if w < 2 || h < 2 {
		return
	}
	b.Fill(x, y, w, h, ' ', fg, bg)
	for xx := x + 1; xx < x+w-1; xx++ {
		b.Set(xx, y, GlyphHoriz, fg, bg)
		b.Set(xx, y+h-1, GlyphHoriz, fg, bg)
	}
	for yy := y + 1; yy < y+h-1; yy++ {
		b.Set(x, yy, GlyphVert, fg, bg)
		b.Set(x+w-1, yy, GlyphVert, fg, bg)
	}
	b.Set(x, y, GlyphTopLeft, fg, bg)
	b.Set(x+w-1, y, GlyphTopRight, fg, bg)
	b.Set(x, y+h-1, GlyphBotLeft, fg, bg)
	b.Set(x+w-1, y+h-1, GlyphBotRight, fg, bg)
}

// WriteString writes s starting at (x, y), one rune per cell. Runes outside
// CP437's single-byte range become '?'. It returns the number of cells used.
func (b *CellBuffer) WriteString(x, y int, s string, fg, bg uint8) int {
	n := 0
	for _, ch := range s {
		if ch > 255 {
			ch = '?'
		}
		b.Set(x+n, y, byte(ch), fg, bg)
		n++
	}
	return n
}

// WriteClipped writes at most width cells of s. When s is longer its tail
// is kept, prefixed with '<', so the end of typed text stays visible.
func (b *CellBuffer) WriteClipped(x, y, width int, s string, fg, bg uint8) {
	if width <= 0 {
		return
	}
	rs := []rune(s)
	if len(rs) > width {
		rs = append([]rune{'<'}, rs[len(rs)-width+1:]...)
	}
	b.WriteString(x, y, string(rs), fg, bg)
}

// GridRenderer draws a CellBuffer to an Ebitengine screen.
type GridRenderer struct {
	Atlas   *FontAtlas
	CellW   int
	CellH   int
	bgPixel *ebiten.Image // 1x1 white pixel for drawing backgrounds
}

// NewGridRenderer creates a renderer with the given atlas and cell dimensions.
func NewGridRenderer(atlas *FontAtlas, cellW, cellH int) *GridRenderer {
	bgPixel := ebiten.NewImage(1, 1)
	bgPixel.Fill(color.White)
	return &GridRenderer{
		Atlas:   atlas,
		CellW:   cellW,
		CellH:   cellH,
		bgPixel: bgPixel,
	}
}

// Draw renders the entire CellBuffer over the screen.
func (r *GridRenderer) Draw(screen *ebiten.Image, buf *CellBuffer) {
	for y := 0; y < buf.Rows; y++ {
		for x := 0; x < buf.Cols; x++ {
			cell := buf.Cells[y*buf.Cols+x]
			px := float64(x * r.CellW)
			py := float64(y * r.CellH)

			if cell.BG != ColorBlack {
				var op ebiten.DrawImageOptions
				op.GeoM.Scale(float64(r.CellW), float64(r.CellH))
				op.GeoM.Translate(px, py)
				op.ColorScale.ScaleWithColor(Palette[cell.BG])
				screen.DrawImage(r.bgPixel, &op)
			}
			r.drawGlyph(screen, cell.Glyph, Palette[cell.FG], px, py)
		}
	}
}

// DrawLabel renders text at arbitrary pixel coordinates, used for node
// titles that follow projected positions.
func (r *GridRenderer) DrawLabel(screen *ebiten.Image, text string, clr color.Color, px, py float64) {
	for i, ch := range []rune(text) {
		if ch > 255 {
			ch = '?'
		}
		r.drawGlyph(screen, byte(ch), clr, px+float64(i*r.CellW), py)
	}
}

func (r *GridRenderer) drawGlyph(screen *ebiten.Image, glyph byte, clr color.Color, px, py float64) {
	if glyph == ' ' || glyph == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(r.CellW)/GlyphWidth, float64(r.CellH)/GlyphHeight)
	op.GeoM.Translate(px, py)
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(r.Atlas.Glyph(glyph), &op)
}
