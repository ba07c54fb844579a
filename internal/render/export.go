package render

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// ErrEmptyStrip is returned when there is no code to export.
var ErrEmptyStrip = errors.New("nothing to export")

const (
	stripPerRow  = 32 // symbols per exported row
	stripPadding = 8
	captionSize  = 12.0
)

// StripImage describes one exported colour strip.
type StripImage struct {
	Title  string
	Scheme string
	Code   string
	Colors []color.RGBA
	Cell   int // pixels per symbol
}

// ExportStrip renders the strip as a grid of squares, captioned with the
// title and code, and saves it as a PNG at path.
func ExportStrip(path string, s StripImage) error {
	if len(s.Colors) == 0 {
		return ErrEmptyStrip
	}
	cell := s.Cell
	if cell <= 0 {
		cell = 16
	}

	cols := min(len(s.Colors), stripPerRow)
	rows := (len(s.Colors) + stripPerRow - 1) / stripPerRow
	lines := captionLines(s, cols*cell/7)
	lineH := int(captionSize * 1.5)

	w := cols*cell + 2*stripPadding
	h := rows*cell + 2*stripPadding + len(lines)*lineH + stripPadding

	dc := gg.NewContext(w, h)
	dc.SetColor(color.Black)
	dc.Clear()

	for i, c := range s.Colors {
		x := stripPadding + (i%stripPerRow)*cell
		y := stripPadding + (i/stripPerRow)*cell
		dc.SetColor(c)
		dc.DrawRectangle(float64(x), float64(y), float64(cell), float64(cell))
		dc.Fill()
	}

	face, err := captionFace()
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(color.White)
	top := float64(rows*cell + 2*stripPadding)
	for i, line := range lines {
		dc.DrawString(line, stripPadding, top+float64((i+1)*lineH)-4)
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save strip: %w", err)
	}
	return nil
}

func captionFace() (font.Face, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse caption font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    captionSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// captionLines is the title line followed by the code broken into chunks of
// at most width characters.
func captionLines(s StripImage, width int) []string {
	width = max(width, 8)
	lines := []string{fmt.Sprintf("%s [%s]", s.Title, s.Scheme)}
	code := s.Code
	for len(code) > width {
		lines = append(lines, code[:width])
		code = code[width:]
	}
	if code != "" {
		lines = append(lines, code)
	}
	return lines
}

// StripPath builds an export file name in dir from the node title and time.
func StripPath(dir, title string, now time.Time) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '-'
	}, title)
	slug = strings.Join(strings.FieldsFunc(slug, func(r rune) bool { return r == '-' }), "-")
	if slug == "" {
		slug = "node"
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s.png", slug, now.Format("20060102-150405")))
}
