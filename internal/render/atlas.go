package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	GlyphWidth  = 16
	GlyphHeight = 16
	AtlasCols   = 16
	AtlasRows   = 16
)

// CP437 codes used by the HUD beyond printable ASCII.
const (
	GlyphBullet     byte = 7   // •
	GlyphArrowRight byte = 16  // ►
	GlyphArrowLeft  byte = 17  // ◄
	GlyphLight      byte = 176 // ░
	GlyphMedium     byte = 177 // ▒
	GlyphDark       byte = 178 // ▓
	GlyphVert       byte = 179 // │
	GlyphTopRight   byte = 191 // ┐
	GlyphBotLeft    byte = 192 // └
	GlyphHoriz      byte = 196 // ─
	GlyphBotRight   byte = 217 // ┘
	GlyphTopLeft    byte = 218 // ┌
	GlyphFull       byte = 219 // █
	GlyphLowerHalf  byte = 220 // ▄
	GlyphUpperHalf  byte = 223 // ▀
	GlyphSquare     byte = 254 // ■
)

// FontAtlas holds the glyph atlas and cached sub-images.
type FontAtlas struct {
	image  *ebiten.Image
	glyphs [256]*ebiten.Image
}

// NewFontAtlas builds the atlas. Printable ASCII comes from
// basicfont.Face7x13; box, block and marker glyphs are drawn as pixel masks.
// Codes with neither stay blank.
func NewFontAtlas() *FontAtlas {
	img := BuildAtlasImage()
	eimg := ebiten.NewImageFromImage(img)
	a := &FontAtlas{image: eimg}
	for code := 0; code < 256; code++ {
		a.glyphs[code] = eimg.SubImage(glyphRect(byte(code))).(*ebiten.Image)
	}
	return a
}

// Glyph returns the cached sub-image for a CP437 character code.
func (a *FontAtlas) Glyph(code byte) *ebiten.Image {
	return a.glyphs[code]
}

// BuildAtlasImage rasterises every known glyph into a 256x256 white-on-
// transparent image.
func BuildAtlasImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, AtlasCols*GlyphWidth, AtlasRows*GlyphHeight))
	face := basicfont.Face7x13
	for code := 0; code < 256; code++ {
		r := glyphRect(byte(code))
		if code >= 32 && code <= 126 {
			drawFontGlyph(img, face, r.Min, rune(code))
			continue
		}
		if mask, ok := glyphMasks[byte(code)]; ok {
			drawMask(img, r.Min, mask)
		}
	}
	return img
}

func glyphRect(code byte) image.Rectangle {
	x := int(code) % AtlasCols * GlyphWidth
	y := int(code) / AtlasCols * GlyphHeight
	return image.Rect(x, y, x+GlyphWidth, y+GlyphHeight)
}

// drawFontGlyph renders one 7x13 character centred in its 16x16 cell.
func drawFontGlyph(img *image.NRGBA, face font.Face, at image.Point, r rune) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(at.X+4, at.Y+13),
	}
	d.DrawString(string(r))
}

// mask reports whether pixel (x, y) of a 16x16 cell is lit.
type mask func(x, y int) bool

func drawMask(img *image.NRGBA, at image.Point, m mask) {
	white := color.NRGBA{255, 255, 255, 255}
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			if m(x, y) {
				img.SetNRGBA(at.X+x, at.Y+y, white)
			}
		}
	}
}

// box builds a single-line box glyph from its connections. Lines are two
// pixels wide through the cell centre.
func box(left, right, top, bottom bool) mask {
	const c = 7
	return func(x, y int) bool {
		onH := y == c || y == c+1
		onV := x == c || x == c+1
		return (left && onH && x <= c+1) ||
			(right && onH && x >= c) ||
			(top && onV && y <= c+1) ||
			(bottom && onV && y >= c)
	}
}

var glyphMasks = map[byte]mask{
	GlyphBullet: func(x, y int) bool {
		dx, dy := x*2-15, y*2-15
		return dx*dx+dy*dy <= 36
	},
	GlyphArrowRight: func(x, y int) bool {
		return x >= 4 && x < 12 && abs(y*2-15) <= (12-x)*2-1
	},
	GlyphArrowLeft: func(x, y int) bool {
		return x >= 4 && x < 12 && abs(y*2-15) <= (x-3)*2-1
	},
	GlyphLight:     func(x, y int) bool { return (x+y)%4 == 0 },
	GlyphMedium:    func(x, y int) bool { return (x+y)%2 == 0 },
	GlyphDark:      func(x, y int) bool { return (x+y)%4 != 0 },
	GlyphVert:      box(false, false, true, true),
	GlyphTopRight:  box(true, false, false, true),
	GlyphBotLeft:   box(false, true, true, false),
	GlyphHoriz:     box(true, true, false, false),
	GlyphBotRight:  box(true, false, true, false),
	GlyphTopLeft:   box(false, true, false, true),
	GlyphFull:      func(x, y int) bool { return true },
	GlyphLowerHalf: func(x, y int) bool { return y >= GlyphHeight/2 },
	GlyphUpperHalf: func(x, y int) bool { return y < GlyphHeight/2 },
	GlyphSquare:    func(x, y int) bool { return x >= 4 && x < 12 && y >= 4 && y < 12 },
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
