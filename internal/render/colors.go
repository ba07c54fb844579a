package render

import "image/color"

// CGA 16-color palette indices used by the HUD grid.
const (
	ColorBlack        = 0
	ColorBlue         = 1
	ColorGreen        = 2
	ColorCyan         = 3
	ColorRed          = 4
	ColorMagenta      = 5
	ColorBrown        = 6
	ColorLightGray    = 7
	ColorDarkGray     = 8
	ColorLightBlue    = 9
	ColorLightGreen   = 10
	ColorLightCyan    = 11
	ColorLightRed     = 12
	ColorLightMagenta = 13
	ColorYellow       = 14
	ColorWhite        = 15
)

// Palette contains the classic CGA 16-color palette.
var Palette = [16]color.RGBA{
	{0, 0, 0, 255},       // 0: Black
	{0, 0, 170, 255},     // 1: Blue
	{0, 170, 0, 255},     // 2: Green
	{0, 170, 170, 255},   // 3: Cyan
	{170, 0, 0, 255},     // 4: Red
	{170, 0, 170, 255},   // 5: Magenta
	{170, 85, 0, 255},    // 6: Brown
	{170, 170, 170, 255}, // 7: Light Gray
	{85, 85, 85, 255},    // 8: Dark Gray
	{85, 85, 255, 255},   // 9: Light Blue
	{85, 255, 85, 255},   // 10: Light Green
	{85, 255, 255, 255},  // 11: Light Cyan
	{255, 85, 85, 255},   // 12: Light Red
	{255, 85, 255, 255},  // 13: Light Magenta
	{255, 255, 85, 255},  // 14: Yellow
	{255, 255, 255, 255}, // 15: White
}

// Nearest returns the palette index closest to c in RGB space.
func Nearest(c color.RGBA) uint8 {
	best, bestD := uint8(0), -1
	for i, p := range Palette {
		dr := int(c.R) - int(p.R)
		dg := int(c.G) - int(p.G)
		db := int(c.B) - int(p.B)
		d := dr*dr + dg*dg + db*db
		if bestD < 0 || d < bestD {
			best, bestD = uint8(i), d
		}
	}
	return best
}

// Dim scales c's RGB by f in [0, 1], keeping alpha.
func Dim(c color.RGBA, f float32) color.RGBA {
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return color.RGBA{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: c.A,
	}
}
