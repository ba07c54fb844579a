package codec

import "image/color"

// Palette colours a 2-bit group: 00 red, 01 blue, 10 green, 11 yellow.
var Palette = [4]color.RGBA{
	{255, 0, 0, 255},   // 00
	{0, 0, 255, 255},   // 01
	{0, 255, 0, 255},   // 10
	{255, 255, 0, 255}, // 11
}

// Strip returns one colour per 2-bit group of code. It is a display view of
// the code and is never decoded back.
func Strip(s Scheme, code string) []color.RGBA {
	syms := s.Symbols(code)
	out := make([]color.RGBA, len(syms))
	for i, v := range syms {
		out[i] = Palette[v&3]
	}
	return out
}
