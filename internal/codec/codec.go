// Package codec converts node text to and from its compact symbolic code.
//
// Two schemes are provided. Base4 keeps only the low two bits of every
// character and is therefore lossy: decoding yields one canonical character
// per residue class, not the original text. Binary writes each character as
// its 8-bit code point and round-trips exactly for code points 0-255.
//
// Decoding never fails. Symbols outside a scheme's alphabet and incomplete
// trailing groups are dropped from the result.
package codec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScheme is returned by Lookup for names that are not registered.
var ErrUnknownScheme = errors.New("unknown scheme")

// Scheme is a text <-> code transform.
type Scheme interface {
	Name() string
	Encode(text string) string
	Decode(code string) string
	// Symbols splits a code into 2-bit groups (values 0-3) for the colour view.
	Symbols(code string) []uint8
}

// Scheme names.
const (
	NameBase4  = "base4"
	NameBinary = "binary"
)

var schemes = []Scheme{Binary{}, Base4{}}

// Lookup returns the scheme registered under name.
func Lookup(name string) (Scheme, error) {
	for _, s := range schemes {
		if strings.EqualFold(s.Name(), name) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("codec %q: %w", name, ErrUnknownScheme)
}

// Names lists the registered scheme names in toggle order.
func Names() []string {
	names := make([]string, len(schemes))
	for i, s := range schemes {
		names[i] = s.Name()
	}
	return names
}

// Next returns the scheme that follows s in toggle order.
func Next(s Scheme) Scheme {
	for i, cur := range schemes {
		if cur.Name() == s.Name() {
			return schemes[(i+1)%len(schemes)]
		}
	}
	return schemes[0]
}

// Base4 reduces each character's code point modulo 4.
type Base4 struct{}

// base4Offset is added to a digit on decode: 0-3 become '`', 'a', 'b', 'c'.
const base4Offset = 96

func (Base4) Name() string { return NameBase4 }

// Encode emits one digit per rune. Only the low two bits survive, so runes
// that differ by a multiple of 4 encode identically.
func (Base4) Encode(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		b.WriteByte(byte('0' + r%4))
	}
	return b.String()
}

// Decode maps each digit d to the rune d+96. It is not an inverse of Encode.
func (Base4) Decode(code string) string {
	var b strings.Builder
	for i := 0; i < len(code); i++ {
		c := code[i]
		if c < '0' || c > '3' {
			continue
		}
		b.WriteRune(rune(c-'0') + base4Offset)
	}
	return b.String()
}

func (Base4) Symbols(code string) []uint8 {
	out := make([]uint8, 0, len(code))
	for i := 0; i < len(code); i++ {
		c := code[i]
		if c >= '0' && c <= '3' {
			out = append(out, c-'0')
		}
	}
	return out
}

// Binary writes each character as 8 literal bits.
type Binary struct{}

const (
	byteBits = 8
	// unencodable replaces runes above 0xFF.
	unencodable = '?'
)

func (Binary) Name() string { return NameBinary }

func (Binary) Encode(text string) string {
	var b strings.Builder
	b.Grow(len(text) * byteBits)
	for _, r := range text {
		if r > 0xFF || r < 0 {
			r = unencodable
		}
		for bit := byteBits - 1; bit >= 0; bit-- {
			if r&(1<<bit) != 0 {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	}
	return b.String()
}

// Decode reads complete 8-bit groups. A group containing a foreign symbol
// is skipped, as is a trailing group shorter than 8 bits.
func (Binary) Decode(code string) string {
	var b strings.Builder
	for start := 0; start+byteBits <= len(code); start += byteBits {
		v, ok := parseBits(code[start : start+byteBits])
		if !ok {
			continue
		}
		b.WriteRune(rune(v))
	}
	return b.String()
}

func (Binary) Symbols(code string) []uint8 {
	out := make([]uint8, 0, len(code)/2)
	for start := 0; start+2 <= len(code); start += 2 {
		v, ok := parseBits(code[start : start+2])
		if !ok {
			continue
		}
		out = append(out, uint8(v))
	}
	return out
}

func parseBits(group string) (int, bool) {
	v := 0
	for i := 0; i < len(group); i++ {
		switch group[i] {
		case '0':
			v <<= 1
		case '1':
			v = v<<1 | 1
		default:
			return 0, false
		}
	}
	return v, true
}
