package utility

import (
	"aimlab/internal/rng"

	"github.com/lucasb-eyer/go-colorful"
)

// RandomColorHex returns a #rrggbb color with each channel kept away from
// pure black and pure white.
func RandomColorHex() string {
	return RandomColorHexFrom(rng.Default())
}

func RandomColorHexFrom(src rng.Source) string {
	channel := func() float64 { return (4 + src.Float64()*247) / 255 }
	return colorful.Color{R: channel(), G: channel(), B: channel()}.Hex()
}

// JitterHex offsets each RGB channel of hex by a uniform draw in
// [-amount, +amount] and clamps the result. An unparseable color is
// returned unchanged.
func JitterHex(hex string, amount float64, src rng.Source) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	off := func() float64 { return (src.Float64()*2 - 1) * amount }
	return colorful.Color{R: c.R + off(), G: c.G + off(), B: c.B + off()}.Clamped().Hex()
}

// RGB8 splits a #rrggbb color into 8-bit channels. ok is false when hex does
// not parse.
func RGB8(hex string) (r, g, b uint8, ok bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0, false
	}
	r, g, b = c.RGB255()
	return r, g, b, true
}
