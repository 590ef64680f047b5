package screen

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Color is an RGBA color with components in the range [0, 1].
type Color [4]float32

// Default colors.
var (
	DefaultBackground = RGB(0x000000)
	DefaultForeground = RGB(0x33ff66)
)

// RGB returns the color for the 24-bit value 0xRRGGBB.
func RGB(n uint32) Color {
	return Color{
		float32((n>>16)&0xff) / 255,
		float32((n>>8)&0xff) / 255,
		float32(n&0xff) / 255,
		1,
	}
}

// ParseColor parses a color in the form "#rrggbb" or "rrggbb".
func ParseColor(v string) (Color, error) {
	s := strings.TrimPrefix(v, "#")
	if len(s) != 6 {
		return Color{}, errors.Errorf("invalid color %q", v)
	}

	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, errors.Wrapf(err, "invalid color %q", v)
	}

	return RGB(uint32(n)), nil
}
