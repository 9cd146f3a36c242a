package sketch

import (
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"
)

// Palette shared by the sketches.
var (
	ColorBackground = color.RGBA{0xf5, 0xf7, 0xfa, 0xff}
	ColorPanel      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ColorBorder     = color.RGBA{0xc8, 0xcf, 0xd8, 0xff}
	ColorText       = color.RGBA{0x22, 0x2b, 0x36, 0xff}
	ColorMuted      = color.RGBA{0x6b, 0x76, 0x84, 0xff}
	ColorAccent     = color.RGBA{0x2f, 0x6f, 0xeb, 0xff}
	ColorHover      = color.RGBA{0xdc, 0xe8, 0xff, 0xff}
	ColorSelected   = color.RGBA{0xff, 0xd5, 0x4f, 0xff}
	ColorGood       = color.RGBA{0x2e, 0x9d, 0x5b, 0xff}
	ColorBad        = color.RGBA{0xd6, 0x45, 0x45, 0xff}
	ColorWarn       = color.RGBA{0xf0, 0x9a, 0x2b, 0xff}
	ColorOverlay    = color.RGBA{0x10, 0x18, 0x20, 0x99}
)

// HSV returns an opaque colour for hue h in degrees, saturation and value in
// [0, 1].
func HSV(h, s, v float64) color.RGBA {
	r, g, b := hsvToRGB(h, s, v)
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}

// Categorical returns a distinct hue for item i of n.
func Categorical(i, n int) color.RGBA {
	if n <= 0 {
		n = 1
	}
	return HSV(float64(i)/float64(n)*360, 0.55, 0.85)
}

func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}

// Mix blends a toward b by t in [0, 1].
func Mix(a, b color.RGBA, t float64) color.RGBA {
	t = Clamp(t, 0, 1)
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), lerp(a.A, b.A)}
}

// Shimmer turns an animation phase into smooth noise in [0, 1]. It is a pure
// function of the phase and the sample offset, so renders stay reproducible.
type Shimmer struct {
	noise *perlin.Perlin
}

// NewShimmer seeds the noise generator.
func NewShimmer(seed int64) *Shimmer {
	return &Shimmer{noise: perlin.NewPerlin(2, 2, 3, seed)}
}

// At samples the noise at phase t for element offset k.
func (s *Shimmer) At(t, k float64) float64 {
	return Clamp(0.5+s.noise.Noise2D(t*0.05, k*0.37), 0, 1)
}

func hypot(x, y float64) float64 { return math.Hypot(x, y) }
