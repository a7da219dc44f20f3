// Package palette holds the fixed color sequences the mandala variants index
// into, plus the HSV/HSL and blending helpers built on go-colorful.
package palette

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrEmpty = errors.New("palette is empty")

var (
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black = color.RGBA{A: 255}
)

// Palette is an ordered set of opaque colors addressed modulo its length.
type Palette []color.RGBA

// Parse converts "#RRGGBB" strings into a Palette.
func Parse(hexes []string) (Palette, error) {
	if len(hexes) == 0 {
		return nil, ErrEmpty
	}
	p := make(Palette, 0, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("color %d %q: %w", i, h, err)
		}
		p = append(p, toRGBA(c))
	}
	return p, nil
}

// Len returns the palette size.
func (p Palette) Len() int { return len(p) }

// At returns the color at i, wrapping in both directions.
func (p Palette) At(i int) color.RGBA {
	return p[Wrap(i, len(p))]
}

// Stops returns n consecutive colors starting at base, used for multi-stop
// gradients.
func (p Palette) Stops(base, n int) []color.RGBA {
	out := make([]color.RGBA, n)
	for k := 0; k < n; k++ {
		out[k] = p.At(base + k)
	}
	return out
}

// Wrap is i mod n mapped into [0, n).
func Wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Blend interpolates from a toward b in RGB space; t is clamped to [0,1].
func Blend(a, b color.RGBA, t float64) color.RGBA {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	out := toRGBA(fromRGBA(a).BlendRgb(fromRGBA(b), t))
	out.A = uint8(float64(a.A) + (float64(b.A)-float64(a.A))*t + 0.5)
	return out
}

// HSV converts hue (degrees, any range), saturation and value (0-1) to RGBA.
func HSV(h, s, v float64) color.RGBA {
	return toRGBA(colorful.Hsv(wrapHue(h), s, v))
}

// HSL converts hue (degrees, any range), saturation and lightness (0-1) to RGBA.
func HSL(h, s, l float64) color.RGBA {
	return toRGBA(colorful.Hsl(wrapHue(h), s, l))
}

// Fade returns c with its alpha scaled by opacity (clamped to [0,1]).
func Fade(c color.RGBA, opacity float64) color.RGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float64(c.A)*opacity + 0.5)
	return c
}

// Hex formats c as "#rrggbb".
func Hex(c color.RGBA) string {
	return fromRGBA(c).Hex()
}

func wrapHue(h float64) float64 {
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return h
}

func fromRGBA(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
