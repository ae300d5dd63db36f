// Package style defines terminal color and text-style values and
// their ANSI SGR encoding.
package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents a true-color value. Colors are value types with no
// identity; derivation methods return new values.
type Color struct {
	R, G, B uint8

	// Default indicates the terminal's default foreground color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// RGB creates a color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex creates a color from a "#rrggbb" or "#rgb" string.
func Hex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	parse := func(s string) (uint8, error) {
		v, err := strconv.ParseUint(s, 16, 8)
		return uint8(v), err
	}

	switch len(hex) {
	case 3:
		r, err1 := parse(string(hex[0]) + string(hex[0]))
		g, err2 := parse(string(hex[1]) + string(hex[1]))
		b, err3 := parse(string(hex[2]) + string(hex[2]))
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, fmt.Errorf("invalid hex color: %q", hex)
		}
		return Color{R: r, G: g, B: b}, nil
	case 6:
		r, err1 := parse(hex[0:2])
		g, err2 := parse(hex[2:4])
		b, err3 := parse(hex[4:6])
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, fmt.Errorf("invalid hex color: %q", hex)
		}
		return Color{R: r, G: g, B: b}, nil
	default:
		return Color{}, fmt.Errorf("invalid hex color length: %q", hex)
	}
}

// MustHex is Hex for known-good literals; it panics on a malformed
// string. Used for builtin palettes.
func MustHex(hex string) Color {
	c, err := Hex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// IsDefault returns true if this is the terminal default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default != other.Default {
		return false
	}
	if c.Default {
		return true
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns a display representation of the color.
func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Lighten moves the color's luminance toward white by amount (0..1).
func (c Color) Lighten(amount float64) Color {
	if c.Default {
		return c
	}
	h, s, l := c.colorful().Hsl()
	l += (1 - l) * amount
	return fromColorful(colorful.Hsl(h, s, l))
}

// Darken moves the color's luminance toward black by amount (0..1).
func (c Color) Darken(amount float64) Color {
	if c.Default {
		return c
	}
	h, s, l := c.colorful().Hsl()
	l *= 1 - amount
	return fromColorful(colorful.Hsl(h, s, l))
}

// Brighten raises the color's HSV value toward full by amount (0..1),
// keeping hue and saturation. Unlike Lighten it does not wash the
// color toward white.
func (c Color) Brighten(amount float64) Color {
	if c.Default {
		return c
	}
	h, s, v := c.colorful().Hsv()
	v += (1 - v) * amount
	return fromColorful(colorful.Hsv(h, s, v))
}

// Blend interpolates between two colors in RGB space; amount 0 yields
// c, amount 1 yields other.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Default || other.Default {
		if amount < 0.5 {
			return c
		}
		return other
	}
	return fromColorful(c.colorful().BlendRgb(other.colorful(), amount))
}

// HSL creates a color from hue (degrees), saturation and luminance.
func HSL(h, s, l float64) Color {
	return fromColorful(colorful.Hsl(h, s, l))
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(cc colorful.Color) Color {
	r, g, b := cc.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
