package style

import (
	"os"
	"strings"
)

// Mode selects the escape-sequence family used for color output.
type Mode uint8

// Color output modes.
const (
	Mode256       Mode = iota // xterm-256 palette
	ModeTrueColor             // 24-bit RGB
)

// Reset clears all active SGR attributes.
const Reset = "\x1b[0m"

// CSI prefixes, preallocated so emission only appends digits.
const (
	csiFgRGB   = "\x1b[38;2;"
	csiFg256   = "\x1b[38;5;"
	csiFgReset = "\x1b[39m"
	csiBgRGB   = "\x1b[48;2;"
	csiBg256   = "\x1b[48;5;"
	csiBgReset = "\x1b[49m"
)

// DetectMode determines the terminal's color capability from the
// environment. Defaults to the 256-color palette.
func DetectMode() Mode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ModeTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ModeTrueColor
	}

	return Mode256
}

// Foreground returns the SGR sequence selecting c as the foreground
// color in this mode.
func (m Mode) Foreground(c Color) string {
	if c.Default {
		return csiFgReset
	}
	buf := make([]byte, 0, 20)
	if m == ModeTrueColor {
		buf = append(buf, csiFgRGB...)
		buf = appendChannel(buf, c.R)
		buf = append(buf, ';')
		buf = appendChannel(buf, c.G)
		buf = append(buf, ';')
		buf = appendChannel(buf, c.B)
	} else {
		buf = append(buf, csiFg256...)
		buf = appendChannel(buf, rgbTo256(c))
	}
	buf = append(buf, 'm')
	return string(buf)
}

// Background returns the SGR sequence selecting c as the background
// color in this mode.
func (m Mode) Background(c Color) string {
	if c.Default {
		return csiBgReset
	}
	buf := make([]byte, 0, 20)
	if m == ModeTrueColor {
		buf = append(buf, csiBgRGB...)
		buf = appendChannel(buf, c.R)
		buf = append(buf, ';')
		buf = appendChannel(buf, c.G)
		buf = append(buf, ';')
		buf = appendChannel(buf, c.B)
	} else {
		buf = append(buf, csiBg256...)
		buf = appendChannel(buf, rgbTo256(c))
	}
	buf = append(buf, 'm')
	return string(buf)
}

// Apply returns the SGR sequence for a full style: attributes first,
// then foreground and background colors.
func (m Mode) Apply(s Style) string {
	var b strings.Builder
	if s.Attributes.Has(AttrBold) {
		b.WriteString("\x1b[1m")
	}
	if s.Attributes.Has(AttrDim) {
		b.WriteString("\x1b[2m")
	}
	if s.Attributes.Has(AttrItalic) {
		b.WriteString("\x1b[3m")
	}
	if s.Attributes.Has(AttrUnderline) {
		b.WriteString("\x1b[4m")
	}
	if s.Attributes.Has(AttrReverse) {
		b.WriteString("\x1b[7m")
	}
	if !s.Foreground.Default {
		b.WriteString(m.Foreground(s.Foreground))
	}
	if !s.Background.Default {
		b.WriteString(m.Background(s.Background))
	}
	return b.String()
}

// appendChannel appends the decimal form of v without allocating.
func appendChannel(buf []byte, v uint8) []byte {
	if v >= 100 {
		buf = append(buf, '0'+v/100)
	}
	if v >= 10 {
		buf = append(buf, '0'+(v/10)%10)
	}
	return append(buf, '0'+v%10)
}

// Color cube channel levels for the 6x6x6 palette (indices 16-231).
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// rgbTo256 returns the nearest xterm-256 palette index for a color:
// the closest 6x6x6 cube entry, or a grayscale ramp entry (232-255)
// when that is closer. Computed per call; a line-oriented renderer
// emits too few sequences to justify a lookup table.
func rgbTo256(c Color) uint8 {
	ri := nearestCube(c.R)
	gi := nearestCube(c.G)
	bi := nearestCube(c.B)
	cubeDist := absDiff(c.R, cubeValues[ri]) +
		absDiff(c.G, cubeValues[gi]) +
		absDiff(c.B, cubeValues[bi])

	// Grayscale ramp indices 232-255 hold luminance 8, 18, ..., 238.
	gray := (int(c.R) + int(c.G) + int(c.B)) / 3
	step := (gray - 8) / 10
	if step < 0 {
		step = 0
	}
	if step > 23 {
		step = 23
	}
	level := uint8(8 + step*10)
	grayDist := absDiff(c.R, level) + absDiff(c.G, level) + absDiff(c.B, level)

	if grayDist < cubeDist {
		return uint8(232 + step)
	}
	return uint8(16 + 36*ri + 6*gi + bi)
}

func nearestCube(v uint8) int {
	best := 0
	bestDist := absDiff(v, cubeValues[0])
	for i := 1; i < len(cubeValues); i++ {
		if d := absDiff(v, cubeValues[i]); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
