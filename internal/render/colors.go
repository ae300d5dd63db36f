package render

import (
	"math/rand"

	"github.com/dshills/lexstorm/internal/style"
)

// ColorSource supplies the per-scope colors used by depth annotations.
// Implementations only need to be visually distinguishable call to
// call, not random.
type ColorSource interface {
	Next() style.Color
}

// goldenAngle keeps consecutive hues far apart without bookkeeping.
const goldenAngle = 137.5

// HueSource walks the hue wheel in golden-angle steps from a random
// starting phase, so sibling scopes land on well-separated colors.
type HueSource struct {
	hue float64
}

// NewHueSource seeds the phase from the process-wide random source.
func NewHueSource() *HueSource {
	return &HueSource{hue: rand.Float64() * 360}
}

// Next returns the next scope color.
func (h *HueSource) Next() style.Color {
	c := style.HSL(h.hue, 0.65, 0.6)
	h.hue += goldenAngle
	for h.hue >= 360 {
		h.hue -= 360
	}
	return c
}

// Fixed returns a source that cycles through the given colors. Tests
// use it to pin scope colors to a known sequence.
func Fixed(colors ...style.Color) ColorSource {
	return &fixedSource{colors: colors}
}

type fixedSource struct {
	colors []style.Color
	next   int
}

func (f *fixedSource) Next() style.Color {
	c := f.colors[f.next%len(f.colors)]
	f.next++
	return c
}
