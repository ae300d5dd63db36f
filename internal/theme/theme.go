// Package theme maps token categories to display colors. A theme is
// the renderer's color policy: a total function over the category set
// with a fixed fallback for anything unmapped.
package theme

import (
	"github.com/dshills/lexstorm/internal/style"
	"github.com/dshills/lexstorm/internal/token"
)

// Theme defines the colors used to render a token stream.
type Theme struct {
	// Name is the registry name of the theme.
	Name string

	// Colors maps token categories to their display colors.
	Colors map[token.Category]style.Color

	// Fallback is the color for categories with no explicit mapping,
	// standing in for operator/unclassified tokens.
	Fallback style.Color

	// Mismatch is the degraded color for closing tokens that do not
	// match the innermost open scope.
	Mismatch style.Color
}

// ColorOf returns the display color for a category: the explicit
// mapping when present, the fallback otherwise. Total over the
// category set; never fails.
func (t *Theme) ColorOf(cat token.Category) style.Color {
	if c, ok := t.Colors[cat]; ok {
		return c
	}
	return t.Fallback
}

// MismatchColor returns the mismatch color, deriving one from the
// fallback for themes that do not set it.
func (t *Theme) MismatchColor() style.Color {
	if t.Mismatch != (style.Color{}) {
		return t.Mismatch
	}
	return t.Fallback.Brighten(0.5)
}
