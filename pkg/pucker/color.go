package pucker

import (
	"fmt"
	"math"
)

// Color is an RGB triple with channels in [0, 1].
type Color struct {
	R, G, B float64
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	to := func(v float64) int { return int(math.Round(clampUnit(v) * 255)) }
	return fmt.Sprintf("#%02x%02x%02x", to(c.R), to(c.G), to(c.B))
}

// Lighten moves each channel 40% of the way to white.
func (c Color) Lighten() Color {
	l := func(v float64) float64 { return v + 0.4*(1-v) }
	return Color{l(c.R), l(c.G), l(c.B)}
}

// Clamp forces every channel into [0, 1]; NaN becomes 0.
func (c Color) Clamp() Color {
	return Color{clampUnit(c.R), clampUnit(c.G), clampUnit(c.B)}
}

func clampUnit(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Family colors.
var (
	Red    = Color{1, 0, 0}
	Green  = Color{0, 1, 0}
	Blue   = Color{0, 0, 1}
	Purple = Color{0.75, 0, 1}
	Orange = Color{1, 0.5, 0}
	Yellow = Color{1, 1, 0}
	Pink   = Color{1, 0.4, 0.7}
	Cyan   = Color{0, 1, 1}
	Brown  = Color{0.35, 0.2, 0.1}
	Grey   = Color{0.5, 0.5, 0.5}
	Black  = Color{}
)
