package pucker

import (
	"math"

	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
)

// HillReillyAngles returns the N-3 flap angles, in degrees, of the ring
// whose atoms are at x. Flap i hinges on the axis from atom 2i to atom
// 2i+2; the angle is measured against the plane of the first two axes.
func HillReillyAngles(x []molecule.Vec3) []float64 {
	n := len(x)
	np := n - 3
	if np < 1 {
		return nil
	}

	r := make([]vec, n)
	for i := range x {
		r[i] = sub(x[(i+1)%n], x[i])
	}

	axes := make([]vec, np)
	flaps := make([]vec, np)
	for i := 0; i < np; i++ {
		j := (2 * i) % n
		l := (2*i + 1) % n
		k := (2 * (i + 1)) % n
		axes[i] = sub(x[k], x[j])
		p := cross(r[j], r[l])
		flaps[i] = normalize(cross(axes[i], p))
	}

	var normal vec
	if np > 1 {
		normal = normalize(cross(axes[0], axes[1]))
	} else {
		normal = normalize(cross(axes[0], sub(x[n-1], x[0])))
	}

	theta := make([]float64, np)
	for i, q := range flaps {
		c := math.Max(-1, math.Min(1, dot(q, normal)))
		theta[i] = (math.Pi/2 - math.Acos(c)) * 180 / math.Pi
	}
	return theta
}

// ClassifyHillReilly matches five- and six-membered rings against the
// ideal references. Seven-membered rings get a fixed color and other sizes
// a neutral grey; rings of fewer than three atoms are not classified.
func ClassifyHillReilly(frame molecule.Frame, atoms []int) Classification {
	c := Classification{Method: HillReilly, Reference: -1, Color: Grey}
	n := len(atoms)

	var table []reference
	var band float64
	switch n {
	case 5:
		table, band = fiveRingRefs, fiveRingBand
	case 6:
		table, band = sixRingRefs, sixRingBand
	case 7:
		c.Family = FamilySevenMembered
		c.Confident = true
		c.Color = Brown
		return c
	default:
		return c
	}

	c.Angles = HillReillyAngles(coordinates(frame, atoms))
	best, within := nearest(table, c.Angles, band)
	c.Reference = best
	c.Family = table[best].family
	c.Confident = within
	c.Color = familyColor(c.Family, n)
	if !within {
		c.Color = c.Color.Lighten()
	}
	return c
}
