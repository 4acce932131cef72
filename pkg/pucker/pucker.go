// Package pucker classifies ring conformations from atomic coordinates,
// using Hill-Reilly flap angles matched against ideal references or
// Cremer-Pople puckering coordinates, and maps each ring to a color.
package pucker

import (
	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
)

// Classification is the outcome of a pucker analysis for one ring.
type Classification struct {
	Method Method
	Family Family
	// Reference is the index of the matched ideal conformation, or -1.
	Reference int
	// Confident is false when the nearest reference lies outside the
	// tolerance band; the color is then lightened.
	Confident bool
	Color     Color

	// Angles holds the Hill-Reilly flap angles in degrees.
	Angles []float64
	// Cremer-Pople coordinates; Theta and Phi are in radians.
	Amplitude float64
	Theta     float64
	Phi       float64
}

// Classify runs the selected method on the ring atoms.
func Classify(m Method, frame molecule.Frame, atoms []int) Classification {
	if m == CremerPople {
		return ClassifyCremerPople(frame, atoms)
	}
	return ClassifyHillReilly(frame, atoms)
}
