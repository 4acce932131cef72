package pucker

import (
	"math"

	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
)

type vec = molecule.Vec3

func sub(a, b vec) vec {
	return vec{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func add(a, b vec) vec {
	return vec{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func scale(a vec, s float64) vec {
	return vec{a[0] * s, a[1] * s, a[2] * s}
}

func dot(a, b vec) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b vec) vec {
	return vec{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// normalize returns a unit vector; a zero vector is returned unchanged.
func normalize(a vec) vec {
	l := math.Sqrt(dot(a, a))
	if l == 0 {
		return a
	}
	return scale(a, 1/l)
}

// coordinates gathers the positions of atoms from frame.
func coordinates(frame molecule.Frame, atoms []int) []vec {
	out := make([]vec, len(atoms))
	for i, a := range atoms {
		out[i] = frame.Position(a)
	}
	return out
}
