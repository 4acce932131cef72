package pucker

import (
	"math"

	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
)

// Coordinates are the Cremer-Pople puckering coordinates of a ring.
type Coordinates struct {
	// Displacements are the atom heights above the mean plane.
	Displacements []float64
	// Amplitude is the total puckering amplitude Q.
	Amplitude float64
	// Q[m] and Phi[m] are the paired amplitudes and phases for m = 2..;
	// entries 0 and 1 are unused.
	Q   []float64
	Phi []float64
	// Unpaired is q_{N/2}; only set for even ring sizes.
	Unpaired float64
}

// CremerPopleParams computes puckering coordinates for the ring whose atoms
// are at x. The mean plane normal is taken from the Fourier-weighted sums
// of the centred positions.
func CremerPopleParams(x []molecule.Vec3) Coordinates {
	n := len(x)
	var cp Coordinates
	if n < 3 {
		return cp
	}

	var center vec
	for _, p := range x {
		center = add(center, p)
	}
	center = scale(center, 1/float64(n))

	var r1, r2 vec
	for j, p := range x {
		a := 2 * math.Pi * float64(j) / float64(n)
		d := sub(p, center)
		r1 = add(r1, scale(d, math.Sin(a)))
		r2 = add(r2, scale(d, math.Cos(a)))
	}
	normal := normalize(cross(r1, r2))

	z := make([]float64, n)
	sumSq := 0.0
	for j, p := range x {
		z[j] = dot(sub(p, center), normal)
		sumSq += z[j] * z[j]
	}
	cp.Displacements = z
	cp.Amplitude = math.Sqrt(sumSq)

	last := (n - 1) / 2
	if n%2 == 0 {
		last = n/2 - 1
		s := 0.0
		for j := range z {
			s += z[j] * math.Cos(float64(j)*math.Pi)
		}
		cp.Unpaired = math.Sqrt(1/float64(n)) * s
	}

	cp.Q = make([]float64, last+1)
	cp.Phi = make([]float64, last+1)
	norm := math.Sqrt(2 / float64(n))
	for m := 2; m <= last; m++ {
		qc, qs := 0.0, 0.0
		for j := range z {
			a := 2 * math.Pi * float64(m*j) / float64(n)
			qc += z[j] * math.Cos(a)
			qs -= z[j] * math.Sin(a)
		}
		qc *= norm
		qs *= norm
		phi := math.Atan2(qs, qc)
		if phi < 0 {
			phi += 2 * math.Pi
		}
		cp.Phi[m] = phi
		cp.Q[m] = math.Hypot(qc, qs)
	}
	return cp
}

// ClassifyCremerPople colors a ring from its puckering coordinates. A
// six-membered ring maps (sin theta, cos theta, sin 3phi sin theta) scaled
// by the amplitude onto RGB, so chairs are green and boats red or purple;
// a five-membered ring is blue with intensity Q; other sizes are black.
func ClassifyCremerPople(frame molecule.Frame, atoms []int) Classification {
	c := Classification{Method: CremerPople, Reference: -1, Color: Black}
	n := len(atoms)
	if n < 3 {
		return c
	}

	cp := CremerPopleParams(coordinates(frame, atoms))
	c.Amplitude = cp.Amplitude
	c.Confident = true

	switch n {
	case 6:
		if cp.Amplitude > 0 {
			ct := math.Max(-1, math.Min(1, cp.Unpaired/cp.Amplitude))
			c.Theta = math.Acos(ct)
		}
		c.Phi = cp.Phi[2]
		st := math.Sin(c.Theta)
		c.Color = Color{
			R: math.Abs(st) * cp.Amplitude,
			G: math.Abs(math.Cos(c.Theta)) * cp.Amplitude,
			B: math.Abs(math.Sin(3*c.Phi)*st) * cp.Amplitude,
		}
		if cp.Amplitude == 0 {
			c.Color = Black
		}
	case 5:
		c.Phi = cp.Phi[2]
		c.Color = Color{B: cp.Amplitude}
	}
	c.Color = c.Color.Clamp()
	return c
}
