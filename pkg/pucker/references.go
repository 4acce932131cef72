package pucker

// reference is an ideal conformation described by its Hill-Reilly angles.
type reference struct {
	angles []float64
	family Family
}

// Six-membered ring references in degrees. Families occupy contiguous runs:
// 0 planar, 1-2 chairs, 3-8 boats, 9-20 half-chairs, 21-26 skew-boats and
// 27-38 envelopes.
var sixRingAngles = [39][3]float64{
	{0.0, 0.0, 0.0},
	{-35.26, -35.26, -35.26},
	{35.26, 35.26, 35.26},
	{-35.26, 74.20, -35.26},
	{35.26, -74.20, 35.26},
	{74.20, -35.26, -35.26},
	{-74.20, 35.26, 35.26},
	{-35.26, -35.26, 74.20},
	{35.26, 35.26, -74.20},
	{-42.16, 9.07, -17.83},
	{42.16, -9.07, 17.83},
	{42.16, 17.83, -9.06},
	{-42.16, -17.83, 9.06},
	{-17.83, -42.16, 9.07},
	{17.83, 42.16, -9.07},
	{-9.07, 42.16, 17.83},
	{9.07, -42.16, -17.83},
	{9.07, -17.83, -42.16},
	{-9.07, 17.83, 42.16},
	{17.83, -9.07, 42.16},
	{-17.83, 9.07, -42.16},
	{0.0, 50.84, -50.84},
	{0.0, -50.48, 50.48},
	{50.84, -50.84, 0.0},
	{-50.48, 50.48, 0.0},
	{-50.48, 0.0, 50.48},
	{50.48, 0.0, -50.48},
	{-35.26, 17.37, -35.26},
	{35.26, -17.37, 35.26},
	{46.86, 0.0, 0.0},
	{-46.86, 0.0, 0.0},
	{-35.26, -35.26, 17.37},
	{35.26, 35.26, -17.37},
	{0.0, 46.86, 0.0},
	{0.0, -46.86, 0.0},
	{17.37, -35.26, -35.26},
	{-17.37, 35.26, 35.26},
	{0.0, 0.0, 46.86},
	{0.0, 0.0, -46.86},
}

// Five-membered ring references: 0 planar, 1-10 twists, 11-20 envelopes.
var fiveRingAngles = [21][2]float64{
	{0.0, 0.0},
	{-13.10, -33.89},
	{-42.16, 13.21},
	{34.50, -34.50},
	{-13.21, 42.16},
	{33.89, 13.11},
	{13.10, 33.89},
	{42.16, -13.21},
	{-34.50, 34.50},
	{13.21, -42.16},
	{-33.89, -13.11},
	{-24.88, 40.00},
	{0.00, -39.90},
	{24.50, 24.50},
	{-39.50, 0.00},
	{39.50, -24.90},
	{24.88, -40.00},
	{0.00, 39.90},
	{-24.50, -24.50},
	{39.50, 0.00},
	{-39.50, 24.90},
}

const (
	sixRingBand  = 15.0
	fiveRingBand = 10.0
)

func sixRingFamily(i int) Family {
	switch {
	case i == 0:
		return FamilyPlanar
	case i <= 2:
		return FamilyChair
	case i <= 8:
		return FamilyBoat
	case i <= 20:
		return FamilyHalfChair
	case i <= 26:
		return FamilySkewBoat
	default:
		return FamilyEnvelope
	}
}

func fiveRingFamily(i int) Family {
	switch {
	case i == 0:
		return FamilyPlanar
	case i <= 10:
		return FamilyTwist
	default:
		return FamilyEnvelope
	}
}

var (
	sixRingRefs  = buildSix()
	fiveRingRefs = buildFive()
)

func buildSix() []reference {
	out := make([]reference, len(sixRingAngles))
	for i, a := range sixRingAngles {
		out[i] = reference{angles: []float64{a[0], a[1], a[2]}, family: sixRingFamily(i)}
	}
	return out
}

func buildFive() []reference {
	out := make([]reference, len(fiveRingAngles))
	for i, a := range fiveRingAngles {
		out[i] = reference{angles: []float64{a[0], a[1]}, family: fiveRingFamily(i)}
	}
	return out
}

// Reference describes one ideal conformation.
type Reference struct {
	Index  int
	Angles []float64
	Family Family
}

// References returns a copy of the reference table for a ring size, or nil
// for sizes without one.
func References(ringSize int) []Reference {
	var table []reference
	switch ringSize {
	case 5:
		table = fiveRingRefs
	case 6:
		table = sixRingRefs
	default:
		return nil
	}
	out := make([]Reference, len(table))
	for i, r := range table {
		out[i] = Reference{Index: i, Angles: append([]float64(nil), r.angles...), Family: r.family}
	}
	return out
}

// nearest returns the reference with the smallest sum of squared angle
// differences and whether every angle lies strictly within band of it.
func nearest(table []reference, angles []float64, band float64) (int, bool) {
	best, bestSum := -1, 0.0
	for i, r := range table {
		sum := 0.0
		for k, a := range r.angles {
			d := angles[k] - a
			sum += d * d
		}
		if best < 0 || sum < bestSum {
			best, bestSum = i, sum
		}
	}
	within := true
	for k, a := range table[best].angles {
		if !(a-band < angles[k] && angles[k] < a+band) {
			within = false
		}
	}
	return best, within
}

func familyColor(f Family, ringSize int) Color {
	switch f {
	case FamilyPlanar:
		return Red
	case FamilyChair:
		return Green
	case FamilyBoat:
		return Blue
	case FamilyHalfChair:
		return Purple
	case FamilySkewBoat:
		return Orange
	case FamilyEnvelope:
		if ringSize == 5 {
			return Cyan
		}
		return Yellow
	case FamilyTwist:
		return Pink
	case FamilySevenMembered:
		return Brown
	default:
		return Grey
	}
}
