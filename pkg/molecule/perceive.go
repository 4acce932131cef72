package molecule

import (
	"errors"
	"math"
)

// PerceiveOptions tunes distance based bond perception.
type PerceiveOptions struct {
	// Tolerance is added to the sum of covalent radii.
	Tolerance float64
	// MinDistance rejects overlapping atoms.
	MinDistance float64
	// MaxHydrogenBondLength caps bonds that involve a hydrogen.
	MaxHydrogenBondLength float64
	// SkipHydrogens leaves hydrogens unbonded.
	SkipHydrogens bool
}

// DefaultPerceiveOptions returns the settings used by the file readers.
func DefaultPerceiveOptions() PerceiveOptions {
	return PerceiveOptions{
		Tolerance:             0.4,
		MinDistance:           0.4,
		MaxHydrogenBondLength: 1.15,
	}
}

// PerceiveStats summarizes a perception pass.
type PerceiveStats struct {
	Added    int
	Rejected int
}

type cell struct{ x, y, z int }

// PerceiveBonds adds a bond between every pair of atoms closer than the
// sum of their covalent radii plus the tolerance. Pairs are found through a
// uniform grid so the pass stays linear for typical structures. Bonds that
// would push an atom past MaxBonds are rejected and counted.
func PerceiveBonds(m *Molecule, opts PerceiveOptions) (PerceiveStats, error) {
	var stats PerceiveStats
	n := m.AtomCount()
	if n < 2 {
		return stats, nil
	}

	maxRadius := 0.0
	for i := 0; i < n; i++ {
		maxRadius = math.Max(maxRadius, CovalentRadius(m.atoms[i].Element))
	}
	size := 2*maxRadius + opts.Tolerance
	if size <= 0 {
		size = 1
	}

	grid := make(map[cell][]int)
	cellOf := func(p Vec3) cell {
		return cell{
			int(math.Floor(p[0] / size)),
			int(math.Floor(p[1] / size)),
			int(math.Floor(p[2] / size)),
		}
	}
	for i := 0; i < n; i++ {
		c := cellOf(m.Position(i))
		grid[c] = append(grid[c], i)
	}

	for i := 0; i < n; i++ {
		ai := m.atoms[i]
		hi := ai.AtomicNumber == 1
		if hi && opts.SkipHydrogens {
			continue
		}
		pi := m.Position(i)
		c := cellOf(pi)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					for _, j := range grid[cell{c.x + dx, c.y + dy, c.z + dz}] {
						if j <= i {
							continue
						}
						aj := m.atoms[j]
						hj := aj.AtomicNumber == 1
						if hj && (hi || opts.SkipHydrogens) {
							continue
						}
						d := distance(pi, m.Position(j))
						if d < opts.MinDistance {
							continue
						}
						limit := CovalentRadius(ai.Element) + CovalentRadius(aj.Element) + opts.Tolerance
						if hi || hj {
							limit = math.Min(limit, opts.MaxHydrogenBondLength)
						}
						if d > limit || m.Bonded(i, j) {
							continue
						}
						if err := m.AddBond(i, j); err != nil {
							if errors.Is(err, ErrTooManyBonds) {
								stats.Rejected++
								continue
							}
							return stats, err
						}
						stats.Added++
					}
				}
			}
		}
	}
	return stats, nil
}

func distance(a, b Vec3) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
