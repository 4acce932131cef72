package rings

import (
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
	"github.com/dd0wney/cluso-paperchain/pkg/molecule/moleculetest"
)

func pyranose(t *testing.T) (*molecule.Molecule, map[string]int) {
	t.Helper()
	m := molecule.New("glucose")
	return m, moleculetest.AddPyranose(m, molecule.Vec3{}, false)
}

func ringOf(idx map[string]int, names ...string) SmallRing {
	atoms := make([]int, len(names))
	for i, n := range names {
		atoms[i] = idx[n]
	}
	return NewSmallRing(atoms...)
}

func TestOrient(t *testing.T) {
	m, idx := pyranose(t)

	tests := []struct {
		name  string
		ring  SmallRing
		want  Orientation
		after []string
	}{
		{
			name:  "already toward C1",
			ring:  ringOf(idx, "O5", "C1", "C2", "C3", "C4", "C5"),
			want:  Forward,
			after: []string{"O5", "C1", "C2", "C3", "C4", "C5"},
		},
		{
			name:  "toward C5",
			ring:  ringOf(idx, "O5", "C5", "C4", "C3", "C2", "C1"),
			want:  Reversed,
			after: []string{"C1", "C2", "C3", "C4", "C5", "O5"},
		},
		{
			name:  "anchor mid ring",
			ring:  ringOf(idx, "C3", "C2", "C1", "O5", "C5", "C4"),
			want:  Reversed,
			after: []string{"C4", "C5", "O5", "C1", "C2", "C3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.ring
			if got := Orient(m, &r); got != tt.want {
				t.Fatalf("Orient() = %v, want %v", got, tt.want)
			}
			want := ringOf(idx, tt.after...)
			if !slices.Equal(r.Atoms, want.Atoms) {
				t.Errorf("ring = %v, want %v", r.Atoms, want.Atoms)
			}
		})
	}
}

func TestOrient_FoundRing(t *testing.T) {
	m, idx := pyranose(t)
	res, err := FindSmallRings(m, 6)
	if err != nil {
		t.Fatalf("FindSmallRings failed: %v", err)
	}
	if len(res.Rings) != 1 {
		t.Fatalf("Expected 1 ring, got %d", len(res.Rings))
	}
	if n := OrientAll(m, res.Rings); n != 1 {
		t.Fatalf("Expected 1 orientated ring, got %d", n)
	}

	r := res.Rings[0]
	pos := slices.Index(r.Atoms, idx["O5"])
	if next := r.At((pos + 1) % r.Len()); next != idx["C1"] {
		t.Errorf("Expected C1 after O5, got atom %d in %v", next, r.Atoms)
	}
}

func TestOrient_Anchors(t *testing.T) {
	t.Run("degree two carbon", func(t *testing.T) {
		m := moleculetest.PlanarRing(6) // atoms named C1..C6
		r := NewSmallRing(0, 1, 2, 3, 4, 5)
		if got := Orient(m, &r); got != Forward {
			t.Errorf("Orient() = %v, want Forward", got)
		}
	})

	t.Run("oxygen by type", func(t *testing.T) {
		m := molecule.New("typed")
		names := []string{"X1", "C1", "C2", "C3", "C4"}
		for i, name := range names {
			a := molecule.Atom{Element: "C", Name: name}
			if i == 0 {
				a = molecule.Atom{Element: "", Name: name, Type: "O"}
			}
			m.AddAtom(a, molecule.Vec3{})
		}
		for i := range names {
			_ = m.AddBond(i, (i+1)%len(names))
		}
		// a branch makes the typed atom's degree three
		extra := m.AddAtom(molecule.Atom{Element: "C", Name: "CX"}, molecule.Vec3{})
		_ = m.AddBond(0, extra)

		r := NewSmallRing(0, 4, 3, 2, 1)
		if got := Orient(m, &r); got != Reversed {
			t.Errorf("Orient() = %v, want Reversed", got)
		}
		if !slices.Equal(r.Atoms, []int{1, 2, 3, 4, 0}) {
			t.Errorf("ring = %v", r.Atoms)
		}
	})

	t.Run("no named neighbor", func(t *testing.T) {
		m := molecule.New("furan-like")
		for _, name := range []string{"O1", "CA", "CB", "CC", "CD"} {
			el := "C"
			if name == "O1" {
				el = "O"
			}
			m.AddAtom(molecule.Atom{Element: el, Name: name}, molecule.Vec3{})
		}
		r := NewSmallRing(0, 1, 2, 3, 4)
		if got := Orient(m, &r); got != Unorientated {
			t.Errorf("Orient() = %v, want Unorientated", got)
		}
		if !slices.Equal(r.Atoms, []int{0, 1, 2, 3, 4}) {
			t.Errorf("ring changed to %v", r.Atoms)
		}
	})
}

// TestOrient_Idempotent checks that orienting twice changes nothing
func TestOrient_Idempotent(t *testing.T) {
	m, idx := pyranose(t)
	base := ringOf(idx, "O5", "C1", "C2", "C3", "C4", "C5")

	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("second orientation is a no-op", prop.ForAll(
		func(rot int, reverse bool) bool {
			r := base.Copy()
			if reverse {
				r.Reverse()
			}
			r.Atoms = slices.Concat(r.Atoms[rot:], r.Atoms[:rot])

			Orient(m, &r)
			once := r.Copy()
			Orient(m, &r)
			return slices.Equal(once.Atoms, r.Atoms) && once.Orientation == r.Orientation && r.Orientated()
		},
		gen.IntRange(0, 5),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
