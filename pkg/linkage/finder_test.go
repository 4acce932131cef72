package linkage

import (
	"errors"
	"slices"
	"testing"

	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
	"github.com/dd0wney/cluso-paperchain/pkg/molecule/moleculetest"
	"github.com/dd0wney/cluso-paperchain/pkg/rings"
)

var sugarOrder = []string{"O5", "C1", "C2", "C3", "C4", "C5"}

func sugarRing(idx map[string]int) rings.SmallRing {
	atoms := make([]int, len(sugarOrder))
	for i, n := range sugarOrder {
		atoms[i] = idx[n]
	}
	r := rings.NewSmallRing(atoms...)
	r.Orientation = rings.Forward
	return r
}

// trisaccharide builds A(C1)-O-(C4)B(C1)-O-(C4)C.
func trisaccharide(t *testing.T) (*molecule.Molecule, []rings.SmallRing) {
	t.Helper()
	m := molecule.New("trisaccharide")
	var rs []rings.SmallRing
	var prev map[string]int
	for i := 0; i < 3; i++ {
		idx := moleculetest.AddPyranose(m, molecule.Vec3{5 * float64(i), 0, 0}, false)
		rs = append(rs, sugarRing(idx))
		if prev != nil {
			o := m.AddAtom(molecule.Atom{Element: "O", Name: "O4"}, molecule.Vec3{5*float64(i) - 2.5, 0, 0})
			if err := m.AddBond(prev["C1"], o); err != nil {
				t.Fatal(err)
			}
			if err := m.AddBond(o, idx["C4"]); err != nil {
				t.Fatal(err)
			}
		}
		prev = idx
	}
	return m, rs
}

func checkPaths(t *testing.T, rs []rings.SmallRing, reg *Registry) {
	t.Helper()
	inRing := make(map[int]bool)
	for _, r := range rs {
		for _, a := range r.Atoms {
			inRing[a] = true
		}
	}
	for i, p := range reg.Paths() {
		if p.StartRing >= p.EndRing {
			t.Errorf("path %d: start ring %d not below end ring %d", i, p.StartRing, p.EndRing)
		}
		if !rs[p.StartRing].Contains(p.At(0)) || !rs[p.EndRing].Contains(p.At(p.Len()-1)) {
			t.Errorf("path %d %v does not join its rings", i, p.Atoms)
		}
		for _, a := range p.Atoms[1 : p.Len()-1] {
			if inRing[a] {
				t.Errorf("path %d passes through ring atom %d", i, a)
			}
		}
	}
}

// TestFindLinkages_Disaccharide tests the single glycosidic linkage
func TestFindLinkages_Disaccharide(t *testing.T) {
	m, bridge := moleculetest.Disaccharide()
	res, err := rings.FindSmallRings(m, 6)
	if err != nil {
		t.Fatalf("FindSmallRings failed: %v", err)
	}
	if n := rings.OrientAll(m, res.Rings); n != 2 {
		t.Fatalf("Expected 2 orientated rings, got %d", n)
	}

	found, err := FindLinkages(m, res.Rings, 5)
	if err != nil {
		t.Fatalf("FindLinkages failed: %v", err)
	}
	reg := found.Registry
	if reg.Len() != 1 {
		t.Fatalf("Expected 1 path, got %d: %v", reg.Len(), reg.Paths())
	}
	p := reg.Path(0)
	if p.Len() != 3 || p.At(1) != bridge {
		t.Errorf("Expected 3-atom path through %d, got %v", bridge, p.Atoms)
	}
	checkPaths(t, res.Rings, reg)
	if reg.SharesEdges(p) {
		t.Error("single path should not share edges")
	}
}

// TestFindLinkages_PathLengthLimit tests that short limits drop the bridge
func TestFindLinkages_PathLengthLimit(t *testing.T) {
	m, rs := trisaccharide(t)

	tests := []struct {
		max  int
		want int
	}{
		{1, 0},
		{2, 2},
		{8, 2},
	}
	for _, tt := range tests {
		res, err := FindLinkages(m, rs, tt.max)
		if err != nil {
			t.Fatalf("FindLinkages(%d) failed: %v", tt.max, err)
		}
		if res.Registry.Len() != tt.want {
			t.Errorf("max %d: Expected %d paths, got %d", tt.max, tt.want, res.Registry.Len())
		}
		checkPaths(t, rs, res.Registry)
	}
}

// TestFindLinkages_Trisaccharide tests that paths stop at the first ring reached
func TestFindLinkages_Trisaccharide(t *testing.T) {
	m, rs := trisaccharide(t)
	res, err := FindLinkages(m, rs, 10)
	if err != nil {
		t.Fatalf("FindLinkages failed: %v", err)
	}
	reg := res.Registry
	if got := reg.PathsBetween(0, 1); len(got) != 1 {
		t.Errorf("Expected 1 path between rings 0 and 1, got %d", len(got))
	}
	if got := reg.PathsBetween(1, 2); len(got) != 1 {
		t.Errorf("Expected 1 path between rings 1 and 2, got %d", len(got))
	}
	if got := reg.PathsBetween(0, 2); len(got) != 0 {
		t.Errorf("Expected no path between rings 0 and 2, got %d", len(got))
	}
}

// TestFindLinkages_Unorientated tests that unorientated rings are ignored
func TestFindLinkages_Unorientated(t *testing.T) {
	m, rs := trisaccharide(t)
	rs[1].Orientation = rings.Unorientated

	res, err := FindLinkages(m, rs, 5)
	if err != nil {
		t.Fatalf("FindLinkages failed: %v", err)
	}
	if res.Registry.Len() != 0 {
		t.Errorf("Expected no paths, got %v", res.Registry.Paths())
	}
}

// TestFindLinkages_FusedRings tests that shared atoms never seed or end paths
func TestFindLinkages_FusedRings(t *testing.T) {
	m := moleculetest.Naphthalene()
	found, err := rings.FindSmallRings(m, 6)
	if err != nil {
		t.Fatalf("FindSmallRings failed: %v", err)
	}
	for i := range found.Rings {
		found.Rings[i].Orientation = rings.Forward
	}

	res, err := FindLinkages(m, found.Rings, 6)
	if err != nil {
		t.Fatalf("FindLinkages failed: %v", err)
	}
	if res.Registry.Len() != 0 {
		t.Errorf("Expected no paths across a fused bond, got %v", res.Registry.Paths())
	}
}

// TestFindLinkages_Checkpoint tests cancellation after the first ring
func TestFindLinkages_Checkpoint(t *testing.T) {
	m, rs := trisaccharide(t)
	f := Finder{
		MaxPathLength: 5,
		Checkpoint: func(p rings.Progress) bool {
			return p.Stage == rings.StageLinkages && p.Done < 1
		},
	}
	res, err := f.Find(m, rs)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if !res.Cancelled {
		t.Error("Expected cancelled result")
	}
	if res.Registry.Len() != 1 {
		t.Errorf("Expected only ring 0's path, got %d", res.Registry.Len())
	}
}

func TestFindLinkages_InvalidInput(t *testing.T) {
	m, rs := trisaccharide(t)
	if _, err := FindLinkages(m, rs, 0); !errors.Is(err, ErrInvalidMaxPathLength) {
		t.Errorf("Expected ErrInvalidMaxPathLength, got %v", err)
	}

	bad := []rings.SmallRing{rings.NewSmallRing(0, 1, 1000)}
	if _, err := FindLinkages(m, bad, 5); !errors.Is(err, molecule.ErrAtomOutOfRange) {
		t.Errorf("Expected ErrAtomOutOfRange, got %v", err)
	}
}

func TestIndexRings(t *testing.T) {
	rs := []rings.SmallRing{
		rings.NewSmallRing(0, 1, 2, 3),
		rings.NewSmallRing(3, 4, 5, 0),
	}
	idx := indexRings(rs)
	if idx.atomRing[4] != 1 || idx.atomRing[3] != 0 {
		t.Errorf("unexpected ring index %v", idx.atomRing)
	}
	shared := make([]int, 0)
	for a := range idx.shared {
		shared = append(shared, a)
	}
	slices.Sort(shared)
	if !slices.Equal(shared, []int{0, 3}) {
		t.Errorf("Expected shared atoms [0 3], got %v", shared)
	}
}
