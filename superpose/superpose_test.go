package superpose

import (
	"math"
	"testing"

	"github.com/RosettaCommons/RFantibody/hlt"
	"github.com/TuftsBCB/structure"
)

// frameFromCoords builds a single-chain frame with one alpha carbon
// per residue at the given positions.
func frameFromCoords(chain byte, ps []structure.Coords) *hlt.Frame {
	fr := hlt.NewFrame(len(ps))
	for i, p := range ps {
		fr.Chain[i] = chain
		fr.Seq[i] = 'A'
		fr.Idx[i] = i + 1
		fr.SetAtom(i, hlt.SlotCA, p)
	}
	return fr
}

// helix traces n points along an idealized alpha helix so the test
// geometry is non-degenerate.
func helix(n int) []structure.Coords {
	ps := make([]structure.Coords, n)
	for i := range ps {
		t := float64(i) * 100.0 * math.Pi / 180.0
		ps[i] = structure.Coords{
			X: 2.3 * math.Cos(t),
			Y: 2.3 * math.Sin(t),
			Z: 1.5 * float64(i),
		}
	}
	return ps
}

// rigidMove rotates each point about the z axis and translates it.
func rigidMove(ps []structure.Coords, deg, tx, ty, tz float64) []structure.Coords {
	rad := deg * math.Pi / 180.0
	cos, sin := math.Cos(rad), math.Sin(rad)
	out := make([]structure.Coords, len(ps))
	for i, p := range ps {
		out[i] = structure.Coords{
			X: cos*p.X - sin*p.Y + tx,
			Y: sin*p.X + cos*p.Y + ty,
			Z: p.Z + tz,
		}
	}
	return out
}

func TestAlignRecoversRigidTransform(t *testing.T) {
	ps := helix(20)
	ref := frameFromCoords('T', ps)
	moving := frameFromCoords('T', rigidMove(ps, 73.0, 5.0, -3.0, 12.0))

	aligned, err := AlignToSubset(moving, ref, Target)
	if err != nil {
		t.Fatal(err)
	}
	if !aligned {
		t.Fatal("alignment was skipped")
	}
	rmsd, err := PrealignedRMSD(moving, ref, moving.AllMask())
	if err != nil {
		t.Fatal(err)
	}
	if rmsd > 1e-6 {
		t.Fatalf("RMSD %g after aligning a rigid copy, want ~0", rmsd)
	}
}

func TestAlignOnFrameworkOnly(t *testing.T) {
	// A binder whose CDR moved: framework alignment should recover the
	// rigid transform exactly, leaving the CDR displacement visible.
	ps := helix(24)
	ref := frameFromCoords('H', ps)
	for i := 8; i < 12; i++ {
		ref.CDR[hlt.LoopH1][i] = true
	}

	moved := rigidMove(ps, -40.0, 1.0, 2.0, -3.0)
	moving := frameFromCoords('H', moved)
	for i := 8; i < 12; i++ {
		moving.CDR[hlt.LoopH1][i] = true
		// Push the loop away from its reference conformation.
		moving.Coords[i][hlt.SlotCA].X += 2.0
	}

	aligned, err := AlignToSubset(moving, ref, Framework)
	if err != nil {
		t.Fatal(err)
	}
	if !aligned {
		t.Fatal("alignment was skipped")
	}

	fw, err := PrealignedRMSD(moving, ref, moving.FrameworkMask())
	if err != nil {
		t.Fatal(err)
	}
	if fw > 1e-6 {
		t.Fatalf("framework RMSD %g, want ~0", fw)
	}
	cdr, err := PrealignedRMSD(moving, ref, moving.CDRUnionMask())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(cdr-2.0) > 1e-6 {
		t.Fatalf("CDR RMSD %g, want 2.0", cdr)
	}
}

func TestAlignSkipsOnSizeMismatch(t *testing.T) {
	ref := frameFromCoords('T', helix(50))
	moving := frameFromCoords('T', helix(48))
	before := make([]structure.Coords, moving.Len())
	for i := range before {
		before[i] = moving.Coords[i][hlt.SlotCA]
	}

	aligned, err := AlignToSubset(moving, ref, Target)
	if err != nil {
		t.Fatal(err)
	}
	if aligned {
		t.Fatal("mismatched subsets should skip the alignment")
	}
	for i := range before {
		if moving.Coords[i][hlt.SlotCA] != before[i] {
			t.Fatalf("skipped alignment moved residue %d", i)
		}
	}
}

func TestAlignSkipsOnEmptySubset(t *testing.T) {
	ref := frameFromCoords('H', helix(10))
	moving := frameFromCoords('H', helix(10))
	aligned, err := AlignToSubset(moving, ref, Target)
	if err != nil {
		t.Fatal(err)
	}
	if aligned {
		t.Fatal("no target chain, alignment should skip")
	}
}

func TestPrealignedRMSD(t *testing.T) {
	ps := helix(10)
	a := frameFromCoords('T', ps)

	shifted := make([]structure.Coords, len(ps))
	for i, p := range ps {
		shifted[i] = structure.Coords{X: p.X + 3.0, Y: p.Y, Z: p.Z}
	}
	b := frameFromCoords('T', shifted)

	rmsd, err := PrealignedRMSD(a, b, a.AllMask())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(rmsd-3.0) > 1e-9 {
		t.Fatalf("RMSD %g, want 3.0", rmsd)
	}
}

func TestAlignMatchesMinimalRMSD(t *testing.T) {
	// Aligning on the same subset the RMSD is measured over gives the
	// optimal superposition, so the result must agree with the
	// superposition RMSD computed directly on the coordinate sets.
	ps := helix(12)
	jittered := make([]structure.Coords, len(ps))
	for i, p := range ps {
		jittered[i] = structure.Coords{
			X: p.X + 0.3*math.Sin(float64(i)),
			Y: p.Y + 0.2*math.Cos(float64(3*i)),
			Z: p.Z,
		}
	}
	ref := frameFromCoords('T', ps)
	moving := frameFromCoords('T', rigidMove(jittered, 25.0, -2.0, 4.0, 1.0))

	aligned, err := AlignToSubset(moving, ref, Target)
	if err != nil {
		t.Fatal(err)
	}
	if !aligned {
		t.Fatal("alignment was skipped")
	}
	got, err := PrealignedRMSD(moving, ref, moving.AllMask())
	if err != nil {
		t.Fatal(err)
	}
	want := structure.RMSD(jittered, ps)
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("aligned RMSD %g, superposition RMSD says %g", got, want)
	}
}

func TestPrealignedRMSDShapeErrors(t *testing.T) {
	a := frameFromCoords('T', helix(5))
	b := frameFromCoords('T', helix(6))
	if _, err := PrealignedRMSD(a, b, a.AllMask()); err == nil {
		t.Fatal("expected a length mismatch error")
	}

	b = frameFromCoords('T', helix(5))
	if _, err := PrealignedRMSD(a, b, make([]bool, 3)); err == nil {
		t.Fatal("expected a mask cardinality error")
	}
	if _, err := PrealignedRMSD(a, b, make([]bool, 5)); err == nil {
		t.Fatal("expected an empty selection error")
	}
}
