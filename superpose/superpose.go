// Package superpose evaluates one structure against another by rigid
// body superposition. Alignment is restricted to a reference subset
// (the antibody framework or the target chain), paired positionally,
// and solved with the Kabsch algorithm on alpha carbons; the resulting
// rotation and translation are applied to every observed atom of the
// moving frame. RMSD over an arbitrary mask assumes the frames are
// already co-registered.
package superpose

import (
	"fmt"
	"math"

	"github.com/RosettaCommons/RFantibody/hlt"
	"github.com/TuftsBCB/structure"

	matrix "github.com/skelterjohn/go.matrix"
)

// Subset names the residue subset an alignment is computed on.
type Subset int

const (
	// Framework selects heavy and light chain residues outside every
	// CDR loop.
	Framework Subset = iota

	// Target selects the target chain residues.
	Target
)

func (s Subset) String() string {
	switch s {
	case Framework:
		return "framework"
	case Target:
		return "target"
	}
	return fmt.Sprintf("Subset(%d)", int(s))
}

// ShapeError reports a structural precondition violation: frames of
// different length, a mask of the wrong cardinality, or an empty
// selection.
type ShapeError struct {
	Msg string
}

func (e ShapeError) Error() string {
	return fmt.Sprintf("superpose: %s", e.Msg)
}

// minPairs is the smallest alpha carbon correspondence a rigid
// transform can be fit on.
const minPairs = 3

// AlignToSubset superimposes moving onto ref using the alpha carbons
// of the given subset and applies the resulting transform to all
// observed atoms of moving in place.
//
// Residue correspondence is positional: the i-th subset residue of
// moving pairs with the i-th subset residue of ref. No alignment is
// performed, and moving is untouched, when either subset is empty,
// when the subset sizes differ, or when fewer than three paired alpha
// carbons are observed on both sides; these return (false, nil) so
// callers can warn and continue.
func AlignToSubset(moving, ref *hlt.Frame, subset Subset) (bool, error) {
	maskM, err := subsetMask(moving, subset)
	if err != nil {
		return false, err
	}
	maskR, err := subsetMask(ref, subset)
	if err != nil {
		return false, err
	}
	nm, nr := count(maskM), count(maskR)
	if nm == 0 || nr == 0 {
		return false, nil
	}
	if nm != nr {
		return false, nil
	}

	// Pair subset alpha carbons positionally, keeping only pairs
	// observed on both sides.
	var xs, ys []structure.Coords
	im := indices(maskM)
	ir := indices(maskR)
	for k := range im {
		cm, okm := moving.CA(im[k])
		cr, okr := ref.CA(ir[k])
		if okm && okr {
			xs = append(xs, cm)
			ys = append(ys, cr)
		}
	}
	if len(xs) < minPairs {
		return false, nil
	}

	rot, cm, cr := kabsch(xs, ys)
	for i := 0; i < moving.Len(); i++ {
		for j := 0; j < hlt.NumAtomSlots; j++ {
			if !moving.Present[i][j] {
				continue
			}
			moving.Coords[i][j] = apply(rot, moving.Coords[i][j], cm, cr)
		}
	}
	return true, nil
}

// PrealignedRMSD computes the alpha carbon RMSD between two frames
// restricted to mask, with no superposition performed. The frames
// must have equal length, the mask must match that length, and it
// must select at least one residue.
func PrealignedRMSD(a, b *hlt.Frame, mask []bool) (float64, error) {
	if a.Len() != b.Len() {
		return 0, ShapeError{fmt.Sprintf(
			"frames have different lengths: %d vs %d", a.Len(), b.Len())}
	}
	if len(mask) != a.Len() {
		return 0, ShapeError{fmt.Sprintf(
			"mask has %d entries for %d residues", len(mask), a.Len())}
	}
	n := 0
	sum := 0.0
	for i, in := range mask {
		if !in {
			continue
		}
		ca, _ := a.CA(i)
		cb, _ := b.CA(i)
		dx := ca.X - cb.X
		dy := ca.Y - cb.Y
		dz := ca.Z - cb.Z
		sum += dx*dx + dy*dy + dz*dz
		n++
	}
	if n == 0 {
		return 0, ShapeError{"mask selects zero residues"}
	}
	return math.Sqrt(sum / float64(n)), nil
}

func subsetMask(fr *hlt.Frame, subset Subset) ([]bool, error) {
	switch subset {
	case Framework:
		return fr.FrameworkMask(), nil
	case Target:
		return fr.TargetMask(), nil
	}
	return nil, fmt.Errorf("superpose: unknown subset %d", int(subset))
}

func count(mask []bool) int {
	n := 0
	for _, in := range mask {
		if in {
			n++
		}
	}
	return n
}

func indices(mask []bool) []int {
	var out []int
	for i, in := range mask {
		if in {
			out = append(out, i)
		}
	}
	return out
}

// kabsch computes the least-squares rotation mapping the centered xs
// onto the centered ys, along with both centroids. With the centered
// 3xN matrices X and Y, the covariance C = X*Y^T is decomposed as
// C = U*S*V^T and the proper rotation is R = V*diag(1,1,d)*U^T with
// d = sign(det C), which guards against an improper (reflected)
// solution.
func kabsch(xs, ys []structure.Coords) (*matrix.DenseMatrix, structure.Coords, structure.Coords) {
	cx := centroid(xs)
	cy := centroid(ys)

	cols := len(xs)
	X := make([]float64, 3*cols)
	Y := make([]float64, 3*cols)
	for i := 0; i < cols; i++ {
		X[0*cols+i] = xs[i].X - cx.X
		X[1*cols+i] = xs[i].Y - cx.Y
		X[2*cols+i] = xs[i].Z - cx.Z

		Y[0*cols+i] = ys[i].X - cy.X
		Y[1*cols+i] = ys[i].Y - cy.Y
		Y[2*cols+i] = ys[i].Z - cy.Z
	}
	Xm := matrix.MakeDenseMatrix(X, 3, cols)
	Ym := matrix.MakeDenseMatrix(Y, 3, cols)

	C := must(Xm.TimesDense(Ym.Transpose()))
	d := 1.0
	if C.Det() < 0 {
		d = -1.0
	}
	U, _, V, err := C.SVD()
	if err != nil {
		panic(err)
	}
	adjust := matrix.Diagonal([]float64{1, 1, d})
	R := must(must(V.TimesDense(adjust)).TimesDense(U.Transpose()))
	return R, cx, cy
}

// apply rotates p about the moving centroid and translates it onto
// the reference centroid.
func apply(rot *matrix.DenseMatrix, p, cm, cr structure.Coords) structure.Coords {
	x := p.X - cm.X
	y := p.Y - cm.Y
	z := p.Z - cm.Z
	return structure.Coords{
		X: rot.Get(0, 0)*x + rot.Get(0, 1)*y + rot.Get(0, 2)*z + cr.X,
		Y: rot.Get(1, 0)*x + rot.Get(1, 1)*y + rot.Get(1, 2)*z + cr.Y,
		Z: rot.Get(2, 0)*x + rot.Get(2, 1)*y + rot.Get(2, 2)*z + cr.Z,
	}
}

// must panics if a dense matrix operation fails; dimension mismatches
// here are programmer errors.
func must(A *matrix.DenseMatrix, err error) *matrix.DenseMatrix {
	if err != nil {
		panic(err)
	}
	return A
}

func centroid(ps []structure.Coords) structure.Coords {
	var c structure.Coords
	for _, p := range ps {
		c.X += p.X
		c.Y += p.Y
		c.Z += p.Z
	}
	n := float64(len(ps))
	return structure.Coords{X: c.X / n, Y: c.Y / n, Z: c.Z / n}
}
