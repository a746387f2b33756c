package hlt

import (
	"fmt"
	"math"

	"github.com/TuftsBCB/structure"
)

// Loop names one of the six CDR loops: H1, H2, H3 on the heavy chain
// and L1, L2, L3 on the light chain.
type Loop string

const (
	LoopH1 Loop = "H1"
	LoopH2 Loop = "H2"
	LoopH3 Loop = "H3"
	LoopL1 Loop = "L1"
	LoopL2 Loop = "L2"
	LoopL3 Loop = "L3"
)

// Loops returns the six CDR loop names in their canonical order.
func Loops() []Loop {
	return []Loop{LoopH1, LoopH2, LoopH3, LoopL1, LoopL2, LoopL3}
}

// ValidLoop reports whether name is one of the six CDR loop names.
func ValidLoop(name Loop) bool {
	switch name {
	case LoopH1, LoopH2, LoopH3, LoopL1, LoopL2, LoopL3:
		return true
	}
	return false
}

// ResidueKey identifies a residue by the chain id and author-assigned
// residue number it carried in its source file. Keys are kept on every
// frame for traceability and for duplicate elision.
type ResidueKey struct {
	Chain string
	Num   int
}

// Score is one 'SCORE <name>: <value>' trailer from an HLT file.
type Score struct {
	Name  string
	Value float64
}

// Frame is the canonical in-memory representation of one structure.
// All per-residue slices have equal length, chains appear as one run
// of 'H', then 'L', then 'T' (each optional), and residue numbers are
// 1-based and contiguous across the whole frame once a structure has
// been through numbering conversion.
//
// Coordinates use a fixed 14-slot heavy-atom layout per residue (see
// AtomSlots); absent atoms hold NaN in all three coordinates and are
// false in Present.
type Frame struct {
	Chain   []byte
	Seq     []byte
	Coords  [][NumAtomSlots]structure.Coords
	Present [][NumAtomSlots]bool
	Idx     []int
	Keys    []ResidueKey
	CDR     map[Loop][]bool
	Scores  []Score
}

// NewFrame allocates a frame for n residues with every atom slot
// marked absent and every CDR membership vector zeroed.
func NewFrame(n int) *Frame {
	fr := &Frame{
		Chain:   make([]byte, n),
		Seq:     make([]byte, n),
		Coords:  make([][NumAtomSlots]structure.Coords, n),
		Present: make([][NumAtomSlots]bool, n),
		Idx:     make([]int, n),
		Keys:    make([]ResidueKey, n),
		CDR:     make(map[Loop][]bool, 6),
	}
	nan := math.NaN()
	for i := range fr.Coords {
		for j := 0; j < NumAtomSlots; j++ {
			fr.Coords[i][j] = structure.Coords{X: nan, Y: nan, Z: nan}
		}
	}
	for _, loop := range Loops() {
		fr.CDR[loop] = make([]bool, n)
	}
	return fr
}

// Len returns the number of residues in the frame.
func (fr *Frame) Len() int {
	return len(fr.Chain)
}

// ChainLen returns the number of residues on the given chain.
func (fr *Frame) ChainLen(chain byte) int {
	n := 0
	for _, c := range fr.Chain {
		if c == chain {
			n++
		}
	}
	return n
}

// SetAtom stores an atom position in the given residue and slot and
// marks the slot present.
func (fr *Frame) SetAtom(res, slot int, pos structure.Coords) {
	fr.Coords[res][slot] = pos
	fr.Present[res][slot] = true
}

// CA returns the alpha carbon position of residue i and whether it is
// an observed atom.
func (fr *Frame) CA(i int) (structure.Coords, bool) {
	return fr.Coords[i][SlotCA], fr.Present[i][SlotCA]
}

// CDRUnionMask returns the positions belonging to any CDR loop.
func (fr *Frame) CDRUnionMask() []bool {
	mask := make([]bool, fr.Len())
	for _, loop := range Loops() {
		for i, in := range fr.CDR[loop] {
			if in {
				mask[i] = true
			}
		}
	}
	return mask
}

// FrameworkMask returns the positions on the heavy or light chain that
// belong to no CDR loop.
func (fr *Frame) FrameworkMask() []bool {
	cdr := fr.CDRUnionMask()
	mask := make([]bool, fr.Len())
	for i, c := range fr.Chain {
		mask[i] = (c == 'H' || c == 'L') && !cdr[i]
	}
	return mask
}

// TargetMask returns the positions on the target chain.
func (fr *Frame) TargetMask() []bool {
	mask := make([]bool, fr.Len())
	for i, c := range fr.Chain {
		mask[i] = c == 'T'
	}
	return mask
}

// AllMask returns a mask selecting every position.
func (fr *Frame) AllMask() []bool {
	mask := make([]bool, fr.Len())
	for i := range mask {
		mask[i] = true
	}
	return mask
}

// Copy returns a deep copy of the frame.
func (fr *Frame) Copy() *Frame {
	order := make([]int, fr.Len())
	for i := range order {
		order[i] = i
	}
	return fr.gather(order)
}

// gather builds a new frame from the residues of fr selected by order,
// in that order. Scores carry over unchanged.
func (fr *Frame) gather(order []int) *Frame {
	nf := NewFrame(len(order))
	for ni, oi := range order {
		nf.Chain[ni] = fr.Chain[oi]
		nf.Seq[ni] = fr.Seq[oi]
		nf.Coords[ni] = fr.Coords[oi]
		nf.Present[ni] = fr.Present[oi]
		nf.Idx[ni] = fr.Idx[oi]
		nf.Keys[ni] = fr.Keys[oi]
		for _, loop := range Loops() {
			nf.CDR[loop][ni] = fr.CDR[loop][oi]
		}
	}
	nf.Scores = append(nf.Scores, fr.Scores...)
	return nf
}

// Dedupe returns a new frame with runs of residues sharing a source
// key collapsed to the first occurrence. Structure files occasionally
// repeat a residue; only adjacent repeats are considered duplicates.
func (fr *Frame) Dedupe() *Frame {
	keep := make([]int, 0, fr.Len())
	for i := 0; i < fr.Len(); i++ {
		if i == 0 || fr.Keys[i] != fr.Keys[i-1] {
			keep = append(keep, i)
		}
	}
	return fr.gather(keep)
}

// ReorderTHL returns a new frame with the target chain first, then
// heavy, then light. The structure prediction stage expects its input
// in this order. Frames without a target chain come back as plain
// copies. The reorder is stable within each chain.
func (fr *Frame) ReorderTHL() *Frame {
	order := make([]int, 0, fr.Len())
	for _, want := range []byte{'T', 'H', 'L'} {
		for i, c := range fr.Chain {
			if c == want {
				order = append(order, i)
			}
		}
	}
	if len(order) != fr.Len() {
		// Chains outside H, L, T keep their relative position at the end.
		seen := make([]bool, fr.Len())
		for _, i := range order {
			seen[i] = true
		}
		for i := range fr.Chain {
			if !seen[i] {
				order = append(order, i)
			}
		}
	}
	if fr.ChainLen('T') == 0 {
		return fr.Copy()
	}
	return fr.gather(order)
}

// Renumber returns a new frame with residue numbers rewritten to the
// contiguous run 1..L.
func (fr *Frame) Renumber() *Frame {
	nf := fr.Copy()
	for i := range nf.Idx {
		nf.Idx[i] = i + 1
	}
	return nf
}

// Thread overwrites the frame's binder sequence with a designed one.
// The designed sequence must cover exactly the heavy and light chain
// residues, which are the leading run of the frame in H/L/T order.
func (fr *Frame) Thread(seq []byte) error {
	binder := fr.ChainLen('H') + fr.ChainLen('L')
	if len(seq) != binder {
		return fmt.Errorf("designed sequence has %d residues but the binder has %d",
			len(seq), binder)
	}
	for _, aa := range seq {
		if _, ok := AminoOneToThree[aa]; !ok {
			return fmt.Errorf("designed sequence contains unknown residue %q", aa)
		}
	}
	copy(fr.Seq, seq)
	return nil
}
