package chothia

import (
	"strings"
	"testing"

	"github.com/RosettaCommons/RFantibody/hlt"
	"github.com/RosettaCommons/RFantibody/pdb"
	"github.com/TuftsBCB/structure"
)

// caAtom builds an alpha carbon record for the tests; coordinates
// encode the source residue number so moves are detectable.
func caAtom(chain string, num int, icode byte) pdb.Atom {
	return pdb.Atom{
		Chain:   chain,
		ResNum:  num,
		ICode:   icode,
		ResName: "ALA",
		Name:    "CA",
		Coords:  structure.Coords{X: float64(num), Y: 0, Z: 0},
	}
}

// chainAtoms emits one CA per residue number in [lo, hi].
func chainAtoms(chain string, lo, hi int) []pdb.Atom {
	var atoms []pdb.Atom
	for n := lo; n <= hi; n++ {
		atoms = append(atoms, caAtom(chain, n, 0))
	}
	return atoms
}

func TestConvertRequiresAChain(t *testing.T) {
	_, err := Convert(chainAtoms("A", 1, 5), Options{})
	if err != ErrNoChains {
		t.Fatalf("got %v, want ErrNoChains", err)
	}
}

func TestConvertOrdersAndRenumbers(t *testing.T) {
	var atoms []pdb.Atom
	// File order: target first, then light, then heavy; the output
	// must still come out H, L, T.
	atoms = append(atoms, chainAtoms("X", 1, 4)...)
	atoms = append(atoms, chainAtoms("B", 1, 5)...)
	atoms = append(atoms, chainAtoms("A", 1, 6)...)

	fr, err := Convert(atoms, Options{Heavy: "A", Light: "B", Targets: []string{"X"}})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(fr.Chain); got != "HHHHHHLLLLLTTTT" {
		t.Fatalf("chain layout %s", got)
	}
	for i, n := range fr.Idx {
		if n != i+1 {
			t.Fatalf("residue %d numbered %d", i, n)
		}
	}
	// Source identity survives in the keys.
	if fr.Keys[0] != (hlt.ResidueKey{Chain: "A", Num: 1}) {
		t.Fatalf("first key %+v", fr.Keys[0])
	}
	if fr.Keys[14] != (hlt.ResidueKey{Chain: "X", Num: 4}) {
		t.Fatalf("last key %+v", fr.Keys[14])
	}
}

func TestConvertCDRBoundaries(t *testing.T) {
	fr, err := Convert(chainAtoms("A", 90, 110), Options{Heavy: "A"})
	if err != nil {
		t.Fatal(err)
	}
	// H3 spans native 95-102 inclusive.
	inH3 := make(map[int]bool)
	for i, in := range fr.CDR[hlt.LoopH3] {
		if in {
			inH3[fr.Keys[i].Num] = true
		}
	}
	for n := 95; n <= 102; n++ {
		if !inH3[n] {
			t.Errorf("native residue %d missing from H3", n)
		}
	}
	if inH3[94] || inH3[103] {
		t.Errorf("H3 bleeds outside 95-102: %v", inH3)
	}
}

func TestConvertLightLoops(t *testing.T) {
	fr, err := Convert(chainAtoms("B", 20, 100), Options{Light: "B"})
	if err != nil {
		t.Fatal(err)
	}
	counts := map[hlt.Loop]int{}
	for _, loop := range hlt.Loops() {
		for _, in := range fr.CDR[loop] {
			if in {
				counts[loop]++
			}
		}
	}
	// L1 24-34, L2 50-56, L3 89-97; no heavy loop fires on a light chain.
	if counts[hlt.LoopL1] != 11 || counts[hlt.LoopL2] != 7 || counts[hlt.LoopL3] != 9 {
		t.Fatalf("light loop sizes %v", counts)
	}
	if counts[hlt.LoopH1]+counts[hlt.LoopH2]+counts[hlt.LoopH3] != 0 {
		t.Fatalf("heavy loops on a light chain: %v", counts)
	}
}

func TestConvertCrop(t *testing.T) {
	fr, err := Convert(chainAtoms("A", 1, 130), Options{Heavy: "A"})
	if err != nil {
		t.Fatal(err)
	}
	// Default heavy crop keeps native 1-115.
	if fr.Len() != 115 {
		t.Fatalf("got %d residues, want 115", fr.Len())
	}
	if fr.Keys[fr.Len()-1].Num != 115 {
		t.Fatalf("last kept residue is native %d", fr.Keys[fr.Len()-1].Num)
	}

	fr, err = Convert(chainAtoms("A", 1, 130), Options{Heavy: "A", WholeFab: true})
	if err != nil {
		t.Fatal(err)
	}
	if fr.Len() != 130 {
		t.Fatalf("whole Fab kept %d residues, want 130", fr.Len())
	}

	fr, err = Convert(chainAtoms("A", 1, 130), Options{Heavy: "A", HCrop: 100})
	if err != nil {
		t.Fatal(err)
	}
	if fr.Len() != 100 {
		t.Fatalf("custom crop kept %d residues, want 100", fr.Len())
	}
}

func TestConvertInsertionCodes(t *testing.T) {
	// Chothia H3 insertions: 100, 100A, 100B are three residues.
	atoms := []pdb.Atom{
		caAtom("A", 100, 0),
		caAtom("A", 100, 'A'),
		caAtom("A", 100, 'B'),
		caAtom("A", 101, 0),
	}
	fr, err := Convert(atoms, Options{Heavy: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if fr.Len() != 4 {
		t.Fatalf("got %d residues, want 4", fr.Len())
	}
	for _, in := range fr.CDR[hlt.LoopH3] {
		if !in {
			t.Fatal("every insertion at native 100/101 belongs to H3")
		}
	}
}

func TestConvertCollapsesRepeatedKeys(t *testing.T) {
	atoms := []pdb.Atom{
		caAtom("A", 1, 0),
		caAtom("A", 2, 0),
		caAtom("A", 2, 0),
		caAtom("A", 3, 0),
	}
	fr, err := Convert(atoms, Options{Heavy: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if fr.Len() != 3 {
		t.Fatalf("got %d residues, want 3", fr.Len())
	}
}

func TestConvertSkipsNonStandardResidues(t *testing.T) {
	atoms := []pdb.Atom{
		caAtom("A", 1, 0),
		{Chain: "A", ResNum: 2, ResName: "HOH", Name: "O"},
		caAtom("A", 3, 0),
	}
	fr, err := Convert(atoms, Options{Heavy: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if fr.Len() != 2 {
		t.Fatalf("got %d residues, want 2", fr.Len())
	}
}

func TestConvertTargetCrop(t *testing.T) {
	fr, err := Convert(chainAtoms("X", 1, 50), Options{
		Targets: []string{"X"},
		TCrop:   "X:10-20",
	})
	if err != nil {
		t.Fatal(err)
	}
	if fr.Len() != 11 {
		t.Fatalf("got %d residues, want 11", fr.Len())
	}
	if fr.Keys[0].Num != 10 || fr.Keys[10].Num != 20 {
		t.Fatalf("kept native %d..%d", fr.Keys[0].Num, fr.Keys[10].Num)
	}
	if fr.ChainLen('T') != fr.Len() {
		t.Fatal("target residues not labeled T")
	}
}

func TestConvertIdempotentOnCanonicalInput(t *testing.T) {
	// Converting an already canonical Fv changes nothing but the keys.
	fr, err := Convert(chainAtoms("H", 1, 110), Options{Heavy: "H"})
	if err != nil {
		t.Fatal(err)
	}
	again, err := Convert(frameAtoms(fr), Options{Heavy: "H"})
	if err != nil {
		t.Fatal(err)
	}
	if again.Len() != fr.Len() {
		t.Fatalf("length changed: %d vs %d", again.Len(), fr.Len())
	}
	for _, loop := range hlt.Loops() {
		for i := range fr.CDR[loop] {
			if fr.CDR[loop][i] != again.CDR[loop][i] {
				t.Fatalf("loop %s changed at %d", loop, i)
			}
		}
	}
}

// frameAtoms flattens a frame back to raw CA atoms.
func frameAtoms(fr *hlt.Frame) []pdb.Atom {
	var atoms []pdb.Atom
	for i := 0; i < fr.Len(); i++ {
		pos, ok := fr.CA(i)
		if !ok {
			continue
		}
		atoms = append(atoms, pdb.Atom{
			Chain:   string(fr.Chain[i]),
			ResNum:  fr.Idx[i],
			ResName: hlt.AminoOneToThree[fr.Seq[i]],
			Name:    "CA",
			Coords:  pos,
		})
	}
	return atoms
}

func TestParseTCrop(t *testing.T) {
	ranges, warnings, err := ParseTCrop("X:1-10, Y:5-20", []string{"X", "Y"})
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings %v", warnings)
	}
	if ranges["X"] != [2]int{1, 10} || ranges["Y"] != [2]int{5, 20} {
		t.Fatalf("ranges %v", ranges)
	}
}

func TestParseTCropWarnsOnNonTarget(t *testing.T) {
	ranges, warnings, err := ParseTCrop("Z:1-10", []string{"X"})
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 0 {
		t.Fatalf("ranges %v", ranges)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "Z") {
		t.Fatalf("warnings %v", warnings)
	}
}

func TestParseTCropErrors(t *testing.T) {
	for _, spec := range []string{"X", "X:1", "X:a-10", "X:1-b", "X:1:2"} {
		if _, _, err := ParseTCrop(spec, []string{"X"}); err == nil {
			t.Errorf("spec %q parsed without error", spec)
		}
	}
}
