package hlt

import (
	"math"
	"strings"
	"testing"

	"github.com/TuftsBCB/structure"
)

// testFrame builds a small frame by hand: three heavy residues, two
// light, two target, with CA and N atoms everywhere and the middle
// heavy residue labeled H1.
func testFrame() *Frame {
	chains := []byte("HHHLLTT")
	seq := []byte("AGAGAGA")
	fr := NewFrame(len(chains))
	for i := range chains {
		fr.Chain[i] = chains[i]
		fr.Seq[i] = seq[i]
		fr.Idx[i] = i + 1
		fr.Keys[i] = ResidueKey{Chain: string(chains[i]), Num: i + 1}
		x := float64(i)
		fr.SetAtom(i, 0, structure.Coords{X: x, Y: 0.5, Z: -1.25})
		fr.SetAtom(i, SlotCA, structure.Coords{X: x, Y: 1.5, Z: -0.25})
	}
	fr.CDR[LoopH1][1] = true
	fr.Scores = append(fr.Scores, Score{Name: "plddt", Value: 0.91})
	return fr
}

func framesEqual(t *testing.T, a, b *Frame) {
	t.Helper()
	if a.Len() != b.Len() {
		t.Fatalf("lengths differ: %d vs %d", a.Len(), b.Len())
	}
	if string(a.Chain) != string(b.Chain) {
		t.Errorf("chains differ: %s vs %s", a.Chain, b.Chain)
	}
	if string(a.Seq) != string(b.Seq) {
		t.Errorf("sequences differ: %s vs %s", a.Seq, b.Seq)
	}
	for i := 0; i < a.Len(); i++ {
		if a.Idx[i] != b.Idx[i] {
			t.Errorf("residue %d numbered %d vs %d", i, a.Idx[i], b.Idx[i])
		}
		for j := 0; j < NumAtomSlots; j++ {
			if a.Present[i][j] != b.Present[i][j] {
				t.Errorf("residue %d slot %d present %v vs %v",
					i, j, a.Present[i][j], b.Present[i][j])
				continue
			}
			if !a.Present[i][j] {
				continue
			}
			pa, pb := a.Coords[i][j], b.Coords[i][j]
			if math.Abs(pa.X-pb.X) > 1e-3 ||
				math.Abs(pa.Y-pb.Y) > 1e-3 ||
				math.Abs(pa.Z-pb.Z) > 1e-3 {
				t.Errorf("residue %d slot %d moved: %v vs %v", i, j, pa, pb)
			}
		}
	}
	for _, loop := range Loops() {
		for i := range a.CDR[loop] {
			if a.CDR[loop][i] != b.CDR[loop][i] {
				t.Errorf("loop %s residue %d: %v vs %v",
					loop, i, a.CDR[loop][i], b.CDR[loop][i])
			}
		}
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	fr := testFrame()
	got, err := ParseBytes(fr.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	framesEqual(t, fr, got)
	if len(got.Scores) != 1 || got.Scores[0].Name != "plddt" {
		t.Fatalf("scores did not survive the round trip: %v", got.Scores)
	}
	if math.Abs(got.Scores[0].Value-0.91) > 1e-9 {
		t.Fatalf("score value %f", got.Scores[0].Value)
	}
}

func TestWriteLabelFormat(t *testing.T) {
	fr := testFrame()
	out := string(fr.Bytes())
	if !strings.Contains(out, "REMARK PDBinfo-LABEL:    2 H1\n") {
		t.Fatalf("missing or misformatted label line in:\n%s", out)
	}
	if !strings.Contains(out, "SCORE plddt: 0.91\n") {
		t.Fatalf("missing score line in:\n%s", out)
	}
}

func TestParseRejectsBadChain(t *testing.T) {
	fr := testFrame()
	bad := strings.Replace(string(fr.Bytes()), "CA  ALA H", "CA  ALA A", 1)
	if _, err := ParseBytes([]byte(bad)); err == nil {
		t.Fatal("expected an error for chain A")
	}
}

func TestParseLabelOutOfRange(t *testing.T) {
	fr := testFrame()
	bad := strings.Replace(string(fr.Bytes()),
		"REMARK PDBinfo-LABEL:    2 H1",
		"REMARK PDBinfo-LABEL:   99 H1", 1)
	if _, err := ParseBytes([]byte(bad)); err == nil {
		t.Fatal("expected an error for a label outside the residue list")
	}
}

func TestParseDuplicateResolvesToFirst(t *testing.T) {
	// Two CA records with the same key: atoms resolve to the first.
	text := "" +
		"ATOM      1  CA  ALA H   1       1.000   2.000   3.000  1.00  0.00           C\n" +
		"ATOM      2  CA  GLY H   1       9.000   9.000   9.000  1.00  0.00           C\n"
	fr, err := ParseBytes([]byte(text))
	if err != nil {
		t.Fatal(err)
	}
	if fr.Len() != 2 {
		t.Fatalf("got %d residues, want 2", fr.Len())
	}
	if pos, ok := fr.CA(0); !ok || pos.X != 1.0 {
		t.Fatalf("first residue CA = %v, %v", pos, ok)
	}
}

func TestDedupe(t *testing.T) {
	fr := testFrame()
	fr.Keys[2] = fr.Keys[1]
	deduped := fr.Dedupe()
	if deduped.Len() != fr.Len()-1 {
		t.Fatalf("got %d residues, want %d", deduped.Len(), fr.Len()-1)
	}
	// The first occurrence survives.
	if !deduped.CDR[LoopH1][1] {
		t.Fatal("kept residue lost its H1 label")
	}
	if deduped.ChainLen('H') != 2 {
		t.Fatalf("heavy chain has %d residues, want 2", deduped.ChainLen('H'))
	}
}

func TestReorderTHL(t *testing.T) {
	fr := testFrame()
	re := fr.ReorderTHL()
	if got := string(re.Chain); got != "TTHHHLL" {
		t.Fatalf("chain order %s, want TTHHHLL", got)
	}
	// H residue 2's label follows it to its new position.
	if !re.CDR[LoopH1][3] {
		t.Fatal("H1 label did not follow its residue")
	}
	if fr.CDR[LoopH1][3] {
		t.Fatal("reorder modified the original frame")
	}
}

func TestReorderTHLWithoutTarget(t *testing.T) {
	chains := []byte("HHL")
	fr := NewFrame(len(chains))
	copy(fr.Chain, chains)
	re := fr.ReorderTHL()
	if got := string(re.Chain); got != "HHL" {
		t.Fatalf("chain order %s, want HHL", got)
	}
}

func TestRenumber(t *testing.T) {
	fr := testFrame()
	fr.Idx = []int{3, 5, 7, 9, 11, 13, 15}
	re := fr.Renumber()
	for i, n := range re.Idx {
		if n != i+1 {
			t.Fatalf("residue %d numbered %d", i, n)
		}
	}
}

func TestThread(t *testing.T) {
	fr := testFrame()
	if err := fr.Thread([]byte("MKVLQ")); err != nil {
		t.Fatal(err)
	}
	if got := string(fr.Seq); got != "MKVLQGA" {
		t.Fatalf("sequence %s after threading", got)
	}
	if err := fr.Thread([]byte("MK")); err == nil {
		t.Fatal("expected a length error")
	}
	if err := fr.Thread([]byte("MKVL1")); err == nil {
		t.Fatal("expected an unknown residue error")
	}
}

func TestMasks(t *testing.T) {
	fr := testFrame()
	fw := fr.FrameworkMask()
	want := []bool{true, false, true, true, true, false, false}
	for i := range want {
		if fw[i] != want[i] {
			t.Fatalf("framework mask %v, want %v", fw, want)
		}
	}
	tm := fr.TargetMask()
	if !tm[5] || !tm[6] || tm[0] {
		t.Fatalf("target mask %v", tm)
	}
	cdr := fr.CDRUnionMask()
	if !cdr[1] || cdr[0] {
		t.Fatalf("cdr mask %v", cdr)
	}
}

func TestCheckCleanFile(t *testing.T) {
	fr := testFrame()
	issues, err := Check(strings.NewReader(string(fr.Bytes())))
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestCheckFindsProblems(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"missing heavy chain",
			"ATOM      1  CA  ALA L   1       1.000   2.000   3.000  1.00  0.00           C\n" +
				"REMARK PDBinfo-LABEL:    1 L1\n",
			"missing heavy chain",
		},
		{
			"bad chain id",
			"ATOM      1  CA  ALA X   1       1.000   2.000   3.000  1.00  0.00           C\n" +
				"REMARK PDBinfo-LABEL:    1 H1\n",
			"invalid chain ids",
		},
		{
			"wrong chain order",
			"ATOM      1  CA  ALA L   1       1.000   2.000   3.000  1.00  0.00           C\n" +
				"ATOM      2  CA  ALA H   2       4.000   5.000   6.000  1.00  0.00           C\n" +
				"REMARK PDBinfo-LABEL:    2 H1\n",
			"not in H, L, T order",
		},
		{
			"non-contiguous numbering",
			"ATOM      1  CA  ALA H   1       1.000   2.000   3.000  1.00  0.00           C\n" +
				"ATOM      2  CA  ALA H   5       4.000   5.000   6.000  1.00  0.00           C\n" +
				"REMARK PDBinfo-LABEL:    1 H1\n",
			"not contiguous",
		},
		{
			"no labels",
			"ATOM      1  CA  ALA H   1       1.000   2.000   3.000  1.00  0.00           C\n",
			"no CDR annotations",
		},
	}
	for _, test := range tests {
		issues, err := Check(strings.NewReader(test.text))
		if err != nil {
			t.Fatalf("%s: %s", test.name, err)
		}
		found := false
		for _, issue := range issues {
			if strings.Contains(issue, test.want) {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: issues %v do not mention %q",
				test.name, issues, test.want)
		}
	}
}
