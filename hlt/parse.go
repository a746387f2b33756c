package hlt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/TuftsBCB/structure"
)

// FormatError describes HLT text that violates the format's grammar or
// labeling conventions. Line is 1-based, or 0 when the problem is not
// tied to a single line.
type FormatError struct {
	Line int
	Msg  string
}

func (e FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("hlt: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("hlt: %s", e.Msg)
}

// ReadFile parses the HLT file at path.
func ReadFile(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// ParseBytes parses HLT text held in memory, e.g. a Quiver record.
func ParseBytes(b []byte) (*Frame, error) {
	return Parse(bytes.NewReader(b))
}

// Parse reads HLT-convention PDB text into a frame.
//
// Residue identity is driven by alpha carbons: every ATOM record named
// CA introduces one residue, keyed by chain id and residue number, in
// file order. Chain ids must be H, L or T. All other ATOM records fill
// the atom slots of the residue matching their key; records for
// unknown residue types or atom names are ignored. When a key repeats,
// atoms resolve to its first occurrence.
//
// 'REMARK PDBinfo-LABEL:' trailers assign CDR loop membership by
// 1-based residue index. 'SCORE <name>: <value>' trailers become the
// frame's score list.
func Parse(r io.Reader) (*Frame, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return parseLines(lines)
}

func parseLines(lines []string) (*Frame, error) {
	// First pass: one residue per CA record.
	type residue struct {
		key  ResidueKey
		name string
	}
	var residues []residue
	lookup := make(map[ResidueKey]int)
	for i, line := range lines {
		if !strings.HasPrefix(line, "ATOM") {
			continue
		}
		if len(line) < 54 {
			return nil, FormatError{i + 1, "short ATOM record"}
		}
		if strings.TrimSpace(line[12:16]) != "CA" {
			continue
		}
		chain := line[21]
		if chain != 'H' && chain != 'L' && chain != 'T' {
			return nil, FormatError{i + 1,
				fmt.Sprintf("chain %q is not one of H, L, T", string(chain))}
		}
		num, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
		if err != nil {
			return nil, FormatError{i + 1,
				fmt.Sprintf("bad residue number %q", strings.TrimSpace(line[22:26]))}
		}
		key := ResidueKey{Chain: string(chain), Num: num}
		if _, ok := lookup[key]; !ok {
			lookup[key] = len(residues)
		}
		residues = append(residues, residue{key, strings.TrimSpace(line[17:20])})
	}

	fr := NewFrame(len(residues))
	for i, res := range residues {
		fr.Chain[i] = res.key.Chain[0]
		fr.Idx[i] = res.key.Num
		fr.Keys[i] = res.key
		if one, ok := AminoThreeToOne[res.name]; ok {
			fr.Seq[i] = one
		} else {
			fr.Seq[i] = UnknownResidue
		}
	}

	// Second pass: atom coordinates and trailer lines.
	labels := 0
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "ATOM"):
			chain := line[21]
			num, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
			if err != nil {
				return nil, FormatError{i + 1,
					fmt.Sprintf("bad residue number %q", strings.TrimSpace(line[22:26]))}
			}
			ri, ok := lookup[ResidueKey{Chain: string(chain), Num: num}]
			if !ok {
				continue
			}
			slot := SlotIndex(strings.TrimSpace(line[17:20]),
				strings.TrimSpace(line[12:16]))
			if slot < 0 || fr.Present[ri][slot] {
				continue
			}
			pos, err := parseCoords(line)
			if err != nil {
				return nil, FormatError{i + 1, err.Error()}
			}
			fr.SetAtom(ri, slot, pos)

		case strings.HasPrefix(line, "REMARK PDBinfo-LABEL"):
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return nil, FormatError{i + 1, "malformed PDBinfo-LABEL remark"}
			}
			num, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, FormatError{i + 1,
					fmt.Sprintf("bad label residue number %q", fields[2])}
			}
			loop := Loop(strings.ToUpper(fields[3]))
			if !ValidLoop(loop) {
				return nil, FormatError{i + 1,
					fmt.Sprintf("unknown loop name %q", fields[3])}
			}
			if num < 1 || num > fr.Len() {
				return nil, FormatError{i + 1,
					fmt.Sprintf("label residue %d outside 1..%d", num, fr.Len())}
			}
			fr.CDR[loop][num-1] = true
			labels++

		case strings.HasPrefix(line, "SCORE "):
			parts := strings.SplitN(line[len("SCORE "):], ":", 2)
			if len(parts) != 2 {
				return nil, FormatError{i + 1, "SCORE line has no ':'"}
			}
			val, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if err != nil {
				return nil, FormatError{i + 1,
					fmt.Sprintf("bad score value %q", strings.TrimSpace(parts[1]))}
			}
			fr.Scores = append(fr.Scores, Score{
				Name:  strings.TrimSpace(parts[0]),
				Value: val,
			})
		}
	}

	// Every label line must land on its own residue, or the remark
	// indexing does not agree with the residue list.
	marked := 0
	for _, in := range fr.CDRUnionMask() {
		if in {
			marked++
		}
	}
	if marked != labels {
		return nil, FormatError{0,
			fmt.Sprintf("%d label lines mark %d residues", labels, marked)}
	}
	return fr, nil
}

func parseCoords(line string) (structure.Coords, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	if err != nil {
		return structure.Coords{}, fmt.Errorf("bad x coordinate %q",
			strings.TrimSpace(line[30:38]))
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	if err != nil {
		return structure.Coords{}, fmt.Errorf("bad y coordinate %q",
			strings.TrimSpace(line[38:46]))
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	if err != nil {
		return structure.Coords{}, fmt.Errorf("bad z coordinate %q",
			strings.TrimSpace(line[46:54]))
	}
	return structure.Coords{X: x, Y: y, Z: z}, nil
}
