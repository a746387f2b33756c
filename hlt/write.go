package hlt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Write emits the frame as HLT-convention PDB text: ATOM records in
// residue order with atom slots in layout order, then one
// 'REMARK PDBinfo-LABEL' line per CDR residue sorted by loop name and
// residue number, then any 'SCORE <name>: <value>' lines.
func (fr *Frame) Write(w io.Writer) error {
	buf := bufio.NewWriter(w)
	serial := 0
	for i := 0; i < fr.Len(); i++ {
		name3, ok := AminoOneToThree[fr.Seq[i]]
		if !ok {
			name3 = "UNK"
		}
		slots := AtomSlots(name3)
		for j, atom := range slots {
			if !fr.Present[i][j] {
				continue
			}
			serial++
			pos := fr.Coords[i][j]
			// Atom names here are at most three characters, so the
			// name field of columns 13-16 always starts blank.
			fmt.Fprintf(buf, "ATOM  %5d  %-3s %3s %c%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
				serial, atom, name3, fr.Chain[i], fr.Idx[i],
				pos.X, pos.Y, pos.Z, 1.0, 0.0, atom[:1])
		}
	}
	for _, loop := range Loops() {
		for i, in := range fr.CDR[loop] {
			if in {
				fmt.Fprintf(buf, "REMARK PDBinfo-LABEL: %4d %s\n", fr.Idx[i], loop)
			}
		}
	}
	for _, sc := range fr.Scores {
		fmt.Fprintf(buf, "SCORE %s: %s\n",
			sc.Name, strconv.FormatFloat(sc.Value, 'g', -1, 64))
	}
	return buf.Flush()
}

// Bytes renders the frame as HLT text in memory.
func (fr *Frame) Bytes() []byte {
	var buf bytes.Buffer
	fr.Write(&buf)
	return buf.Bytes()
}

// WriteFile writes the frame as an HLT file at path.
func WriteFile(path string, fr *Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fr.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
