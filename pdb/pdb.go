// Package pdb reads raw, externally-numbered structure files: PDB text
// by column slicing and PDBx/mmCIF through the atom_site loop. Atoms
// come back exactly as the file declares them (chain ids, author
// residue numbers, insertion codes intact); normalization is the
// business of the chothia package.
package pdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/TuftsBCB/structure"
)

// Atom is one ATOM or HETATM record.
type Atom struct {
	// Chain is the author chain id. PDB text yields a single
	// character; mmCIF auth ids may be longer.
	Chain string

	// ResNum is the author residue number.
	ResNum int

	// ICode is the insertion code, or 0 when the record has none.
	ICode byte

	// ResName is the three letter residue type, e.g. "ALA".
	ResName string

	// Name is the atom name, e.g. "CA".
	Name string

	Coords structure.Coords
}

// ReadFile reads the atoms of a structure file, dispatching on the
// file extension: ".cif" and ".mmcif" are parsed as PDBx/mmCIF,
// everything else as PDB text. A trailing ".gz" means gzip.
func ReadFile(fileName string) ([]Atom, error) {
	name := fileName
	if path.Ext(name) == ".gz" {
		name = name[:len(name)-len(".gz")]
	}
	switch path.Ext(name) {
	case ".cif", ".mmcif":
		return ReadMMCIF(fileName)
	}
	return ReadPDB(fileName)
}

// ReadPDB reads the ATOM and HETATM records of a PDB file in file
// order. If the file name ends with ".gz", gzip decompression is used.
func ReadPDB(fileName string) ([]Atom, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if path.Ext(fileName) == ".gz" {
		gr, err := gzip.NewReader(reader)
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		reader = gr
	}
	return ReadPDBText(reader)
}

// ReadPDBText reads ATOM and HETATM records from PDB text.
func ReadPDBText(r io.Reader) ([]Atom, error) {
	var atoms []Atom
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if !strings.HasPrefix(line, "ATOM") &&
			!strings.HasPrefix(line, "HETATM") {
			continue
		}
		atom, err := parseAtomRecord(line)
		if err != nil {
			return nil, fmt.Errorf("pdb: line %d: %s", lineNum, err)
		}
		atoms = append(atoms, atom)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return atoms, nil
}

// parseAtomRecord slices one ATOM/HETATM line by the fixed PDB
// columns: atom name 13-16, residue name 18-20, chain 22, residue
// number 23-26, insertion code 27, coordinates 31-54.
func parseAtomRecord(line string) (Atom, error) {
	if len(line) < 54 {
		return Atom{}, fmt.Errorf("short record (%d columns)", len(line))
	}
	num, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return Atom{}, fmt.Errorf("bad residue number %q",
			strings.TrimSpace(line[22:26]))
	}
	icode := line[26]
	if icode == ' ' {
		icode = 0
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	if err != nil {
		return Atom{}, fmt.Errorf("bad x coordinate %q",
			strings.TrimSpace(line[30:38]))
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	if err != nil {
		return Atom{}, fmt.Errorf("bad y coordinate %q",
			strings.TrimSpace(line[38:46]))
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	if err != nil {
		return Atom{}, fmt.Errorf("bad z coordinate %q",
			strings.TrimSpace(line[46:54]))
	}
	return Atom{
		Chain:   strings.TrimSpace(line[21:22]),
		ResNum:  num,
		ICode:   icode,
		ResName: strings.TrimSpace(line[17:20]),
		Name:    strings.TrimSpace(line[12:16]),
		Coords:  structure.Coords{X: x, Y: y, Z: z},
	}, nil
}
