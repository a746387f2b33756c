package hlt

// NumAtomSlots is the fixed per-residue atom capacity. Every residue's
// heavy atoms fit in 14 slots; the backbone occupies the first four and
// the slot order of the side chain is fixed per residue type.
const NumAtomSlots = 14

// SlotCA is the slot index of the alpha carbon in every residue layout.
const SlotCA = 1

// AminoThreeToOne is a map from the three letter names of the 20
// standard amino acids to their corresponding single letter
// representation.
var AminoThreeToOne = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
}

// AminoOneToThree is the reverse of AminoThreeToOne. It is created in
// this package's 'init' function.
var AminoOneToThree = map[byte]string{}

func init() {
	for k, v := range AminoThreeToOne {
		AminoOneToThree[v] = k
	}
}

// UnknownResidue is the single letter code assigned to residue types
// outside the 20 standard amino acids.
const UnknownResidue = 'X'

// atomSlots gives, for each standard residue type, the atom names in
// slot order: N, CA, C, O, then the side chain.
var atomSlots = map[string][]string{
	"ALA": {"N", "CA", "C", "O", "CB"},
	"ARG": {"N", "CA", "C", "O", "CB", "CG", "CD", "NE", "CZ", "NH1", "NH2"},
	"ASN": {"N", "CA", "C", "O", "CB", "CG", "OD1", "ND2"},
	"ASP": {"N", "CA", "C", "O", "CB", "CG", "OD1", "OD2"},
	"CYS": {"N", "CA", "C", "O", "CB", "SG"},
	"GLN": {"N", "CA", "C", "O", "CB", "CG", "CD", "OE1", "NE2"},
	"GLU": {"N", "CA", "C", "O", "CB", "CG", "CD", "OE1", "OE2"},
	"GLY": {"N", "CA", "C", "O"},
	"HIS": {"N", "CA", "C", "O", "CB", "CG", "ND1", "CD2", "CE1", "NE2"},
	"ILE": {"N", "CA", "C", "O", "CB", "CG1", "CG2", "CD1"},
	"LEU": {"N", "CA", "C", "O", "CB", "CG", "CD1", "CD2"},
	"LYS": {"N", "CA", "C", "O", "CB", "CG", "CD", "CE", "NZ"},
	"MET": {"N", "CA", "C", "O", "CB", "CG", "SD", "CE"},
	"PHE": {"N", "CA", "C", "O", "CB", "CG", "CD1", "CD2", "CE1", "CE2", "CZ"},
	"PRO": {"N", "CA", "C", "O", "CB", "CG", "CD"},
	"SER": {"N", "CA", "C", "O", "CB", "OG"},
	"THR": {"N", "CA", "C", "O", "CB", "OG1", "CG2"},
	"TRP": {"N", "CA", "C", "O", "CB", "CG", "CD1", "CD2", "CE2", "CE3",
		"NE1", "CZ2", "CZ3", "CH2"},
	"TYR": {"N", "CA", "C", "O", "CB", "CG", "CD1", "CD2", "CE1", "CE2",
		"CZ", "OH"},
	"VAL": {"N", "CA", "C", "O", "CB", "CG1", "CG2"},
}

// AtomSlots returns the slot-ordered atom names for a residue type, or
// nil if the residue type is not one of the 20 standard amino acids.
func AtomSlots(resName string) []string {
	return atomSlots[resName]
}

// SlotIndex finds the slot of an atom name within a residue type's
// layout. It returns -1 when either the residue type or the atom name
// is unknown.
func SlotIndex(resName, atomName string) int {
	for i, name := range atomSlots[resName] {
		if name == atomName {
			return i
		}
	}
	return -1
}
