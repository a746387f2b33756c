package util

import (
	"github.com/RosettaCommons/RFantibody/hlt"
	"github.com/RosettaCommons/RFantibody/pdb"
	"github.com/RosettaCommons/RFantibody/quiver"
)

func QuiverOpen(path string) *quiver.Quiver {
	qv, err := quiver.Open(path)
	Assert(err, "Could not open Quiver file '%s'", path)
	return qv
}

func QuiverCreate(path string) *quiver.Quiver {
	qv, err := quiver.Create(path)
	Assert(err, "Could not create Quiver file '%s'", path)
	return qv
}

func HLTRead(path string) *hlt.Frame {
	fr, err := hlt.ReadFile(path)
	Assert(err, "Could not read HLT file '%s'", path)
	return fr
}

func AtomsRead(path string) []pdb.Atom {
	atoms, err := pdb.ReadFile(path)
	Assert(err, "Could not read structure file '%s'", path)
	return atoms
}
