package pdb

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/cif"
	"github.com/TuftsBCB/structure"
)

// ReadMMCIF reads the atom_site records of a PDBx/mmCIF file. Author
// numbering ("auth_" tags) is preferred over the label numbering so
// that the Chothia numbers assigned by the depositor survive; only the
// first model is read.
func ReadMMCIF(fileName string) ([]Atom, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMMCIFText(f)
}

// ReadMMCIFText reads atom_site records from PDBx/mmCIF text.
func ReadMMCIFText(r io.Reader) ([]Atom, error) {
	cf, err := cif.Read(r)
	if err != nil {
		return nil, err
	}
	for _, block := range cf.Blocks {
		loop := atomSiteLoop(block)
		if loop == nil {
			continue
		}
		return readAtomSites(loop)
	}
	return nil, fmt.Errorf("pdb: no atom_site records in mmCIF input")
}

// atomSiteLoop finds the atom_site loop of a data block. The loop map
// is keyed by every tag the loop declares, so any of the mandatory
// tags will do as a probe.
func atomSiteLoop(b *cif.DataBlock) *cif.Loop {
	for _, tag := range []string{
		"atom_site.group_pdb", "atom_site.id", "atom_site.auth_asym_id",
		"atom_site.label_asym_id",
	} {
		if loop, ok := b.Loops[tag]; ok {
			return loop
		}
	}
	return nil
}

func readAtomSites(loop *cif.Loop) ([]Atom, error) {
	chains := column(loop,
		"atom_site.auth_asym_id", "atom_site.label_asym_id").Strings()
	nums := column(loop,
		"atom_site.auth_seq_id", "atom_site.label_seq_id").Ints()
	comps := column(loop,
		"atom_site.auth_comp_id", "atom_site.label_comp_id").Strings()
	names := column(loop,
		"atom_site.auth_atom_id", "atom_site.label_atom_id").Strings()
	xs := loop.Get("atom_site.cartn_x").Floats()
	ys := loop.Get("atom_site.cartn_y").Floats()
	zs := loop.Get("atom_site.cartn_z").Floats()
	if chains == nil || nums == nil || comps == nil || names == nil ||
		xs == nil || ys == nil || zs == nil {
		return nil, fmt.Errorf(
			"pdb: atom_site loop is missing chain, numbering, type or " +
				"coordinate columns")
	}

	// Optional columns.
	icodes := loop.Get("atom_site.pdbx_pdb_ins_code").Strings()
	models := loop.Get("atom_site.pdbx_pdb_model_num").Ints()

	atoms := make([]Atom, 0, len(chains))
	firstModel := 0
	for i := range chains {
		if models != nil {
			if firstModel == 0 {
				firstModel = models[i]
			}
			if models[i] != firstModel {
				continue
			}
		}
		var icode byte
		if icodes != nil && len(icodes[i]) > 0 &&
			icodes[i] != "?" && icodes[i] != "." {
			icode = icodes[i][0]
		}
		atoms = append(atoms, Atom{
			Chain:   chains[i],
			ResNum:  nums[i],
			ICode:   icode,
			ResName: comps[i],
			Name:    names[i],
			Coords:  structure.Coords{X: xs[i], Y: ys[i], Z: zs[i]},
		})
	}
	return atoms, nil
}

// column fetches the first of the given tags present in the loop.
// PDBx files from different sources disagree on whether the author or
// the label variant of a tag is populated.
func column(loop *cif.Loop, tags ...string) cif.ValueLoop {
	for _, tag := range tags {
		if _, ok := loop.Columns[tag]; ok {
			return loop.Get(tag)
		}
	}
	return cif.AsValues([]string(nil))
}
