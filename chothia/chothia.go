// Package chothia converts Chothia-numbered antibody structures into
// the canonical HLT convention: chains relabeled and reordered to
// heavy, light, target; residue numbers rewritten to the contiguous
// run 1..L; insertion codes stripped; CDR loop membership recorded
// against the new numbering.
package chothia

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/RosettaCommons/RFantibody/hlt"
	"github.com/RosettaCommons/RFantibody/pdb"
)

// Default native-numbering crop cutoffs for the variable regions.
// Residues past the cutoff are outside the Fv and dropped unless the
// whole Fab is requested.
const (
	HCropDefault = 115
	LCropDefault = 110
)

// ErrNoChains is returned when a conversion selects no chains at all.
var ErrNoChains = errors.New(
	"chothia: either heavy or light or target chain must be specified")

// TCropError describes a target sub-range spec that does not parse as
// "chain:start-end[,chain:start-end...]".
type TCropError struct {
	Item string
	Msg  string
}

func (e TCropError) Error() string {
	return fmt.Sprintf("chothia: bad Tcrop item %q: %s", e.Item, e.Msg)
}

// cdrRanges maps each CDR loop to its inclusive native-numbering range
// on the heavy or light chain (Chothia scheme).
var cdrRanges = map[hlt.Loop][2]int{
	hlt.LoopH1: {26, 32},
	hlt.LoopH2: {52, 56},
	hlt.LoopH3: {95, 102},
	hlt.LoopL1: {24, 34},
	hlt.LoopL2: {50, 56},
	hlt.LoopL3: {89, 97},
}

// CDRRange returns the inclusive Chothia numbering range of a CDR
// loop on its chain.
func CDRRange(loop hlt.Loop) (start, end int) {
	r := cdrRanges[loop]
	return r[0], r[1]
}

// Options selects and restricts the chains of a conversion. Chain ids
// name chains of the source structure; empty means "no such chain".
type Options struct {
	// Heavy and Light are the source chain ids of the antibody
	// chains.
	Heavy string
	Light string

	// Targets are the source chain ids of the antigen chains, in the
	// order their residues should appear on the output T chain.
	Targets []string

	// WholeFab disables the variable-region crop on H and L.
	WholeFab bool

	// HCrop and LCrop override the native-numbering crop cutoffs.
	// Zero means the default.
	HCrop int
	LCrop int

	// TCrop restricts target chains to native-numbering sub-ranges,
	// as "chain:start-end[,chain:start-end...]". Only consulted when
	// Targets is non-empty.
	TCrop string
}

// ParseTCrop parses a target sub-range spec against the target chain
// ids it applies to. Items naming chains outside targets are dropped
// with a warning rather than an error.
func ParseTCrop(spec string, targets []string) (map[string][2]int, []string, error) {
	ranges := make(map[string][2]int)
	var warnings []string
	if strings.TrimSpace(spec) == "" {
		return ranges, nil, nil
	}
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		parts := strings.Split(item, ":")
		if len(parts) != 2 {
			return nil, nil, TCropError{item,
				"expected chain_id:start_res_numb-end_res_numb"}
		}
		chain := strings.TrimSpace(parts[0])
		bounds := strings.Split(strings.TrimSpace(parts[1]), "-")
		if len(bounds) != 2 {
			return nil, nil, TCropError{item,
				"expected residue range start_res_numb-end_res_numb"}
		}
		start, err := strconv.Atoi(bounds[0])
		if err != nil {
			return nil, nil, TCropError{item,
				fmt.Sprintf("bad start residue %q", bounds[0])}
		}
		end, err := strconv.Atoi(bounds[1])
		if err != nil {
			return nil, nil, TCropError{item,
				fmt.Sprintf("bad end residue %q", bounds[1])}
		}
		found := false
		for _, t := range targets {
			if t == chain {
				found = true
				break
			}
		}
		if !found {
			warnings = append(warnings, fmt.Sprintf(
				"chain %s is not among the target chains; its Tcrop "+
					"range is ignored", chain))
			continue
		}
		ranges[chain] = [2]int{start, end}
	}
	return ranges, warnings, nil
}

// residueGroup is a run of consecutive atoms sharing one
// (chain, residue number, insertion code) key.
type residueGroup struct {
	chain string
	num   int
	icode byte
	name  string
	atoms []pdb.Atom
}

// Convert builds a canonical HLT frame from raw atoms.
//
// Atoms outside the 20 standard residue types are discarded first.
// The heavy chain's residues come first, then the light chain's, then
// every target chain's in the order Targets gives them, each chain in
// file order. H and L residues past the crop cutoff are dropped unless
// WholeFab is set; CDR membership is decided on the native residue
// number before the crop check, so a loop range past the cutoff drops
// those residues entirely. Target chains honor their TCrop sub-range
// when one was given.
//
// The converter never sorts: if a chain's native numbering is not
// ascending in file order, the absolute numbering reflects file order.
func Convert(atoms []pdb.Atom, opts Options) (*hlt.Frame, error) {
	if opts.Heavy == "" && opts.Light == "" && len(opts.Targets) == 0 {
		return nil, ErrNoChains
	}
	hcrop, lcrop := opts.HCrop, opts.LCrop
	if hcrop == 0 {
		hcrop = HCropDefault
	}
	if lcrop == 0 {
		lcrop = LCropDefault
	}
	var tcrop map[string][2]int
	if len(opts.Targets) > 0 {
		var err error
		if tcrop, _, err = ParseTCrop(opts.TCrop, opts.Targets); err != nil {
			return nil, err
		}
	}

	groups := groupResidues(atoms)

	// Emission plan: per output residue, the source group and the CDR
	// loops it belongs to.
	type emit struct {
		group residueGroup
		out   byte
		loops []hlt.Loop
	}
	var plan []emit

	for _, sel := range []struct {
		src  string
		out  byte
		crop int
	}{
		{opts.Heavy, 'H', hcrop},
		{opts.Light, 'L', lcrop},
	} {
		if sel.src == "" {
			continue
		}
		for _, g := range chainGroups(groups, sel.src) {
			var loops []hlt.Loop
			for _, loop := range hlt.Loops() {
				if loop[0] != sel.out {
					continue
				}
				if r := cdrRanges[loop]; g.num >= r[0] && g.num <= r[1] {
					loops = append(loops, loop)
				}
			}
			if !opts.WholeFab && g.num > sel.crop {
				continue
			}
			plan = append(plan, emit{g, sel.out, loops})
		}
	}
	for _, t := range opts.Targets {
		bounds, restricted := tcrop[t]
		for _, g := range chainGroups(groups, t) {
			if restricted && (g.num < bounds[0] || g.num > bounds[1]) {
				continue
			}
			plan = append(plan, emit{g, 'T', nil})
		}
	}

	fr := hlt.NewFrame(len(plan))
	for i, e := range plan {
		fr.Chain[i] = e.out
		fr.Seq[i] = hlt.AminoThreeToOne[e.group.name]
		fr.Idx[i] = i + 1
		fr.Keys[i] = hlt.ResidueKey{Chain: e.group.chain, Num: e.group.num}
		for _, loop := range e.loops {
			fr.CDR[loop][i] = true
		}
		for _, atom := range e.group.atoms {
			slot := hlt.SlotIndex(e.group.name, atom.Name)
			if slot < 0 || fr.Present[i][slot] {
				continue
			}
			fr.SetAtom(i, slot, atom.Coords)
		}
	}
	return fr, nil
}

// groupResidues splits the standard-residue atoms into consecutive
// (chain, number, insertion code) groups. Adjacent groups that repeat
// the same key collapse to the first occurrence; groups differing only
// in insertion code stay distinct, each becoming its own residue.
func groupResidues(atoms []pdb.Atom) []residueGroup {
	var groups []residueGroup
	for _, atom := range atoms {
		if _, ok := hlt.AminoThreeToOne[atom.ResName]; !ok {
			continue
		}
		n := len(groups)
		if n > 0 && groups[n-1].chain == atom.Chain &&
			groups[n-1].num == atom.ResNum &&
			groups[n-1].icode == atom.ICode {
			groups[n-1].atoms = append(groups[n-1].atoms, atom)
			continue
		}
		groups = append(groups, residueGroup{
			chain: atom.Chain,
			num:   atom.ResNum,
			icode: atom.ICode,
			name:  atom.ResName,
			atoms: []pdb.Atom{atom},
		})
	}
	return groups
}

// chainGroups returns the groups belonging to one source chain, in
// file order. A group restating its predecessor's key (a residue
// split across non-adjacent records) collapses to the first
// occurrence; groups differing only in insertion code stay distinct.
func chainGroups(groups []residueGroup, chain string) []residueGroup {
	var out []residueGroup
	for _, g := range groups {
		if g.chain != chain {
			continue
		}
		if n := len(out); n > 0 && out[n-1].num == g.num &&
			out[n-1].icode == g.icode {
			continue
		}
		out = append(out, g)
	}
	return out
}
