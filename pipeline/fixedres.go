package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RosettaCommons/RFantibody/hlt"
)

// ErrNoLoops is returned when a fixed-residue partition is requested
// with an empty loop list.
var ErrNoLoops = errors.New("pipeline: no design loops given")

// ErrBadChains is returned when a frame's chain composition is not one
// of the two orderings the sequence design stage accepts.
var ErrBadChains = errors.New(
	"pipeline: chains must be exactly H,L,T or H,T in that order")

// FixedResidues computes, per chain, the 1-based chain-local indices
// the sequence design stage must keep fixed: the complement of the
// requested CDR loops on the antibody chains, and the entire target
// chain regardless of the request.
//
// loops is a comma-separated, case-insensitive loop list such as
// "H1,H3". The frame's chain composition must be exactly H,L,T or
// H,T in that order, and the requested loops must select at least one
// designable residue.
func FixedResidues(fr *hlt.Frame, loops string) (map[byte][]int, error) {
	if strings.TrimSpace(loops) == "" {
		return nil, ErrNoLoops
	}
	var requested []hlt.Loop
	for _, name := range strings.Split(loops, ",") {
		loop := hlt.Loop(strings.ToUpper(strings.TrimSpace(name)))
		if !hlt.ValidLoop(loop) {
			return nil, fmt.Errorf("pipeline: unknown loop name %q", name)
		}
		requested = append(requested, loop)
	}

	chains := chainOrder(fr)
	if chains != "HLT" && chains != "HT" {
		return nil, fmt.Errorf("%w (got %q)", ErrBadChains, chains)
	}

	// Absolute positions of the designable residues, split by chain.
	designable := make(map[byte]map[int]bool)
	total := 0
	for _, loop := range requested {
		for i, in := range fr.CDR[loop] {
			if !in {
				continue
			}
			c := fr.Chain[i]
			if designable[c] == nil {
				designable[c] = make(map[int]bool)
			}
			if !designable[c][i+1] {
				designable[c][i+1] = true
				total++
			}
		}
	}
	if total == 0 {
		return nil, fmt.Errorf(
			"pipeline: no designable residues for loops %q; check the "+
				"REMARK PDBinfo-LABEL lines of the input", loops)
	}

	lenH := fr.ChainLen('H')
	lenL := fr.ChainLen('L')
	fixed := make(map[byte][]int, 3)
	if lenH > 0 {
		var idx []int
		for i := 1; i <= lenH; i++ {
			if !designable['H'][i] {
				idx = append(idx, i)
			}
		}
		fixed['H'] = idx
	}
	if lenL > 0 {
		var idx []int
		// L positions are chain local: absolute minus the H length.
		for i := lenH + 1; i <= lenH+lenL; i++ {
			if !designable['L'][i] {
				idx = append(idx, i-lenH)
			}
		}
		fixed['L'] = idx
	}
	if lenT := fr.ChainLen('T'); lenT > 0 {
		idx := make([]int, lenT)
		for i := range idx {
			idx[i] = i + 1
		}
		fixed['T'] = idx
	}
	return fixed, nil
}

// chainOrder returns the frame's chain letters by first appearance.
func chainOrder(fr *hlt.Frame) string {
	var order []byte
	seen := make(map[byte]bool)
	for _, c := range fr.Chain {
		if !seen[c] {
			seen[c] = true
			order = append(order, c)
		}
	}
	return string(order)
}
