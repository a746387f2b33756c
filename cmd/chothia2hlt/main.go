// chothia2hlt converts a Chothia-numbered antibody structure (PDB or
// PDBx/mmCIF) to the HLT convention: chains renamed and reordered to
// heavy, light, target; residues renumbered 1..L; CDR loops annotated
// with REMARK PDBinfo-LABEL trailer lines.
package main

import (
	"flag"
	"path"
	"strings"

	"github.com/RosettaCommons/RFantibody/chothia"
	"github.com/RosettaCommons/RFantibody/cmd/util"
	"github.com/RosettaCommons/RFantibody/hlt"
)

var (
	flagHeavy    = ""
	flagLight    = ""
	flagTarget   = ""
	flagOutput   = ""
	flagWholeFab = false
	flagHCrop    = chothia.HCropDefault
	flagLCrop    = chothia.LCropDefault
	flagTCrop    = ""
)

func init() {
	flag.StringVar(&flagHeavy, "H", flagHeavy,
		"The heavy chain id in the input file.")
	flag.StringVar(&flagLight, "L", flagLight,
		"The light chain id in the input file.")
	flag.StringVar(&flagTarget, "T", flagTarget,
		"The target chain id(s) in the input file, comma-separated.")
	flag.StringVar(&flagOutput, "o", flagOutput,
		"The output HLT file path.\n"+
			"\tDefaults to the input path with a _HLT.pdb suffix.")
	flag.BoolVar(&flagWholeFab, "whole-fab", flagWholeFab,
		"When set, the entire Fab region is kept instead of cropping\n"+
			"\tthe heavy and light chains at the Fv cutoffs.")
	flag.IntVar(&flagHCrop, "hcrop", flagHCrop,
		"The Chothia residue number to crop the heavy chain after.\n"+
			"\tReasonable values lie between 105 and 115.")
	flag.IntVar(&flagLCrop, "lcrop", flagLCrop,
		"The Chothia residue number to crop the light chain after.\n"+
			"\tReasonable values lie between 100 and 110.")
	flag.StringVar(&flagTCrop, "tcrop", flagTCrop,
		"Chothia residue ranges to keep for target chains, as\n"+
			"\tchain_id:start-end[,chain_id:start-end...] (bounds inclusive).")

	util.FlagParse("input.[pdb|cif]",
		"Convert a Chothia-formatted structure to HLT format.")
	util.AssertNArg(1)
}

func main() {
	inPath := util.Arg(0)
	var targets []string
	if flagTarget != "" {
		targets = strings.Split(flagTarget, ",")
	}

	if flagHeavy != "" || flagLight != "" {
		if flagWholeFab {
			util.Warnf("Whole Fab region is used for the antibody, no cropping")
		} else {
			if flagHeavy != "" {
				util.Warnf("Heavy chain %s will be cropped after %d",
					flagHeavy, flagHCrop)
			}
			if flagLight != "" {
				util.Warnf("Light chain %s will be cropped after %d",
					flagLight, flagLCrop)
			}
		}
	}
	if len(targets) > 0 && flagTCrop != "" {
		ranges, warnings, err := chothia.ParseTCrop(flagTCrop, targets)
		util.Assert(err)
		for _, w := range warnings {
			util.Warnf("Tcrop: %s", w)
		}
		for _, t := range targets {
			if r, ok := ranges[t]; ok {
				util.Warnf("For target chain %s residues with Chothia "+
					"number %d-%d will be used", t, r[0], r[1])
			}
		}
	}

	atoms := util.AtomsRead(inPath)
	fr, err := chothia.Convert(atoms, chothia.Options{
		Heavy:    flagHeavy,
		Light:    flagLight,
		Targets:  targets,
		WholeFab: flagWholeFab,
		HCrop:    flagHCrop,
		LCrop:    flagLCrop,
		TCrop:    flagTCrop,
	})
	util.Assert(err, "Could not convert '%s'", inPath)

	outPath := flagOutput
	if outPath == "" {
		ext := path.Ext(inPath)
		outPath = strings.TrimSuffix(inPath, ext) + "_HLT.pdb"
	}
	util.Assert(hlt.WriteFile(outPath, fr),
		"Could not write HLT file '%s'", outPath)
}
