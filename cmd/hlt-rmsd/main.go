// hlt-rmsd superimposes one HLT structure onto another on a common
// subset (the antibody framework or the target chain) and reports the
// alpha carbon RMSD over one or more residue masks, one
// "<mask> <rmsd>" row per mask on stdout. A skipped alignment (empty
// or mismatched subset) warns and produces no rows.
package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/RosettaCommons/RFantibody/cmd/util"
	"github.com/RosettaCommons/RFantibody/hlt"
	"github.com/RosettaCommons/RFantibody/superpose"
)

var (
	flagAlign = "framework"
	flagMask  = "cdr"
)

func init() {
	flag.StringVar(&flagAlign, "align", flagAlign,
		"The subset to superimpose on: framework or target.")
	flag.StringVar(&flagMask, "mask", flagMask,
		"Comma-separated residue masks to report RMSD over:\n"+
			"\tframework, target, cdr, H1, H2, H3, L1, L2, L3 or all.")

	util.FlagParse("moving.pdb reference.pdb",
		"Align an HLT structure to a reference and report subset RMSDs.")
	util.AssertNArg(2)
}

func main() {
	moving := util.HLTRead(util.Arg(0))
	reference := util.HLTRead(util.Arg(1))

	var subset superpose.Subset
	switch flagAlign {
	case "framework":
		subset = superpose.Framework
	case "target":
		subset = superpose.Target
	default:
		util.Fatalf("-align must be framework or target, not '%s'.", flagAlign)
	}

	aligned, err := superpose.AlignToSubset(moving, reference, subset)
	util.Assert(err)
	if !aligned {
		util.Warnf("%s subsets are empty or differ in size between '%s' "+
			"and '%s'; skipping RMSD calculations.",
			flagAlign, util.Arg(0), util.Arg(1))
		return
	}

	for _, name := range strings.Split(flagMask, ",") {
		name = strings.TrimSpace(name)
		mask := maskFor(moving, name)
		if mask == nil {
			util.Fatalf("Unknown mask '%s'.", name)
		}
		rmsd, err := superpose.PrealignedRMSD(moving, reference, mask)
		util.Assert(err, "Could not compute %s RMSD", name)
		fmt.Printf("%s %0.3f\n", name, rmsd)
	}
}

func maskFor(fr *hlt.Frame, name string) []bool {
	switch name {
	case "framework":
		return fr.FrameworkMask()
	case "target":
		return fr.TargetMask()
	case "cdr":
		return fr.CDRUnionMask()
	case "all":
		return fr.AllMask()
	}
	loop := hlt.Loop(strings.ToUpper(name))
	if hlt.ValidLoop(loop) {
		mask := make([]bool, fr.Len())
		copy(mask, fr.CDR[loop])
		return mask
	}
	return nil
}
