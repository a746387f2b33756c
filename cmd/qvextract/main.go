// qvextract writes every record of a Quiver file to an individual PDB
// file. Existing files are skipped unless -force is given.
package main

import (
	"fmt"

	"github.com/RosettaCommons/RFantibody/cmd/util"
)

func init() {
	util.FlagUse("o", "prefix", "force")
	util.FlagParse("quiver-file",
		"Extract all PDB files from a Quiver file.")
	util.AssertNArg(1)
}

func main() {
	qv := util.QuiverOpen(util.Arg(0))
	written, skipped, err := qv.ExtractAll(
		util.FlagOutDir, util.FlagPrefix, util.FlagForce)
	util.Assert(err, "Could not extract from '%s'", util.Arg(0))

	fmt.Printf("Successfully extracted %d PDB files from %s\n",
		written, util.Arg(0))
	if skipped > 0 {
		util.Warnf("Skipped %d existing files (use -force to overwrite)",
			skipped)
	}
}
