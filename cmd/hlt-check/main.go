// hlt-check validates structure files against the HLT conventions:
// chains restricted to H, L and T in that order, a heavy chain
// present, residue numbering contiguous from 1, and CDR labels
// consistent with the residue list. Issues are reported per file on
// stderr; the exit code is non-zero when any file fails.
package main

import (
	"os"

	"github.com/RosettaCommons/RFantibody/cmd/util"
	"github.com/RosettaCommons/RFantibody/hlt"
)

func init() {
	util.FlagParse("hlt-file [hlt-file ...]",
		"Validate structure files against the HLT conventions.")
	util.AssertLeastNArg(1)
}

func main() {
	failed := 0
	for _, fileName := range util.Args() {
		f := util.OpenFile(fileName)
		issues, err := hlt.Check(f)
		f.Close()
		util.Assert(err, "Could not read '%s'", fileName)

		if len(issues) == 0 {
			continue
		}
		failed++
		for _, issue := range issues {
			util.Warnf("%s: %s", fileName, issue)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
