// qvsplit partitions a Quiver file into several smaller ones, each
// holding at most the requested number of tags, in original order.
package main

import (
	"fmt"
	"strconv"

	"github.com/RosettaCommons/RFantibody/cmd/util"
)

func init() {
	util.FlagPrefix = "split"
	util.FlagUse("o", "prefix")
	util.FlagParse("quiver-file ntags",
		"Split a Quiver file into multiple files with at most ntags "+
			"structures per file.")
	util.AssertNArg(2)
}

func main() {
	ntags, err := strconv.Atoi(util.Arg(1))
	util.Assert(err, "Could not parse '%s' as a tag count", util.Arg(1))
	if ntags <= 0 {
		util.Fatalf("ntags must be positive, not %d.", ntags)
	}

	qv := util.QuiverOpen(util.Arg(0))
	nfiles, err := qv.Split(ntags, util.FlagOutDir, util.FlagPrefix)
	util.Assert(err, "Could not split '%s'", util.Arg(0))

	fmt.Printf("Split %d structures into %d files in %s\n",
		qv.Size(), nfiles, util.FlagOutDir)
}
