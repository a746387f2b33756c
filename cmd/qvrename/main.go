// qvrename writes a copy of a Quiver file on stdout with every tag
// replaced positionally by the given new tags. New tags come from the
// arguments or from stdin:
//
//	qvls old.qv | sed 's/$/_v2/' | qvrename old.qv > new.qv
package main

import (
	"os"

	"github.com/RosettaCommons/RFantibody/cmd/util"
)

func init() {
	util.FlagParse("quiver-file [new-tag ...]",
		"Rename the tags of a Quiver file.")
	util.AssertLeastNArg(1)
}

func main() {
	qv := util.QuiverOpen(util.Arg(0))
	newTags := util.TagsOrStdin(util.Args()[1:])
	if len(newTags) == 0 {
		util.Fatalf("No new tag names provided. Provide as arguments or " +
			"pipe via stdin.")
	}
	util.Assert(qv.Rename(newTags, os.Stdout),
		"Could not rename '%s'", util.Arg(0))
}
