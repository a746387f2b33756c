// qvscorefile writes the score lines of a Quiver file as a
// tab-separated table on stdout, one row per score line, one column
// per metric plus a final tag column.
package main

import (
	"os"

	"github.com/RosettaCommons/RFantibody/cmd/util"
	"github.com/RosettaCommons/RFantibody/quiver"
)

func init() {
	util.FlagParse("quiver-file",
		"Extract scores from a Quiver file to a tab-separated scorefile.")
	util.AssertNArg(1)
}

func main() {
	qv := util.QuiverOpen(util.Arg(0))
	recs, err := qv.Scores()
	util.Assert(err, "Could not parse scores in '%s'", util.Arg(0))
	if len(recs) == 0 {
		util.Fatalf("No scorelines found in Quiver file '%s'.", util.Arg(0))
	}
	util.Assert(quiver.WriteScoreTable(os.Stdout, recs))
}
