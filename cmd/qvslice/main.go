// qvslice writes a new Quiver file on stdout holding only the
// requested tags, in their original order. Tags come from the
// arguments or from stdin:
//
//	qvls my.qv | grep good | qvslice my.qv > good.qv
package main

import (
	"os"
	"sort"
	"strings"

	"github.com/RosettaCommons/RFantibody/cmd/util"
)

func init() {
	util.FlagParse("quiver-file [tag ...]",
		"Extract specific tags from a Quiver file into a new Quiver file.")
	util.AssertLeastNArg(1)
}

func main() {
	qv := util.QuiverOpen(util.Arg(0))
	tags := util.TagsOrStdin(util.Args()[1:])
	if len(tags) == 0 {
		util.Fatalf("No tags provided. Provide tags as arguments or pipe " +
			"them via stdin.")
	}

	found, err := qv.Slice(tags, os.Stdout)
	util.Assert(err, "Could not slice '%s'", util.Arg(0))
	if len(found) == 0 {
		util.Fatalf("None of the specified tags were found in '%s'.",
			util.Arg(0))
	}

	have := make(map[string]bool, len(found))
	for _, tag := range found {
		have[tag] = true
	}
	var missing []string
	for _, tag := range tags {
		if !have[tag] {
			missing = append(missing, tag)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		util.Warnf("%d tags not found: %s",
			len(missing), strings.Join(missing, ", "))
	}
}
