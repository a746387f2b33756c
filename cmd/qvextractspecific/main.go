// qvextractspecific writes the requested records of a Quiver file to
// individual PDB files. Tags come from the arguments or, when none
// are given, from stdin, one per line, so qvls output can be piped in:
//
//	qvls my.qv | head -n 10 | qvextractspecific my.qv -o selected
//
// Missing tags warn and are skipped rather than aborting the batch.
package main

import (
	"os"
	"path"

	"github.com/RosettaCommons/RFantibody/cmd/util"
	"github.com/RosettaCommons/RFantibody/quiver"
)

func init() {
	util.FlagUse("o", "force")
	util.FlagParse("quiver-file [tag ...]",
		"Extract specific PDB files from a Quiver file by tag.")
	util.AssertLeastNArg(1)
}

func main() {
	qv := util.QuiverOpen(util.Arg(0))
	tags := util.TagsOrStdin(util.Args()[1:])
	if len(tags) == 0 {
		util.Fatalf("No tags provided. Provide tags as arguments or pipe " +
			"them via stdin.")
	}

	util.Assert(os.MkdirAll(util.FlagOutDir, 0777),
		"Could not create directory '%s'", util.FlagOutDir)

	extracted := 0
	for _, tag := range tags {
		content, err := qv.Get(tag)
		if _, ok := err.(quiver.NotFoundError); ok {
			util.Warnf("Tag %s not found in Quiver file", tag)
			continue
		}
		util.Assert(err)

		outfn := path.Join(util.FlagOutDir, tag+".pdb")
		if !util.FlagForce {
			if _, err := os.Stat(outfn); err == nil {
				util.Warnf("File %s already exists, skipping", outfn)
				continue
			}
		}
		util.Assert(os.WriteFile(outfn, content, 0666),
			"Could not write '%s'", outfn)
		extracted++
	}
	util.Warnf("Successfully extracted %d PDB files", extracted)
}
