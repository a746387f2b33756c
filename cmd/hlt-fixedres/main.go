// hlt-fixedres computes, for each structure of a batch, the 1-based
// chain-local residue indices the sequence design stage must keep
// fixed: everything outside the requested CDR loops on the antibody
// chains, and the whole target chain. One JSON object per structure is
// written on stdout:
//
//	{"tag":"ab1","fixed":{"H":[1,2,...],"L":[...],"T":[...]}}
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"os"

	"github.com/RosettaCommons/RFantibody/cmd/util"
	"github.com/RosettaCommons/RFantibody/pipeline"
)

var (
	flagLoops = ""
	flagPdbs  = ""
	flagQv    = ""
)

func init() {
	flag.StringVar(&flagLoops, "loops", flagLoops,
		"Comma-separated CDR loops to design, e.g. 'H1,H2,H3'.")
	flag.StringVar(&flagPdbs, "pdbs", flagPdbs,
		"A directory of HLT files to read.")
	flag.StringVar(&flagQv, "qv", flagQv,
		"A Quiver file of HLT structures to read.")

	util.FlagParse("",
		"Compute fixed residue lists for sequence design.")
	util.AssertNArg(0)
}

func main() {
	if flagLoops == "" {
		util.Fatalf("Please set the '-loops' flag.")
	}
	src := srcFromFlags()

	buf := bufio.NewWriter(os.Stdout)
	enc := json.NewEncoder(buf)
	for _, tag := range src.Tags() {
		fr, err := src.Load(tag)
		util.Assert(err, "Could not load structure '%s'", tag)

		fixed, err := pipeline.FixedResidues(fr, flagLoops)
		util.Assert(err, "Could not partition '%s'", tag)

		byChain := make(map[string][]int, len(fixed))
		for chain, idx := range fixed {
			byChain[string(chain)] = idx
		}
		row := struct {
			Tag   string           `json:"tag"`
			Fixed map[string][]int `json:"fixed"`
		}{tag, byChain}
		util.Assert(enc.Encode(row))
	}
	util.Assert(buf.Flush())
}

func srcFromFlags() pipeline.Source {
	switch {
	case flagPdbs != "" && flagQv != "":
		util.Fatalf("Set either '-pdbs' or '-qv', not both.")
	case flagPdbs != "":
		util.AssertIsDir(flagPdbs)
		src, err := pipeline.NewDirectorySource(flagPdbs, "")
		util.Assert(err, "Could not list '%s'", flagPdbs)
		return src
	case flagQv != "":
		return pipeline.NewContainerSource(util.QuiverOpen(flagQv))
	}
	util.Fatalf("Please set either the '-pdbs' or '-qv' flag.")
	panic("unreachable")
}
