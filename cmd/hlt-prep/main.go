// hlt-prep normalizes a batch of HLT structures for the next model
// stage: duplicate residue numbers are collapsed, chains are
// optionally reordered target-first, and residues are renumbered
// contiguously from 1. The batch reads from a directory of PDB files
// or a Quiver container and writes to either kind of sink; a
// checkpoint file makes an interrupted batch resumable.
package main

import (
	"flag"

	"github.com/RosettaCommons/RFantibody/cmd/util"
	"github.com/RosettaCommons/RFantibody/hlt"
	"github.com/RosettaCommons/RFantibody/pipeline"
)

var (
	flagPdbs       = ""
	flagQv         = ""
	flagOutPdbs    = ""
	flagOutQv      = ""
	flagCheckpoint = ""
	flagRunlist    = ""
	flagTHL        = false
)

func init() {
	flag.StringVar(&flagPdbs, "pdbs", flagPdbs,
		"A directory of HLT files to read.")
	flag.StringVar(&flagQv, "qv", flagQv,
		"A Quiver file of HLT structures to read.")
	flag.StringVar(&flagOutPdbs, "out-pdbs", flagOutPdbs,
		"A directory to write one HLT file per structure to.")
	flag.StringVar(&flagOutQv, "out-qv", flagOutQv,
		"A Quiver file to append the prepared structures to.")
	flag.StringVar(&flagCheckpoint, "checkpoint", flagCheckpoint,
		"A checkpoint file recording finished tags. A resumed batch\n"+
			"\tskips every tag already listed.")
	flag.StringVar(&flagRunlist, "runlist", flagRunlist,
		"A file naming the tags to process, one per line.\n"+
			"\tOnly applies to a '-pdbs' source.")
	flag.BoolVar(&flagTHL, "thl", flagTHL,
		"When set, chains are reordered target-first (T, H, L).")

	util.FlagParse("",
		"Normalize a batch of HLT structures for the next model stage.")
	util.AssertNArg(0)
}

func main() {
	src := srcFromFlags()
	sink := sinkFromFlags()

	var led *pipeline.Ledger
	if flagCheckpoint != "" {
		var err error
		led, err = pipeline.LoadLedger(flagCheckpoint)
		util.Assert(err, "Could not load checkpoint '%s'", flagCheckpoint)
	}

	stats, err := pipeline.Run(src, sink, led, prep, func(err error) {
		util.Warnf("%s", err)
	})
	util.Assert(err)
	util.Warnf("Processed %d structures (%d skipped, %d failed).",
		stats.Processed, stats.Skipped, stats.Failed)
}

func prep(tag string, fr *hlt.Frame) (*hlt.Frame, error) {
	fr = fr.Dedupe()
	if flagTHL {
		fr = fr.ReorderTHL()
	}
	return fr.Renumber(), nil
}

func srcFromFlags() pipeline.Source {
	switch {
	case flagPdbs != "" && flagQv != "":
		util.Fatalf("Set either '-pdbs' or '-qv', not both.")
	case flagPdbs != "":
		util.AssertIsDir(flagPdbs)
		src, err := pipeline.NewDirectorySource(flagPdbs, flagRunlist)
		util.Assert(err, "Could not list '%s'", flagPdbs)
		return src
	case flagQv != "":
		return pipeline.NewContainerSource(util.QuiverOpen(flagQv))
	}
	util.Fatalf("Please set either the '-pdbs' or '-qv' flag.")
	panic("unreachable")
}

func sinkFromFlags() pipeline.Sink {
	switch {
	case flagOutPdbs != "" && flagOutQv != "":
		util.Fatalf("Set either '-out-pdbs' or '-out-qv', not both.")
	case flagOutPdbs != "":
		return pipeline.NewDirectorySink(flagOutPdbs)
	case flagOutQv != "":
		return pipeline.NewContainerSink(util.QuiverCreate(flagOutQv))
	}
	util.Fatalf("Please set either the '-out-pdbs' or '-out-qv' flag.")
	panic("unreachable")
}
