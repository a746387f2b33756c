package util

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"strings"
)

// Flags shared across the command suite. A command opts into the ones
// it uses with FlagUse; defaults may be overridden before FlagParse
// (qvsplit, for example, sets FlagPrefix to "split").
var (
	FlagOutDir = "."
	FlagPrefix = ""
	FlagForce  = false
)

func init() {
	log.SetFlags(0)
}

type commonFlag struct {
	set, init func()
	use       bool
}

var commonFlags = map[string]*commonFlag{
	"o": {
		set: func() {
			flag.StringVar(&FlagOutDir, "o", FlagOutDir,
				"The directory to write output files to.")
		},
	},
	"prefix": {
		set: func() {
			flag.StringVar(&FlagPrefix, "prefix", FlagPrefix,
				"The prefix prepended to every output file name.")
		},
	},
	"force": {
		set: func() {
			flag.BoolVar(&FlagForce, "force", FlagForce,
				"When set, existing output files will be overwritten.")
		},
	},
}

func FlagUse(names ...string) {
	for _, name := range names {
		commonFlags[name].use = true
	}
}

// Usage just calls `flag.Usage`. It's included here to avoid
// an extra import to `flag` just to call Usage.
func Usage() {
	flag.Usage()
}

// Arg just calls `flag.Arg`. It's included here to avoid
// an extra import to `flag` just to call Arg.
func Arg(i int) string {
	return flag.Arg(i)
}

// NArg just calls `flag.NArg`. It's included here to avoid
// an extra import to `flag` just to call NArg.
func NArg() int {
	return flag.NArg()
}

// Args just calls `flag.Args`. It's included here to avoid
// an extra import to `flag` just to call Args.
func Args() []string {
	return flag.Args()
}

func FlagParse(positional string, desc string) {
	for _, fl := range commonFlags {
		if fl.use {
			fl.set()
		}
	}

	flag.Usage = func() {
		log.Printf("Usage: %s [flags] %s\n\n",
			path.Base(os.Args[0]), positional)
		if len(desc) > 0 {
			log.Printf("%s\n", desc)
		}
		flag.VisitAll(func(fl *flag.Flag) {
			var def string
			if len(fl.DefValue) > 0 {
				def = fmt.Sprintf(" (default: %s)", fl.DefValue)
			}

			usage := strings.Replace(fl.Usage, "\n", "\n    ", -1)
			log.Printf("-%s%s\n", fl.Name, def)
			log.Printf("    %s\n", usage)
		})
		os.Exit(1)
	}
	flag.Parse()

	for _, fl := range commonFlags {
		if fl.use && fl.init != nil {
			fl.init()
		}
	}
}
