// qvls lists every tag of a Quiver file, one per line, in file order.
package main

import (
	"fmt"

	"github.com/RosettaCommons/RFantibody/cmd/util"
)

func init() {
	util.FlagParse("quiver-file", "List every tag in a Quiver file.")
	util.AssertNArg(1)
}

func main() {
	qv := util.QuiverOpen(util.Arg(0))
	for _, tag := range qv.Tags() {
		fmt.Println(tag)
	}
}
