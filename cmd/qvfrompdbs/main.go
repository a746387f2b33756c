// qvfrompdbs writes a Quiver file on stdout containing the given PDB
// files, each tagged with its base name:
//
//	qvfrompdbs *.pdb > designs.qv
package main

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/RosettaCommons/RFantibody/cmd/util"
)

func init() {
	util.FlagParse("pdb-file [pdb-file ...]",
		"Create a Quiver file from PDB files.")
	util.AssertLeastNArg(1)
}

func main() {
	buf := bufio.NewWriter(os.Stdout)
	for _, fileName := range util.Args() {
		content, err := os.ReadFile(fileName)
		util.Assert(err, "Could not read PDB file '%s'", fileName)

		base := path.Base(fileName)
		tag := strings.TrimSuffix(base, path.Ext(base))
		fmt.Fprintf(buf, "QV_TAG %s\n", tag)
		buf.Write(content)
		if len(content) == 0 || content[len(content)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	util.Assert(buf.Flush())
}
