package util

import (
	"bufio"
	"io"
	"os"
	"strings"
)

func ReadLines(r io.Reader) []string {
	buf := bufio.NewReader(r)
	lines := make([]string, 0)
	for {
		line, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			Fatalf("Could not read line: %s.", err)
		}
		lines = append(lines, strings.TrimSpace(line))
		if err == io.EOF {
			break
		}
	}
	return lines
}

// TagsOrStdin returns args when any were given, and otherwise reads
// tags from stdin, one per line, blanks dropped. Commands taking tag
// lists accept both so qvls output can be piped straight in.
func TagsOrStdin(args []string) []string {
	if len(args) > 0 {
		return args
	}
	tags := make([]string, 0)
	for _, line := range ReadLines(os.Stdin) {
		if line != "" {
			tags = append(tags, line)
		}
	}
	return tags
}

func OpenFile(path string) *os.File {
	f, err := os.Open(path)
	Assert(err, "Could not open file '%s'", path)
	return f
}

