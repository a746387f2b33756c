package quiver

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ScoreValue is one metric from a score line. An empty value string
// in the container ("name=") parses to Missing rather than zero.
type ScoreValue struct {
	Name    string
	Value   float64
	Missing bool
}

// TagScores is the parsed score line of one record.
type TagScores struct {
	Tag    string
	Scores []ScoreValue
}

// Scores parses every score line in the container, in file order.
// Score integrity is load-bearing for downstream ranking, so a
// malformed score line is an error for the whole scan rather than a
// skip.
func (qv *Quiver) Scores() ([]TagScores, error) {
	if qv.mode != readMode {
		return nil, StateError{Op: "Scores", Mode: "reading"}
	}
	var out []TagScores
	for _, rec := range qv.recs {
		if rec.scoreEnd <= rec.scoreStart {
			continue
		}
		line := string(qv.data[rec.scoreStart : rec.scoreEnd-1])
		ts, err := parseScoreLine(line)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, nil
}

// parseScoreLine parses "QV_SCORE <tag> <name>=<value>|..." into a
// TagScores. The line must have exactly the three whitespace-delimited
// fields of the grammar.
func parseScoreLine(line string) (TagScores, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return TagScores{}, FormatError{0, fmt.Sprintf(
			"score line has %d fields, want 3: %q", len(fields), line)}
	}
	ts := TagScores{Tag: fields[1]}
	for _, pair := range strings.Split(fields[2], "|") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return TagScores{}, FormatError{0, fmt.Sprintf(
				"score entry %q is not name=value", pair)}
		}
		sv := ScoreValue{Name: name}
		if value == "" {
			sv.Missing = true
		} else {
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return TagScores{}, FormatError{0, fmt.Sprintf(
					"bad score value %q for %q", value, name)}
			}
			sv.Value = v
		}
		ts.Scores = append(ts.Scores, sv)
	}
	return ts, nil
}

// WriteScoreTable renders score records as a tab-separated table: one
// column per metric in first-seen order, then a final "tag" column,
// one row per record in input order. Missing and absent cells render
// as NaN.
func WriteScoreTable(w io.Writer, recs []TagScores) error {
	var names []string
	seen := make(map[string]bool)
	for _, rec := range recs {
		for _, sv := range rec.Scores {
			if !seen[sv.Name] {
				seen[sv.Name] = true
				names = append(names, sv.Name)
			}
		}
	}

	buf := bufio.NewWriter(w)
	for _, name := range names {
		fmt.Fprintf(buf, "%s\t", name)
	}
	fmt.Fprintln(buf, "tag")
	for _, rec := range recs {
		cells := make(map[string]float64, len(rec.Scores))
		for _, sv := range rec.Scores {
			if sv.Missing {
				cells[sv.Name] = math.NaN()
			} else {
				cells[sv.Name] = sv.Value
			}
		}
		for _, name := range names {
			v, ok := cells[name]
			if !ok {
				v = math.NaN()
			}
			fmt.Fprintf(buf, "%s\t", strconv.FormatFloat(v, 'g', -1, 64))
		}
		fmt.Fprintln(buf, rec.Tag)
	}
	return buf.Flush()
}
