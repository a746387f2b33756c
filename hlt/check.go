package hlt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Check scans HLT text and reports every convention it violates:
// chain ids outside H/L/T, a missing heavy chain, chains out of
// H-then-L-then-T order, residue numbering that is not the contiguous
// run 1..L, and missing or inconsistent CDR labels. An empty result
// means the text is well formed. The error is non-nil only for I/O
// failures.
func Check(r io.Reader) ([]string, error) {
	var issues []string
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	seen := make(map[byte]bool)
	var chainOrder []byte
	var nums []int
	labels := 0
	atoms := 0
	for _, line := range lines {
		isAtom := strings.HasPrefix(line, "ATOM")
		if (isAtom || strings.HasPrefix(line, "HETATM")) && len(line) >= 26 {
			c := line[21]
			if !seen[c] {
				seen[c] = true
				chainOrder = append(chainOrder, c)
			}
		}
		if isAtom && len(line) >= 54 {
			atoms++
			if strings.TrimSpace(line[12:16]) == "CA" {
				if n, err := strconv.Atoi(strings.TrimSpace(line[22:26])); err == nil {
					nums = append(nums, n)
				}
			}
		}
		if strings.HasPrefix(line, "REMARK PDBinfo-LABEL") {
			labels++
		}
	}

	if atoms == 0 {
		issues = append(issues, "no ATOM records")
	}
	if !seen['H'] {
		issues = append(issues, "missing heavy chain (H)")
	}
	var invalid []string
	for _, c := range chainOrder {
		switch c {
		case 'H', 'L', 'T', ' ':
		default:
			invalid = append(invalid, string(c))
		}
	}
	if len(invalid) > 0 {
		issues = append(issues,
			fmt.Sprintf("invalid chain ids: %s", strings.Join(invalid, ", ")))
	}
	if len(invalid) == 0 && !orderedHLT(chainOrder) {
		issues = append(issues, "chains are not in H, L, T order")
	}
	for i, n := range nums {
		if n != i+1 {
			issues = append(issues, fmt.Sprintf(
				"residue numbering is not contiguous from 1 (residue %d is numbered %d)",
				i+1, n))
			break
		}
	}
	if labels == 0 {
		issues = append(issues, "no CDR annotations")
	} else if _, err := parseLines(lines); err != nil {
		issues = append(issues, err.Error())
	}
	return issues, nil
}

// orderedHLT reports whether the chains, by first appearance, form a
// subsequence of H, L, T. Blank chain ids on non-residue records are
// ignored.
func orderedHLT(chains []byte) bool {
	want := []byte{'H', 'L', 'T'}
	at := 0
	for _, c := range chains {
		if c == ' ' {
			continue
		}
		for at < len(want) && want[at] != c {
			at++
		}
		if at == len(want) {
			return false
		}
		at++
	}
	return true
}
