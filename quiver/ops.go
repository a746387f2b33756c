package quiver

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// Rename streams a copy of the container to w with every record's tag
// replaced positionally by the corresponding entry of newTags, in file
// order. A score line following a renamed tag line gets its embedded
// tag field rewritten to match; any lines before the first QV_TAG pass
// through verbatim. The number of new tags must equal the number of
// records.
func (qv *Quiver) Rename(newTags []string, w io.Writer) error {
	if qv.mode != readMode {
		return StateError{Op: "Rename", Mode: "reading"}
	}
	if len(newTags) != len(qv.tags) {
		return CountMismatchError{Want: len(qv.tags), Got: len(newTags)}
	}

	data := qv.effective()
	next := 0
	lineNum := 0
	for off := 0; off < len(data); {
		lineNum++
		end := off + bytes.IndexByte(data[off:], '\n') + 1
		line := data[off : end-1]
		if !bytes.HasPrefix(line, markerTag) {
			if _, err := w.Write(data[off:end]); err != nil {
				return err
			}
			off = end
			continue
		}

		if _, err := fmt.Fprintf(w, "QV_TAG %s\n", newTags[next]); err != nil {
			return err
		}
		off = end
		if off < len(data) {
			lineNum++
			end = off + bytes.IndexByte(data[off:], '\n') + 1
			line = data[off : end-1]
			switch {
			case bytes.HasPrefix(line, markerTag):
				return FormatError{lineNum, "two QV_TAG lines in a row"}
			case bytes.HasPrefix(line, markerScore):
				fields := strings.Split(string(line), " ")
				if len(fields) > 1 {
					fields[1] = newTags[next]
				}
				if _, err := fmt.Fprintf(w,
					"%s\n", strings.Join(fields, " ")); err != nil {
					return err
				}
			default:
				if _, err := w.Write(data[off:end]); err != nil {
					return err
				}
			}
			off = end
		}
		next++
	}
	return nil
}

// Slice streams a new container to w holding only the records whose
// tag is in tags, original order and raw bytes (score lines included)
// preserved. The returned list is the subset of requested tags that
// were found, in file order; requested tags that are absent are the
// caller's to report, not an error.
func (qv *Quiver) Slice(tags []string, w io.Writer) ([]string, error) {
	if qv.mode != readMode {
		return nil, StateError{Op: "Slice", Mode: "reading"}
	}
	want := make(map[string]bool, len(tags))
	for _, tag := range tags {
		want[tag] = true
	}
	var found []string
	for _, rec := range qv.recs {
		if !want[rec.tag] {
			continue
		}
		// First occurrence wins for duplicate tags.
		want[rec.tag] = false
		if _, err := w.Write(qv.data[rec.start:rec.bodyEnd]); err != nil {
			return nil, err
		}
		found = append(found, rec.tag)
	}
	return found, nil
}

// Split partitions the records into consecutive groups of at most n
// tags and writes one container per group under dir, named
// "{prefix}_{i}.qv" with i counting from 0. Record order and bytes
// are preserved; no rebalancing. It returns the number of files
// written.
func (qv *Quiver) Split(n int, dir, prefix string) (int, error) {
	if qv.mode != readMode {
		return 0, StateError{Op: "Split", Mode: "reading"}
	}
	if n <= 0 {
		return 0, fmt.Errorf("quiver: split size must be positive, not %d", n)
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return 0, err
	}
	nfiles := 0
	for lo := 0; lo < len(qv.recs); lo += n {
		hi := lo + n
		if hi > len(qv.recs) {
			hi = len(qv.recs)
		}
		name := path.Join(dir, fmt.Sprintf("%s_%d.qv", prefix, nfiles))
		f, err := os.Create(name)
		if err != nil {
			return nfiles, err
		}
		for _, rec := range qv.recs[lo:hi] {
			if _, err := f.Write(qv.data[rec.start:rec.bodyEnd]); err != nil {
				f.Close()
				return nfiles, err
			}
		}
		if err := f.Close(); err != nil {
			return nfiles, err
		}
		nfiles++
	}
	return nfiles, nil
}

// ExtractAll writes each record's content block to an individual file
// "{prefix}{tag}.pdb" under dir. Existing files are skipped unless
// overwrite is set. It returns how many files were written and how
// many were skipped.
func (qv *Quiver) ExtractAll(dir, prefix string, overwrite bool) (written, skipped int, err error) {
	if qv.mode != readMode {
		return 0, 0, StateError{Op: "ExtractAll", Mode: "reading"}
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return 0, 0, err
	}
	done := make(map[string]bool, len(qv.recs))
	for _, rec := range qv.recs {
		if done[rec.tag] {
			continue
		}
		done[rec.tag] = true
		name := path.Join(dir, prefix+rec.tag+".pdb")
		if !overwrite {
			if _, err := os.Stat(name); err == nil {
				skipped++
				continue
			}
		}
		if err := os.WriteFile(name, qv.content(rec), 0666); err != nil {
			return written, skipped, err
		}
		written++
	}
	return written, skipped, nil
}

// effective returns the container bytes with any torn trailing line
// cut off.
func (qv *Quiver) effective() []byte {
	data := qv.data
	if n := len(data); n > 0 && data[n-1] != '\n' {
		cut := bytes.LastIndexByte(data, '\n')
		if cut < 0 {
			return nil
		}
		return data[:cut+1]
	}
	return data
}
