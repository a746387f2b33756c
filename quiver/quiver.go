// Package quiver implements the Quiver container format: an
// append-only, line-oriented archive batching many structure files
// into one, each under a tag, optionally carrying one score line of
// pipe-delimited metrics. The format is
//
//	QV_TAG <tag>
//	QV_SCORE <tag> <name>=<value>|<name>=<value>|...
//	<structure file lines, verbatim, until the next QV_TAG or EOF>
//
// with the QV_SCORE line optional. Record content is opaque to the
// store and passed through byte for byte.
//
// A container handle is either read mode (Open) or write mode
// (Create). Reading never mutates the file, so independent readers
// are safe; writers must be serialized by the caller.
package quiver

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
)

var (
	markerTag   = []byte("QV_TAG")
	markerScore = []byte("QV_SCORE")
)

type mode int

const (
	readMode mode = iota
	writeMode
)

// record locates one tagged block inside the container bytes. The
// body range excludes the tag and score lines.
type record struct {
	tag        string
	start      int
	scoreStart int
	scoreEnd   int
	bodyStart  int
	bodyEnd    int
}

// Quiver is an open container handle.
type Quiver struct {
	path string
	mode mode
	f    *os.File
	mm   mmap.MMap
	data []byte
	recs []record
	tags []string
	// first maps each tag to the index of its first record. The
	// format does not guarantee tag uniqueness, so lookups are
	// first-occurrence by policy.
	first map[string]int
}

// Open opens an existing container for reading. The file is scanned
// once through a read-only memory map to build the tag index; a
// zero-length file simply has no records.
func Open(path string) (*Quiver, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFoundError{Path: path}
		}
		return nil, err
	}
	qv := &Quiver{path: path, mode: readMode, f: f}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() > 0 {
		// Zero-length files cannot be mapped.
		if qv.mm, err = mmap.Map(f, mmap.RDONLY, 0); err != nil {
			f.Close()
			return nil, err
		}
		qv.data = qv.mm
	}
	qv.index()
	return qv, nil
}

// Create opens a container for appending, creating the file if it
// does not exist. The tags of any existing records are scanned so
// Tags and Size reflect the whole file.
func Create(path string) (*Quiver, error) {
	qv := &Quiver{path: path, mode: writeMode}
	if data, err := os.ReadFile(path); err == nil {
		qv.data = data
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	qv.index()
	qv.data = nil

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, err
	}
	qv.f = f
	return qv, nil
}

// Close releases the file handle and, in read mode, the mapping. The
// record contents returned by Get remain valid after Close.
func (qv *Quiver) Close() error {
	if qv.mm != nil {
		if err := qv.mm.Unmap(); err != nil {
			qv.f.Close()
			return err
		}
		qv.mm = nil
		qv.data = nil
	}
	if qv.f != nil {
		f := qv.f
		qv.f = nil
		return f.Close()
	}
	return nil
}

// Path returns the container's file path.
func (qv *Quiver) Path() string {
	return qv.path
}

// Tags returns every tag in file order, duplicates included.
func (qv *Quiver) Tags() []string {
	out := make([]string, len(qv.tags))
	copy(out, qv.tags)
	return out
}

// Size returns the number of records.
func (qv *Quiver) Size() int {
	return len(qv.tags)
}

// Get returns a copy of the content block of the first record carrying
// tag, score lines excluded.
func (qv *Quiver) Get(tag string) ([]byte, error) {
	if qv.mode != readMode {
		return nil, StateError{Op: "Get", Mode: "reading"}
	}
	i, ok := qv.first[tag]
	if !ok {
		return nil, NotFoundError{Path: qv.path, Tag: tag}
	}
	return qv.content(qv.recs[i]), nil
}

// content copies a record's body out of the container bytes, dropping
// any stray QV_SCORE line. Score lines belong directly after their
// tag line, but the reader tolerates them anywhere in a block.
func (qv *Quiver) content(rec record) []byte {
	body := qv.data[rec.bodyStart:rec.bodyEnd]
	if !bytes.Contains(body, markerScore) {
		out := make([]byte, len(body))
		copy(out, body)
		return out
	}
	out := make([]byte, 0, len(body))
	for off := 0; off < len(body); {
		end := off + bytes.IndexByte(body[off:], '\n') + 1
		if !bytes.HasPrefix(body[off:], markerScore) {
			out = append(out, body[off:end]...)
		}
		off = end
	}
	return out
}

// Append writes a new record. The content is passed through verbatim;
// a trailing newline is added only when the content lacks one, so a
// later Get reproduces the bytes exactly. Tag collisions are not
// checked; uniqueness is the caller's responsibility.
func (qv *Quiver) Append(tag string, content []byte) error {
	return qv.append(tag, content, "")
}

// AppendScored writes a new record with a score line. The scores
// string is the pipe-delimited "name=value|name=value" list.
func (qv *Quiver) AppendScored(tag string, content []byte, scores string) error {
	return qv.append(tag, content, scores)
}

func (qv *Quiver) append(tag string, content []byte, scores string) error {
	if qv.mode != writeMode {
		return StateError{Op: "Append", Mode: "writing"}
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "QV_TAG %s\n", tag)
	if scores != "" {
		fmt.Fprintf(&buf, "QV_SCORE %s %s\n", tag, scores)
	}
	buf.Write(content)
	if len(content) == 0 || content[len(content)-1] != '\n' {
		buf.WriteByte('\n')
	}
	if _, err := qv.f.Write(buf.Bytes()); err != nil {
		return err
	}
	if _, ok := qv.first[tag]; !ok {
		qv.first[tag] = len(qv.tags)
	}
	qv.tags = append(qv.tags, tag)
	return nil
}

// index scans the container bytes into the record table. A trailing
// line without a newline is treated as a torn write and discarded: a
// torn QV_TAG line drops its record, a torn score line loses only the
// score, torn content loses only that line.
func (qv *Quiver) index() {
	data := qv.data
	if n := len(data); n > 0 && data[n-1] != '\n' {
		if cut := bytes.LastIndexByte(data, '\n'); cut < 0 {
			data = nil
		} else {
			data = data[:cut+1]
		}
	}

	qv.first = make(map[string]int)
	justTagged := false
	cur := -1
	for off := 0; off < len(data); {
		end := off + bytes.IndexByte(data[off:], '\n') + 1
		line := data[off : end-1]
		switch {
		case bytes.HasPrefix(line, markerTag):
			if cur >= 0 {
				qv.recs[cur].bodyEnd = off
			}
			fields := strings.Fields(string(line))
			tag := strings.Join(fields[1:], "")
			qv.recs = append(qv.recs, record{
				tag:       tag,
				start:     off,
				bodyStart: end,
			})
			cur = len(qv.recs) - 1
			if _, ok := qv.first[tag]; !ok {
				qv.first[tag] = cur
			}
			qv.tags = append(qv.tags, tag)
			justTagged = true
		case bytes.HasPrefix(line, markerScore):
			if cur >= 0 && justTagged {
				qv.recs[cur].scoreStart = off
				qv.recs[cur].scoreEnd = end
				qv.recs[cur].bodyStart = end
			}
			justTagged = false
		default:
			justTagged = false
		}
		off = end
	}
	if cur >= 0 {
		qv.recs[cur].bodyEnd = len(data)
	}
}
