// Package pipeline provides the batch plumbing shared by the model
// stage drivers: polymorphic structure sources and sinks over a PDB
// directory or a Quiver container, an append-only progress ledger for
// resumable batches, the fixed/designable residue partition handed to
// the sequence design stage, and the batch driver itself.
package pipeline

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/RosettaCommons/RFantibody/hlt"
	"github.com/RosettaCommons/RFantibody/quiver"
)

// Source yields the structures of one batch, addressed by tag. The
// variant (directory of PDB files or Quiver container) is chosen once
// at construction.
type Source interface {
	Tags() []string
	Load(tag string) (*hlt.Frame, error)
}

// DirectorySource reads HLT files from a directory, one per tag.
type DirectorySource struct {
	dir  string
	tags []string
}

// NewDirectorySource lists the *.pdb files under dir, sorted by base
// name. When runlist names a file, only tags listed in it (one per
// line) are kept.
func NewDirectorySource(dir, runlist string) (*DirectorySource, error) {
	paths, err := filepath.Glob(path.Join(dir, "*.pdb"))
	if err != nil {
		return nil, err
	}
	tags := make([]string, 0, len(paths))
	for _, p := range paths {
		tags = append(tags, strings.TrimSuffix(path.Base(p), ".pdb"))
	}
	sort.Strings(tags)

	if runlist != "" {
		keep, err := readTagSet(runlist)
		if err != nil {
			return nil, err
		}
		kept := tags[:0]
		for _, tag := range tags {
			if keep[tag] {
				kept = append(kept, tag)
			}
		}
		tags = kept
	}
	return &DirectorySource{dir: dir, tags: tags}, nil
}

func (s *DirectorySource) Tags() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

func (s *DirectorySource) Load(tag string) (*hlt.Frame, error) {
	return hlt.ReadFile(path.Join(s.dir, tag+".pdb"))
}

// ContainerSource reads structures from a read-mode Quiver container.
type ContainerSource struct {
	qv *quiver.Quiver
}

func NewContainerSource(qv *quiver.Quiver) *ContainerSource {
	return &ContainerSource{qv: qv}
}

func (s *ContainerSource) Tags() []string {
	return s.qv.Tags()
}

func (s *ContainerSource) Load(tag string) (*hlt.Frame, error) {
	content, err := s.qv.Get(tag)
	if err != nil {
		return nil, err
	}
	return hlt.ParseBytes(content)
}

// readTagSet reads one tag per line, ignoring blanks.
func readTagSet(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tags := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		tag := strings.TrimSpace(scanner.Text())
		if tag != "" {
			tags[tag] = true
		}
	}
	return tags, scanner.Err()
}
