package pipeline

import (
	"os"
	"path"

	"github.com/RosettaCommons/RFantibody/hlt"
	"github.com/RosettaCommons/RFantibody/quiver"
)

// Sink receives the structures a batch produces.
type Sink interface {
	Dump(tag string, fr *hlt.Frame) error
}

// DirectorySink writes one HLT file per tag, creating the directory
// on demand.
type DirectorySink struct {
	dir string
}

func NewDirectorySink(dir string) *DirectorySink {
	return &DirectorySink{dir: dir}
}

func (s *DirectorySink) Dump(tag string, fr *hlt.Frame) error {
	if err := os.MkdirAll(s.dir, 0777); err != nil {
		return err
	}
	return hlt.WriteFile(path.Join(s.dir, tag+".pdb"), fr)
}

// ContainerSink appends each structure to a write-mode Quiver
// container.
type ContainerSink struct {
	qv *quiver.Quiver
}

func NewContainerSink(qv *quiver.Quiver) *ContainerSink {
	return &ContainerSink{qv: qv}
}

func (s *ContainerSink) Dump(tag string, fr *hlt.Frame) error {
	return s.qv.Append(tag, fr.Bytes())
}
