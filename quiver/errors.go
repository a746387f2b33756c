package quiver

import "fmt"

// NotFoundError reports a missing container file or a tag absent from
// an open container.
type NotFoundError struct {
	Path string
	Tag  string
}

func (e NotFoundError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("quiver: tag %q does not exist in %s", e.Tag, e.Path)
	}
	return fmt.Sprintf("quiver: file %s does not exist", e.Path)
}

// StateError reports an operation attempted against the wrong mode,
// e.g. appending to a read-only container.
type StateError struct {
	Op   string
	Mode string
}

func (e StateError) Error() string {
	return fmt.Sprintf("quiver: %s requires a container opened for %s",
		e.Op, e.Mode)
}

// CountMismatchError reports a positional operation given the wrong
// number of arguments, e.g. renaming k records with n != k new tags.
type CountMismatchError struct {
	Want int
	Got  int
}

func (e CountMismatchError) Error() string {
	return fmt.Sprintf("quiver: container has %d tags but %d were given",
		e.Want, e.Got)
}

// FormatError reports container text that violates the Quiver grammar.
// Line is 1-based, or 0 when the problem is not tied to a single line.
type FormatError struct {
	Line int
	Msg  string
}

func (e FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("quiver: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("quiver: %s", e.Msg)
}
