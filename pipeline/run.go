package pipeline

import (
	"errors"
	"fmt"

	"github.com/RosettaCommons/RFantibody/chothia"
	"github.com/RosettaCommons/RFantibody/hlt"
)

// StageFunc transforms one structure of a batch.
type StageFunc func(tag string, fr *hlt.Frame) (*hlt.Frame, error)

// Stats counts the outcomes of one batch run.
type Stats struct {
	Processed int
	Skipped   int
	Failed    int
}

// Run drives fn over every tag of src, dumping results to sink. Tags
// the ledger already marks done are skipped; the ledger records each
// tag after its dump succeeds, so a killed batch resumes where it
// left off.
//
// Per-item failures are reported through warn (which may be nil) and
// do not stop the batch; a configuration error aborts immediately,
// since it would fail every remaining item the same way. Run returns
// a non-nil error when the batch aborted or when every attempted item
// failed.
func Run(src Source, sink Sink, led *Ledger, fn StageFunc, warn func(error)) (Stats, error) {
	if warn == nil {
		warn = func(error) {}
	}
	var stats Stats
	for _, tag := range src.Tags() {
		if led.Done(tag) {
			stats.Skipped++
			continue
		}
		err := runOne(tag, src, sink, led, fn)
		if err == nil {
			stats.Processed++
			continue
		}
		if isConfigError(err) {
			return stats, err
		}
		stats.Failed++
		warn(fmt.Errorf("%s: %w", tag, err))
	}
	if stats.Failed > 0 && stats.Processed == 0 {
		return stats, fmt.Errorf("pipeline: all %d attempted structures failed",
			stats.Failed)
	}
	return stats, nil
}

func runOne(tag string, src Source, sink Sink, led *Ledger, fn StageFunc) error {
	fr, err := src.Load(tag)
	if err != nil {
		return err
	}
	out, err := fn(tag, fr)
	if err != nil {
		return err
	}
	if err := sink.Dump(tag, out); err != nil {
		return err
	}
	return led.Record(tag)
}

// isConfigError reports whether err is a configuration problem that
// would fail every item of the batch identically.
func isConfigError(err error) bool {
	return errors.Is(err, ErrNoLoops) ||
		errors.Is(err, ErrBadChains) ||
		errors.Is(err, chothia.ErrNoChains)
}
