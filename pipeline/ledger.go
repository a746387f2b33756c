package pipeline

import (
	"fmt"
	"os"
)

// Ledger is the append-only checkpoint of a resumable batch: a text
// file of finished tags, one per line. It is loaded once at batch
// start and appended after each successful dump; domain logic never
// consults it. A nil Ledger disables checkpointing.
type Ledger struct {
	path string
	done map[string]bool
}

// LoadLedger reads the ledger at path. A missing file is an empty
// ledger, not an error.
func LoadLedger(path string) (*Ledger, error) {
	led := &Ledger{path: path, done: make(map[string]bool)}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return led, nil
	}
	done, err := readTagSet(path)
	if err != nil {
		return nil, err
	}
	led.done = done
	return led, nil
}

// Done reports whether tag finished in this or an earlier run.
func (l *Ledger) Done(tag string) bool {
	return l != nil && l.done[tag]
}

// Record appends tag to the ledger file and marks it done.
func (l *Ledger) Record(tag string) error {
	if l == nil {
		return nil
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(f, tag); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	l.done[tag] = true
	return nil
}
