package repo

import (
	"fmt"

	"github.com/odvcencio/relic/pkg/object"
)

// LogEntry carries commit metadata with its hash for log output.
type LogEntry struct {
	Hash   object.Hash
	Commit *object.CommitObj
}

// History walks commit ancestry from a starting commit, newest first,
// following first-parent links only. Use it like bufio.Scanner:
//
//	hist := r.History(start)
//	for hist.Scan() {
//		entry := hist.Entry()
//		...
//	}
//	if err := hist.Err(); err != nil { ... }
//
// An unreadable or undecodable commit stops the walk with that error;
// entries already returned remain valid.
type History struct {
	store *object.Store
	next  object.Hash
	cur   LogEntry
	err   error
}

// History starts a first-parent walk at the given commit hash.
func (r *Repo) History(start object.Hash) *History {
	return &History{store: r.Store, next: start}
}

// Scan advances to the next commit. It returns false once the walk has
// terminated: past a parentless commit, or on error.
func (h *History) Scan() bool {
	if h.err != nil || h.next == "" {
		return false
	}
	c, err := h.store.ReadCommit(h.next)
	if err != nil {
		h.err = fmt.Errorf("history: commit %s: %w", h.next, err)
		return false
	}
	h.cur = LogEntry{Hash: h.next, Commit: c}

	// Follow first parent; a root commit ends the walk.
	if len(c.Parents) > 0 {
		h.next = c.Parents[0]
	} else {
		h.next = ""
	}
	return true
}

// Entry returns the commit produced by the last successful Scan.
func (h *History) Entry() LogEntry {
	return h.cur
}

// Err returns the error that terminated the walk, if any.
func (h *History) Err() error {
	return h.err
}

// Log collects up to limit entries of first-parent history starting at
// start, newest first. A missing or malformed ancestor fails the whole
// call; there is no partial result.
func (r *Repo) Log(start object.Hash, limit int) ([]LogEntry, error) {
	var entries []LogEntry
	hist := r.History(start)
	for len(entries) < limit && hist.Scan() {
		entries = append(entries, hist.Entry())
	}
	if err := hist.Err(); err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	return entries, nil
}
