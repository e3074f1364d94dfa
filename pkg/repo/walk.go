package repo

import (
	"errors"
	"fmt"
	"path"

	"github.com/odvcencio/relic/pkg/object"
)

// MissingObjectPolicy selects how a tree walk treats a referenced child
// object that is absent from the store.
type MissingObjectPolicy string

const (
	// MissingObjectFail aborts the walk with the lookup error.
	MissingObjectFail MissingObjectPolicy = "fail"
	// MissingObjectEmitPath emits the accumulated path of the absent child
	// as a leaf entry and keeps walking.
	MissingObjectEmitPath MissingObjectPolicy = "emit-path"
)

// ParseMissingPolicy validates a policy value from config or flags.
func ParseMissingPolicy(s string) (MissingObjectPolicy, error) {
	switch MissingObjectPolicy(s) {
	case MissingObjectFail:
		return MissingObjectFail, nil
	case MissingObjectEmitPath:
		return MissingObjectEmitPath, nil
	}
	return "", fmt.Errorf("unknown missing-object policy %q (want %q or %q)", s, MissingObjectFail, MissingObjectEmitPath)
}

// FileEntry is one blob produced by a tree walk, with its slash-joined path
// relative to the walk root.
type FileEntry struct {
	Path string
	Mode string
	Hash object.Hash
}

type walkFrame struct {
	hash object.Hash
	path string
	mode string
}

// TreeWalker streams the files of a tree graph depth-first, in declaration
// order, resolving each object only when it is reached. The traversal keeps
// an explicit frame stack, so tree depth never grows the call stack. Use it
// like bufio.Scanner.
type TreeWalker struct {
	store  *object.Store
	policy MissingObjectPolicy
	stack  []walkFrame
	cur    FileEntry
	err    error
}

// WalkTree starts a walk at root, which may name a tree, a blob, or a
// commit; a commit is first unwrapped to its root tree. A blob root emits a
// single entry with an empty path.
func (r *Repo) WalkTree(root object.Hash, policy MissingObjectPolicy) (*TreeWalker, error) {
	w := &TreeWalker{store: r.Store, policy: policy}

	objType, data, err := r.Store.Read(root)
	if err != nil {
		return nil, fmt.Errorf("walk tree: %w", err)
	}
	switch objType {
	case object.TypeCommit:
		c, err := object.UnmarshalCommit(data)
		if err != nil {
			return nil, fmt.Errorf("walk tree: commit %s: %w", root, err)
		}
		w.stack = append(w.stack, walkFrame{hash: c.TreeHash})
	default:
		w.stack = append(w.stack, walkFrame{hash: root})
	}
	return w, nil
}

// Scan advances to the next file entry. It returns false when the walk is
// exhausted or an error occurred.
func (w *TreeWalker) Scan() bool {
	if w.err != nil {
		return false
	}
	for len(w.stack) > 0 {
		frame := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]

		objType, data, err := w.store.Read(frame.hash)
		if err != nil {
			if errors.Is(err, object.ErrNotFound) && w.policy == MissingObjectEmitPath && frame.path != "" {
				w.cur = FileEntry{Path: frame.path, Mode: frame.mode, Hash: frame.hash}
				return true
			}
			w.err = fmt.Errorf("walk tree: at %q: %w", frame.path, err)
			return false
		}

		switch objType {
		case object.TypeBlob:
			w.cur = FileEntry{Path: frame.path, Mode: frame.mode, Hash: frame.hash}
			return true
		case object.TypeTree:
			tree, err := object.UnmarshalTree(data)
			if err != nil {
				w.err = fmt.Errorf("walk tree: tree %s at %q: %w", frame.hash, frame.path, err)
				return false
			}
			// Push in reverse so entries pop in declaration order.
			for i := len(tree.Entries) - 1; i >= 0; i-- {
				e := tree.Entries[i]
				w.stack = append(w.stack, walkFrame{
					hash: e.Hash,
					path: joinWalkPath(frame.path, e.Name),
					mode: e.Mode,
				})
			}
		case object.TypeCommit:
			w.err = fmt.Errorf("walk tree: %w: commit object %s inside tree at %q", object.ErrMalformed, frame.hash, frame.path)
			return false
		}
	}
	return false
}

// Entry returns the file produced by the last successful Scan.
func (w *TreeWalker) Entry() FileEntry {
	return w.cur
}

// Err returns the error that stopped the walk, if any.
func (w *TreeWalker) Err() error {
	return w.err
}

// ListFiles collects a full walk from root into a slice.
func (r *Repo) ListFiles(root object.Hash, policy MissingObjectPolicy) ([]FileEntry, error) {
	w, err := r.WalkTree(root, policy)
	if err != nil {
		return nil, err
	}
	var files []FileEntry
	for w.Scan() {
		files = append(files, w.Entry())
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

func joinWalkPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
