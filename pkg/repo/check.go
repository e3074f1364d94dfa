package repo

import (
	"fmt"
	"sort"

	"github.com/odvcencio/relic/pkg/object"
)

// Check verifies every object reachable from the repository's branch heads
// (and a detached HEAD, if any). It reports problems instead of stopping at
// the first one; the repository is never modified.
func (r *Repo) Check() (*object.CheckSummary, error) {
	roots, err := r.checkRoots()
	if err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}
	return r.Store.Verify(roots), nil
}

func (r *Repo) checkRoots() ([]object.Hash, error) {
	refs, err := r.ListRefs("heads")
	if err != nil {
		return nil, err
	}

	seen := make(map[object.Hash]bool)
	var roots []object.Hash
	add := func(h object.Hash) {
		if !seen[h] {
			seen[h] = true
			roots = append(roots, h)
		}
	}

	for name, raw := range refs {
		h, err := object.ParseHash(string(raw))
		if err != nil {
			return nil, fmt.Errorf("ref %s: %w", name, err)
		}
		add(h)
	}

	// A detached HEAD holds a raw hash instead of a ref name.
	head, err := r.Head()
	if err != nil {
		return nil, err
	}
	if h, err := object.ParseHash(head); err == nil {
		add(h)
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	return roots, nil
}
