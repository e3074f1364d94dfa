package object

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// CheckProblem describes one object that failed verification.
type CheckProblem struct {
	Hash   Hash
	Reason string
}

// CheckSummary reports the outcome of a reachability verification.
type CheckSummary struct {
	Checked  int            // objects read, re-hashed and decoded
	Problems []CheckProblem // missing, malformed or misnamed objects
}

// Verify walks every object reachable from roots, reading, re-hashing and
// decoding each one. Broken objects are recorded as problems instead of
// aborting the walk; references held by a broken object stay unvisited.
// Gitlink entries point outside the store and are not followed.
func (s *Store) Verify(roots []Hash) *CheckSummary {
	roots = uniqueNormalizedHashes(roots)
	sum := &CheckSummary{}
	seen := make(map[Hash]struct{}, len(roots))

	stack := make([]Hash, 0, len(roots))
	stack = append(stack, roots...)
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}

		objType, data, err := s.Read(h)
		if err != nil {
			sum.Problems = append(sum.Problems, CheckProblem{Hash: h, Reason: problemReason(err)})
			continue
		}
		if got := HashObject(objType, data); got != h {
			sum.Problems = append(sum.Problems, CheckProblem{Hash: h, Reason: fmt.Sprintf("content hashes to %s", got.Short())})
			continue
		}
		refs, err := referencedHashes(objType, data)
		if err != nil {
			sum.Problems = append(sum.Problems, CheckProblem{Hash: h, Reason: problemReason(err)})
			continue
		}
		sum.Checked++
		stack = append(stack, refs...)
	}

	sort.Slice(sum.Problems, func(i, j int) bool { return sum.Problems[i].Hash < sum.Problems[j].Hash })
	return sum
}

func problemReason(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "missing"
	case errors.Is(err, ErrUnsupportedType):
		return "unsupported type"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	}
	return err.Error()
}

func referencedHashes(objType ObjectType, data []byte) ([]Hash, error) {
	switch objType {
	case TypeBlob:
		return nil, nil
	case TypeCommit:
		commit, err := UnmarshalCommit(data)
		if err != nil {
			return nil, err
		}
		refs := make([]Hash, 0, 1+len(commit.Parents))
		refs = append(refs, commit.TreeHash)
		refs = append(refs, commit.Parents...)
		return refs, nil
	case TypeTree:
		tree, err := UnmarshalTree(data)
		if err != nil {
			return nil, err
		}
		refs := make([]Hash, 0, len(tree.Entries))
		for _, e := range tree.Entries {
			if e.Mode == TreeModeGitlink {
				continue
			}
			refs = append(refs, e.Hash)
		}
		return refs, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, objType)
	}
}

func uniqueNormalizedHashes(in []Hash) []Hash {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[Hash]struct{}, len(in))
	out := make([]Hash, 0, len(in))
	for _, h := range in {
		h = Hash(strings.TrimSpace(string(h)))
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
