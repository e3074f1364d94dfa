package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/odvcencio/relic/pkg/diff"
	"github.com/odvcencio/relic/pkg/object"
	"github.com/odvcencio/relic/pkg/repo"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <commit-ish> [commit-ish]",
		Short: "Show line diffs between two commits",
		Long: `Show line diffs between two commits.

With one argument, diffs the commit against its first parent.
With two, diffs the first commit against the second.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}

			afterTarget := args[0]
			if len(args) == 2 {
				afterTarget = args[1]
			}
			afterHash, err := resolveRevision(r, afterTarget)
			if err != nil {
				return err
			}
			after, err := r.Store.ReadCommit(afterHash)
			if err != nil {
				return fmt.Errorf("diff: read commit %s: %w", afterHash, err)
			}

			var beforeTree object.Hash
			if len(args) == 2 {
				beforeHash, err := resolveRevision(r, args[0])
				if err != nil {
					return err
				}
				before, err := r.Store.ReadCommit(beforeHash)
				if err != nil {
					return fmt.Errorf("diff: read commit %s: %w", beforeHash, err)
				}
				beforeTree = before.TreeHash
			} else if len(after.Parents) > 0 {
				parent, err := r.Store.ReadCommit(after.Parents[0])
				if err != nil {
					return fmt.Errorf("diff: read parent %s: %w", after.Parents[0], err)
				}
				beforeTree = parent.TreeHash
			}

			return printTreePatch(cmd, r, beforeTree, after.TreeHash)
		},
	}
}

// printTreePatch walks both trees and writes a unified diff for every path
// whose content or mode differs. An empty beforeTree diffs against nothing,
// so every file shows as added.
func printTreePatch(cmd *cobra.Command, r *repo.Repo, beforeTree, afterTree object.Hash) error {
	before := make(map[string]repo.FileEntry)
	if beforeTree != "" {
		files, err := r.ListFiles(beforeTree, repo.MissingObjectFail)
		if err != nil {
			return fmt.Errorf("diff: walk before tree: %w", err)
		}
		for _, e := range files {
			before[e.Path] = e
		}
	}

	after := make(map[string]repo.FileEntry)
	files, err := r.ListFiles(afterTree, repo.MissingObjectFail)
	if err != nil {
		return fmt.Errorf("diff: walk after tree: %w", err)
	}
	for _, e := range files {
		after[e.Path] = e
	}

	paths := make([]string, 0, len(before)+len(after))
	seen := make(map[string]bool, len(before)+len(after))
	for p := range before {
		paths = append(paths, p)
		seen[p] = true
	}
	for p := range after {
		if !seen[p] {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	out := cmd.OutOrStdout()
	for _, p := range paths {
		b, inBefore := before[p]
		a, inAfter := after[p]
		if inBefore && inAfter && b.Hash == a.Hash && b.Mode == a.Mode {
			continue
		}

		var beforeData, afterData []byte
		if inBefore {
			blob, err := r.Store.ReadBlob(b.Hash)
			if err != nil {
				return fmt.Errorf("diff: read blob %s: %w", b.Hash, err)
			}
			beforeData = blob.Data
		}
		if inAfter {
			blob, err := r.Store.ReadBlob(a.Hash)
			if err != nil {
				return fmt.Errorf("diff: read blob %s: %w", a.Hash, err)
			}
			afterData = blob.Data
		}

		fmt.Fprint(out, diff.Unified(p, beforeData, afterData))
	}
	return nil
}
