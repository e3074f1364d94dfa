package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odvcencio/relic/pkg/object"
	"github.com/odvcencio/relic/pkg/repo"
)

func newShowCmd() *cobra.Command {
	var patch bool

	cmd := &cobra.Command{
		Use:   "show [commit-ish] [path]",
		Short: "Show commit metadata and changed files, or a file's content",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}

			target := "HEAD"
			if len(args) >= 1 && strings.TrimSpace(args[0]) != "" {
				target = strings.TrimSpace(args[0])
			}
			h, err := resolveRevision(r, target)
			if err != nil {
				return err
			}
			commit, err := r.Store.ReadCommit(h)
			if err != nil {
				return fmt.Errorf("show: read commit %s: %w", h, err)
			}

			if len(args) == 2 {
				return showFileAtPath(cmd, r, commit.TreeHash, args[1])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "commit %s\n", h)
			fmt.Fprintf(out, "Author: %s <%s>\n", commit.Author.Name, commit.Author.Email)
			fmt.Fprintf(out, "Date:   %s\n", commit.Author.Date())
			fmt.Fprintln(out)
			for _, line := range strings.Split(commit.Message, "\n") {
				fmt.Fprintf(out, "    %s\n", line)
			}
			fmt.Fprintln(out)

			if patch {
				var beforeTree object.Hash
				if len(commit.Parents) > 0 {
					parent, err := r.Store.ReadCommit(commit.Parents[0])
					if err != nil {
						return fmt.Errorf("show: read parent %s: %w", commit.Parents[0], err)
					}
					beforeTree = parent.TreeHash
				}
				return printTreePatch(cmd, r, beforeTree, commit.TreeHash)
			}

			before := make(map[string]repo.FileEntry)
			if len(commit.Parents) > 0 {
				parent, err := r.Store.ReadCommit(commit.Parents[0])
				if err != nil {
					return fmt.Errorf("show: read parent %s: %w", commit.Parents[0], err)
				}
				parentFiles, err := r.ListFiles(parent.TreeHash, repo.MissingObjectFail)
				if err != nil {
					return fmt.Errorf("show: walk parent tree: %w", err)
				}
				for _, e := range parentFiles {
					before[e.Path] = e
				}
			}

			after := make(map[string]repo.FileEntry)
			afterFiles, err := r.ListFiles(commit.TreeHash, repo.MissingObjectFail)
			if err != nil {
				return fmt.Errorf("show: walk tree: %w", err)
			}
			for _, e := range afterFiles {
				after[e.Path] = e
			}

			changes := summarizeTreeChanges(before, after)
			if len(changes) == 0 {
				return nil
			}

			fmt.Fprintln(out, "Changes:")
			for _, line := range changes {
				fmt.Fprintf(out, "  %s\n", line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&patch, "patch", "p", false, "show line diffs instead of the change summary")

	return cmd
}

func showFileAtPath(cmd *cobra.Command, r *repo.Repo, tree object.Hash, relPath string) error {
	entry, ok, err := r.EntryAtPath(tree, relPath)
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	if !ok {
		return fmt.Errorf("show: no entry at %q", relPath)
	}
	if entry.IsDir() {
		subtree, err := r.Store.ReadTree(entry.Hash)
		if err != nil {
			return err
		}
		printTreeEntries(cmd, subtree)
		return nil
	}
	blob, err := r.Store.ReadBlob(entry.Hash)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(blob.Data)
	return err
}

func summarizeTreeChanges(before, after map[string]repo.FileEntry) []string {
	paths := make(map[string]struct{}, len(before)+len(after))
	for p := range before {
		paths[p] = struct{}{}
	}
	for p := range after {
		paths[p] = struct{}{}
	}

	sorted := make([]string, 0, len(paths))
	for p := range paths {
		sorted = append(sorted, p)
	}
	sort.Strings(sorted)

	out := make([]string, 0, len(sorted))
	for _, p := range sorted {
		b, inBefore := before[p]
		a, inAfter := after[p]
		switch {
		case !inBefore && inAfter:
			out = append(out, "A "+p)
		case inBefore && !inAfter:
			out = append(out, "D "+p)
		case inBefore && inAfter && (b.Hash != a.Hash || b.Mode != a.Mode):
			out = append(out, "M "+p)
		}
	}
	return out
}
