package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/relic/pkg/object"
)

func newLsTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls-tree <tree-ish>",
		Short: "List the entries of a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			h, err := resolveRevision(r, args[0])
			if err != nil {
				return err
			}

			// A commit names its root tree.
			objType, data, err := r.Store.Read(h)
			if err != nil {
				return err
			}
			if objType == object.TypeCommit {
				c, err := object.UnmarshalCommit(data)
				if err != nil {
					return err
				}
				h = c.TreeHash
			}

			tree, err := r.Store.ReadTree(h)
			if err != nil {
				return err
			}
			printTreeEntries(cmd, tree)
			return nil
		},
	}
}

func printTreeEntries(cmd *cobra.Command, tree *object.TreeObj) {
	out := cmd.OutOrStdout()
	for _, e := range tree.Entries {
		mode := e.Mode
		if len(mode) == 5 {
			mode = "0" + mode
		}
		fmt.Fprintf(out, "%s %s %s\t%s\n", mode, e.Type(), e.Hash, e.Name)
	}
}
