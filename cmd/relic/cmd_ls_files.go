package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odvcencio/relic/pkg/repo"
)

func newLsFilesCmd() *cobra.Command {
	var onMissing string

	cmd := &cobra.Command{
		Use:   "ls-files [tree-ish]",
		Short: "List every file reachable from a tree or commit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}
			cfg, err := r.ReadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("on-missing") {
				onMissing = cfg.Walk.OnMissingObject
			}
			policy, err := repo.ParseMissingPolicy(onMissing)
			if err != nil {
				return err
			}

			target := "HEAD"
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				target = args[0]
			}
			root, err := resolveRevision(r, target)
			if err != nil {
				return err
			}

			files, err := r.ListFiles(root, policy)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range files {
				fmt.Fprintln(out, f.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&onMissing, "on-missing", string(repo.MissingObjectFail),
		"how to treat missing objects during the walk (fail or emit-path)")

	return cmd
}
