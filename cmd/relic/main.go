package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odvcencio/relic/pkg/object"
	"github.com/odvcencio/relic/pkg/repo"
)

var rootPath = "."

func main() {
	root := &cobra.Command{
		Use:   "relic",
		Short: "Read-only inspection of git object stores",
	}
	root.PersistentFlags().StringVarP(&rootPath, "path", "C", ".", "run as if started in this directory")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newCatFileCmd())
	root.AddCommand(newLogCmd())
	root.AddCommand(newLsTreeCmd())
	root.AddCommand(newLsFilesCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newDiffCmd())
	root.AddCommand(newBranchCmd())
	root.AddCommand(newReflogCmd())
	root.AddCommand(newFsckCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "relic 0.1.0-dev")
		},
	}
}

func openRepo() (*repo.Repo, error) {
	return repo.Open(rootPath)
}

// resolveRevision turns a ref name or a literal hash into an object hash.
func resolveRevision(r *repo.Repo, target string) (object.Hash, error) {
	target = strings.TrimSpace(target)
	if resolved, err := r.ResolveRef(target); err == nil {
		return resolved, nil
	}
	h, err := object.ParseHash(target)
	if err != nil {
		return "", fmt.Errorf("unknown ref or object %q", target)
	}
	if !r.Store.Has(h) {
		return "", fmt.Errorf("unknown ref or object %q", target)
	}
	return h, nil
}
