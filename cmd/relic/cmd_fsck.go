package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFsckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fsck",
		Short: "Verify the integrity of all reachable objects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return err
			}

			sum, err := r.Check()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range sum.Problems {
				fmt.Fprintf(out, "error: %s: %s\n", p.Hash, p.Reason)
			}
			if len(sum.Problems) > 0 {
				return fmt.Errorf("fsck: %d broken object(s), %d verified", len(sum.Problems), sum.Checked)
			}

			fmt.Fprintf(out, "ok: verified %d object(s)\n", sum.Checked)
			return nil
		},
	}
}
