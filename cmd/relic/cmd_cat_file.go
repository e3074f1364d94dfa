package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/relic/pkg/object"
)

func newCatFileCmd() *cobra.Command {
	var showType bool
	var showSize bool

	cmd := &cobra.Command{
		Use:   "cat-file <object>",
		Short: "Show object type, size, or content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if showType && showSize {
				return fmt.Errorf("cat-file: -t and -s are mutually exclusive")
			}

			r, err := openRepo()
			if err != nil {
				return err
			}
			h, err := resolveRevision(r, args[0])
			if err != nil {
				return err
			}

			objType, data, err := r.Store.Read(h)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case showType:
				fmt.Fprintln(out, objType)
			case showSize:
				fmt.Fprintln(out, len(data))
			default:
				return prettyPrintObject(cmd, objType, data)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showType, "type", "t", false, "show the object type")
	cmd.Flags().BoolVarP(&showSize, "size", "s", false, "show the payload size in bytes")

	return cmd
}

func prettyPrintObject(cmd *cobra.Command, objType object.ObjectType, data []byte) error {
	out := cmd.OutOrStdout()
	switch objType {
	case object.TypeBlob:
		_, err := out.Write(data)
		return err
	case object.TypeCommit:
		c, err := object.UnmarshalCommit(data)
		if err != nil {
			return err
		}
		_, err = out.Write(object.MarshalCommit(c))
		return err
	case object.TypeTree:
		tree, err := object.UnmarshalTree(data)
		if err != nil {
			return err
		}
		printTreeEntries(cmd, tree)
		return nil
	}
	return fmt.Errorf("cat-file: cannot pretty-print %q", objType)
}
