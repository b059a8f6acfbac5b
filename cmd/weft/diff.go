package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weft-ui/weft/pkg/protocol"
	"github.com/weft-ui/weft/pkg/vdom"
)

func diffCmd() *cobra.Command {
	var seq uint64

	cmd := &cobra.Command{
		Use:   "diff <old.json> <new.json>",
		Short: "Diff two vnode trees and print the patch frame",
		Long: `Reads two vnode trees in the JSON wire form, diffs them, and
prints the resulting patch frame to stdout. Pass "-" for either
argument to diff against an empty tree.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			old, err := readTree(args[0])
			if err != nil {
				return err
			}
			next, err := readTree(args[1])
			if err != nil {
				return err
			}

			patches, err := vdom.Diff(old, next)
			if err != nil {
				return err
			}

			out, err := protocol.EncodeFrame(&protocol.Frame{Seq: seq, Patches: patches})
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seq, "seq", 0, "Sequence number stamped on the frame")

	return cmd
}

// readTree loads a vnode tree from a JSON file, or returns nil for "-".
func readTree(path string) (*vdom.VNode, error) {
	if path == "-" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return protocol.DecodeTree(data)
}
