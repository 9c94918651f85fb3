package main

import (
	"fmt"

	"github.com/spf13/cobra"

	sceneio "scene-graph/io"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a scene file to another format",
		Long:  `The formats are picked from the file extensions: .json, .yaml/.yml, .gltf or .glb.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]
			if _, err := sceneio.FormatFromPath(out); err != nil {
				return err
			}

			roots, err := sceneio.LoadFile(a.allocator(), in)
			if err != nil {
				return err
			}
			if err := sceneio.SaveFile(out, roots...); err != nil {
				return err
			}

			a.logger.Info("converted scene", "in", in, "out", out, "roots", len(roots))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
}
