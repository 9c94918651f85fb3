package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	sceneio "scene-graph/io"
	"scene-graph/scene"
)

func newWorldCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "world FILE NAME",
		Short: "Print the world transform of a named node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			roots, err := sceneio.LoadFile(a.allocator(), args[0])
			if err != nil {
				return err
			}

			var node *scene.Node
			for _, r := range roots {
				if node = r.ObjectByName(args[1]); node != nil {
					break
				}
			}
			if node == nil {
				return errors.Errorf("no node named %q in %s", args[1], args[0])
			}

			p := node.WorldPosition()
			q := node.WorldQuaternion()
			s := node.WorldScale()
			d := node.WorldDirection()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path:       %s\n", node.Path())
			fmt.Fprintf(out, "position:   %.6g %.6g %.6g\n", p.X, p.Y, p.Z)
			fmt.Fprintf(out, "quaternion: %.6g %.6g %.6g %.6g\n", q.X, q.Y, q.Z, q.W)
			fmt.Fprintf(out, "scale:      %.6g %.6g %.6g\n", s.X, s.Y, s.Z)
			fmt.Fprintf(out, "direction:  %.6g %.6g %.6g\n", d.X, d.Y, d.Z)
			return nil
		},
	}
}
