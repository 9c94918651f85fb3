package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"scene-graph/internal/logging"
	"scene-graph/scene"
)

// app carries state shared by the subcommands.
type app struct {
	logLevel string
	logger   *slog.Logger
}

func (a *app) allocator() *scene.Allocator {
	return scene.NewAllocator(scene.WithLogger(a.logger))
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logging.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "scenectl",
		Short: "scenectl inspects and converts scene graph files",
		Long: `scenectl loads scene trees from .json, .yaml, .gltf or .glb files,
prints their hierarchy and world transforms, converts between formats and
publishes snapshots to Redis.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newDumpCmd(a),
		newConvertCmd(a),
		newWorldCmd(a),
		newPushCmd(a),
		newPullCmd(a),
		newListCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure. An
// interrupt cancels the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
