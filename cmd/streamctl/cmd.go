package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/stream"
)

// app carries state shared by all subcommands.
type app struct {
	logger *slog.Logger
	opts   []stream.Option
}

func (a *app) open(path string, mode stream.Mode) (*stream.FileStream, error) {
	opts := append([]stream.Option{stream.WithLogger(a.logger)}, a.opts...)
	return stream.CreateOnFile(path, mode, opts...)
}

func newCmd(opts ...stream.Option) *cobra.Command {
	var verbose bool
	a := &app{opts: opts}

	cmd := &cobra.Command{
		Use:               "streamctl",
		Short:             "read, write and resize files through file streams",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	cmd.AddCommand(catCmd(a))
	cmd.AddCommand(writeCmd(a))
	cmd.AddCommand(truncateCmd(a))
	cmd.AddCommand(sizeCmd(a))

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log stream lifecycle events to stderr")

	return cmd
}
