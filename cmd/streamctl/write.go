package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/stream"
)

func writeCmd(a *app) *cobra.Command {
	var appendMode bool
	cmd := &cobra.Command{
		Use:   "write PATH",
		Short: "write stdin to a file",
		Long: `Write stdin to a file.

The file is created or truncated unless --append is given, in which
case it must already exist and stdin is added to its end.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			mode := stream.ModeWrite | stream.ModeCreate
			if appendMode {
				mode = stream.ModeWrite | stream.ModeOpenExisting
			}
			s, err := a.open(args[0], mode)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := s.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			if appendMode {
				if _, err := s.Seek(0, io.SeekEnd); err != nil {
					return err
				}
			}
			n, err := io.Copy(s, cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("write %s: %w", args[0], err)
			}
			a.logger.Debug("wrote stream", "path", args[0], "bytes", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&appendMode, "append", false, "append to an existing file instead of replacing it")

	return cmd
}
