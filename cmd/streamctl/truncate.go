package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/stream"
)

func truncateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "truncate PATH SIZE",
		Short: "shrink or extend an existing file to SIZE bytes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			size, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid size %q: %w", args[1], err)
			}

			s, err := a.open(args[0], stream.ModeWrite|stream.ModeOpenExisting)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := s.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			return s.SetSize(size)
		},
	}
	return cmd
}
