package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/stream"
)

func catCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat PATH",
		Short: "print a file to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := a.open(args[0], stream.ModeRead|stream.ModeOpenExisting)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := s.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			if _, err := io.Copy(cmd.OutOrStdout(), s); err != nil {
				return fmt.Errorf("cat %s: %w", args[0], err)
			}
			return nil
		},
	}
	return cmd
}
