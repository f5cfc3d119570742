package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/stream"
)

func sizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "size PATH",
		Short: "print the size of a file in bytes",
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

			end, err := s.Seek(0, io.SeekEnd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), end)
			return err
		},
	}
	return cmd
}
