// Command streamctl reads, writes and resizes files through file streams.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(execute(newCmd(), os.Args[1:]))
}

// execute runs cmd with args and returns the process exit code.
// cobra has already printed the error to stderr when it fails.
func execute(cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
