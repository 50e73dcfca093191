package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tanq16/ytgrab/internal/cleanup"
	"github.com/tanq16/ytgrab/internal/output"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [DIR]",
		Short: "Sweep recent thumbnail leftovers from a directory",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			cleanup.Sweep(dir, nil, cleanup.MaxThumbAge)
			output.PrintSuccess("Thumbnail sweep complete")
		},
	}
}
