package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tanq16/ytgrab/internal/output"
	"github.com/tanq16/ytgrab/internal/scheduler"
	"github.com/tanq16/ytgrab/internal/utils"
)

func newVideoCmd() *cobra.Command {
	var outputDir string
	var quality string
	var playlist bool

	cmd := &cobra.Command{
		Use:     "video [URL] [--output DIR] [--quality QUALITY] [--playlist]",
		Short:   "Download a YouTube video as MP4",
		Aliases: []string{"yt"},
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			job := utils.GrabJob{
				JobType:          "video",
				URL:              args[0],
				OutputDir:        outputDir,
				HTTPClientConfig: globalHTTPConfig,
				Metadata:         make(map[string]any),
			}
			job.Metadata["quality"] = quality
			job.Metadata["playlist"] = playlist
			job.Metadata["noOpen"] = noOpen
			if err := scheduler.Run([]utils.GrabJob{job}, workers); err != nil {
				output.PrintError("Encountered failed operation(s)")
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (defaults to the Videos library)")
	cmd.Flags().StringVar(&quality, "quality", "best", "Quality selector (best, 1080p, 720p, decent, etc.)")
	cmd.Flags().BoolVar(&playlist, "playlist", false, "Download every item of a playlist instead of the first")
	return cmd
}
