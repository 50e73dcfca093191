package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tanq16/ytgrab/internal/output"
	"github.com/tanq16/ytgrab/internal/scheduler"
	"github.com/tanq16/ytgrab/internal/utils"
)

func newAudioCmd() *cobra.Command {
	var outputDir string
	var bitrate string
	var playlist bool

	cmd := &cobra.Command{
		Use:     "audio [URL] [--output DIR] [--bitrate KBPS] [--playlist]",
		Short:   "Download YouTube audio as MP3 with cover art",
		Aliases: []string{"music"},
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			job := utils.GrabJob{
				JobType:          "audio",
				URL:              args[0],
				OutputDir:        outputDir,
				HTTPClientConfig: globalHTTPConfig,
				Metadata:         make(map[string]any),
			}
			job.Metadata["bitrate"] = bitrate
			job.Metadata["playlist"] = playlist
			job.Metadata["noOpen"] = noOpen
			if err := scheduler.Run([]utils.GrabJob{job}, workers); err != nil {
				output.PrintError("Encountered failed operation(s)")
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (defaults to the Music library)")
	cmd.Flags().StringVar(&bitrate, "bitrate", "0", "MP3 bitrate in kbps (0 keeps source-max VBR)")
	cmd.Flags().BoolVar(&playlist, "playlist", false, "Download every item of a playlist instead of the first")
	return cmd
}
