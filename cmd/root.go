package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tanq16/ytgrab/internal/utils"
)

var (
	workers int
	debug   bool
	noOpen  bool
)

var YtgrabVersion = "dev"

var globalHTTPConfig = utils.HTTPClientConfig{
	Timeout:   3 * time.Minute,
	KATimeout: 90 * time.Second,
	UserAgent: utils.GetRandomUserAgent(),
}

var rootCmd = &cobra.Command{
	Use:     "ytgrab",
	Short:   "Ytgrab downloads YouTube videos and music from the terminal",
	Version: YtgrabVersion,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(debug)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 1, "Number of jobs to process in parallel")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noOpen, "no-open", false, "Do not open the destination folder when finished")

	rootCmd.AddCommand(newVideoCmd())
	rootCmd.AddCommand(newAudioCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newCleanCmd())
}
