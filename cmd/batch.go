package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tanq16/ytgrab/internal/output"
	"github.com/tanq16/ytgrab/internal/scheduler"
	"github.com/tanq16/ytgrab/internal/utils"
)

type BatchEntry struct {
	Link     string `yaml:"link"`
	Output   string `yaml:"op,omitempty"`
	Quality  string `yaml:"quality,omitempty"`
	Bitrate  string `yaml:"bitrate,omitempty"`
	Playlist bool   `yaml:"playlist,omitempty"`
}

type BatchFile map[string][]BatchEntry

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [YAML_FILE]",
		Short: "Process multiple downloads from a YAML file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			data, err := os.ReadFile(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading YAML file: %v\n", err)
				os.Exit(1)
			}
			var batchFile BatchFile
			if err := yaml.Unmarshal(data, &batchFile); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing YAML file: %v\n", err)
				os.Exit(1)
			}
			jobs := buildJobsFromBatch(batchFile)
			if len(jobs) == 0 {
				fmt.Fprintf(os.Stderr, "No valid jobs found in the batch file\n")
				os.Exit(1)
			}
			if err := scheduler.Run(jobs, workers); err != nil {
				output.PrintError("Encountered failed operation(s)")
				os.Exit(1)
			}
		},
	}
}

func buildJobsFromBatch(batchFile BatchFile) []utils.GrabJob {
	var jobs []utils.GrabJob
	for jobType, entries := range batchFile {
		normalizedType := normalizeJobType(jobType)
		if normalizedType == "" {
			fmt.Fprintf(os.Stderr, "Warning: Unknown job type '%s', skipping...\n", jobType)
			continue
		}
		for _, entry := range entries {
			if entry.Link == "" {
				fmt.Fprintf(os.Stderr, "Warning: Empty link found in %s section, skipping...\n", jobType)
				continue
			}
			job := utils.GrabJob{
				JobType:          normalizedType,
				URL:              entry.Link,
				OutputDir:        entry.Output,
				HTTPClientConfig: globalHTTPConfig,
				Metadata:         make(map[string]any),
			}
			job.Metadata["playlist"] = entry.Playlist
			job.Metadata["noOpen"] = true // batch runs never pop file managers
			switch normalizedType {
			case "video":
				if entry.Quality != "" {
					job.Metadata["quality"] = entry.Quality
				}
			case "audio":
				if entry.Bitrate != "" {
					job.Metadata["bitrate"] = entry.Bitrate
				}
			}
			jobs = append(jobs, job)
		}
	}
	return jobs
}

func normalizeJobType(jobType string) string {
	switch jobType {
	case "video", "videos", "yt", "youtube":
		return "video"
	case "audio", "music", "mp3", "ytmusic":
		return "audio"
	}
	return ""
}
