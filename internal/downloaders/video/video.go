package video

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/tanq16/ytgrab/internal/extract"
	"github.com/tanq16/ytgrab/internal/utils"
)

type VideoDownloader struct{}

func (d *VideoDownloader) ValidateJob(job *utils.GrabJob) error {
	if job.URL == "" {
		return fmt.Errorf("%w: no URL provided", utils.ErrInvalidInput)
	}
	if !utils.IsYouTubeURL(job.URL) {
		return fmt.Errorf("%w: not a YouTube URL", utils.ErrInvalidInput)
	}
	if quality, ok := job.Metadata["quality"].(string); ok && quality != "" {
		if _, exists := extract.FormatSelectors[quality]; !exists {
			return fmt.Errorf("%w: unsupported quality %s", utils.ErrInvalidInput, quality)
		}
	}
	return nil
}

func (d *VideoDownloader) BuildJob(job *utils.GrabJob) error {
	quality, ok := job.Metadata["quality"].(string)
	if !ok || quality == "" {
		quality = "best"
		job.Metadata["quality"] = quality
	}
	job.Metadata["selector"] = extract.FormatSelectors[quality]
	if job.OutputDir == "" {
		job.OutputDir = utils.DefaultMediaDir("video")
	}
	if err := os.MkdirAll(job.OutputDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %v", err)
	}
	if err := extract.EnsureTools(context.Background()); err != nil {
		return err
	}
	return nil
}

func (d *VideoDownloader) Download(job *utils.GrabJob) error {
	ctx := context.Background()
	playlistAll, _ := job.Metadata["playlist"].(bool)
	items, err := extract.ResolveItems(ctx, job.URL, playlistAll)
	if err != nil {
		return err
	}

	selector := job.Metadata["selector"].(string)
	var succeeded, failed int
	var itemErrors []string
	for i, item := range items {
		if len(items) > 1 && job.StreamFunc != nil {
			job.StreamFunc(fmt.Sprintf("Item %d/%d", i+1, len(items)))
		}
		artifact, err := extract.Fetch(ctx, &extract.Request{
			URL:          item,
			OutputDir:    job.OutputDir,
			Format:       selector,
			MergeMP4:     true,
			ProgressFunc: job.ProgressFunc,
			StreamFunc:   job.StreamFunc,
		})
		if err != nil {
			failed++
			itemErrors = append(itemErrors, err.Error())
			log.Warn().Str("op", "video/download").Err(err).Msgf("Item %d/%d failed", i+1, len(items))
			continue
		}
		succeeded++
		log.Info().Str("op", "video/download").Msgf("Downloaded %s", artifact)
	}

	job.Metadata["succeeded"] = succeeded
	job.Metadata["failed"] = failed
	job.Metadata["itemErrors"] = itemErrors
	if succeeded == 0 {
		return &utils.DownloadFailedError{URL: job.URL, Err: fmt.Errorf("all %d item(s) failed", len(items))}
	}

	if noOpen, _ := job.Metadata["noOpen"].(bool); !noOpen {
		utils.OpenFolder(job.OutputDir)
	}
	return nil
}
