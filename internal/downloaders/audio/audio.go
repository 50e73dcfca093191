package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tanq16/ytgrab/internal/cleanup"
	"github.com/tanq16/ytgrab/internal/extract"
	"github.com/tanq16/ytgrab/internal/postprocess"
	"github.com/tanq16/ytgrab/internal/utils"
)

type AudioDownloader struct{}

func (d *AudioDownloader) ValidateJob(job *utils.GrabJob) error {
	if job.URL == "" {
		return fmt.Errorf("%w: no URL provided", utils.ErrInvalidInput)
	}
	if !utils.IsYouTubeURL(job.URL) {
		return fmt.Errorf("%w: not a YouTube URL", utils.ErrInvalidInput)
	}
	if bitrate, ok := job.Metadata["bitrate"].(string); ok && bitrate != "" && bitrate != "0" {
		if _, err := strconv.Atoi(bitrate); err != nil {
			return fmt.Errorf("%w: bitrate must be a number in kbps or 0", utils.ErrInvalidInput)
		}
	}
	return nil
}

func (d *AudioDownloader) BuildJob(job *utils.GrabJob) error {
	if _, ok := job.Metadata["bitrate"].(string); !ok {
		job.Metadata["bitrate"] = "0"
	}
	if job.OutputDir == "" {
		job.OutputDir = utils.DefaultMediaDir("audio")
	}
	if err := os.MkdirAll(job.OutputDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %v", err)
	}
	if err := extract.EnsureTools(context.Background()); err != nil {
		return err
	}
	return nil
}

func (d *AudioDownloader) Download(job *utils.GrabJob) error {
	ctx := context.Background()
	playlistAll, _ := job.Metadata["playlist"].(bool)
	items, err := extract.ResolveItems(ctx, job.URL, playlistAll)
	if err != nil {
		return err
	}

	client := utils.NewGrabHTTPClient(job.HTTPClientConfig)
	bitrate := job.Metadata["bitrate"].(string)
	var succeeded, failed int
	var itemErrors []string
	var stems []string
	for i, item := range items {
		if len(items) > 1 && job.StreamFunc != nil {
			job.StreamFunc(fmt.Sprintf("Item %d/%d", i+1, len(items)))
		}
		mp3Path, err := d.downloadItem(ctx, job, item, bitrate, client)
		if err != nil {
			failed++
			itemErrors = append(itemErrors, err.Error())
			log.Warn().Str("op", "audio/download").Err(err).Msgf("Item %d/%d failed", i+1, len(items))
			continue
		}
		succeeded++
		base := filepath.Base(mp3Path)
		stems = append(stems, strings.TrimSuffix(base, filepath.Ext(base)))
		log.Info().Str("op", "audio/download").Msgf("Produced %s", mp3Path)
	}

	// Sweep runs regardless of post-processing outcome.
	sweepArtifacts(job.OutputDir, stems)

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

// sweepArtifacts removes fresh thumbnail leftovers belonging to this run's
// artifacts. An empty stem list would make the sweeper unfiltered, so it is
// skipped instead of touching files the run never created.
func sweepArtifacts(dir string, stems []string) {
	if len(stems) == 0 {
		return
	}
	cleanup.Sweep(dir, stems, cleanup.MaxThumbAge)
}

// downloadItem handles one playlist entry: probe metadata, fetch best audio,
// then run the transcode/tagging chain. The raw download survives a failed
// post-process so nothing is lost.
func (d *AudioDownloader) downloadItem(ctx context.Context, job *utils.GrabJob, url, bitrate string, client *utils.GrabHTTPClient) (string, error) {
	meta, err := extract.Probe(ctx, url)
	if err != nil {
		return "", err
	}
	if job.StreamFunc != nil && meta.Title != "" {
		job.StreamFunc(fmt.Sprintf("Fetching %s", meta.Title))
	}
	rawPath, err := extract.Fetch(ctx, &extract.Request{
		URL:          url,
		OutputDir:    job.OutputDir,
		Format:       extract.AudioSelector,
		ProgressFunc: job.ProgressFunc,
		StreamFunc:   job.StreamFunc,
	})
	if err != nil {
		return "", err
	}
	mp3Path, err := postprocess.Run(&postprocess.Params{
		RawPath: rawPath,
		Meta:    meta,
		Bitrate: bitrate,
		Client:  client,
	}, job.StreamFunc)
	if err != nil {
		log.Warn().Str("op", "audio/download").Err(err).Msgf("Raw download kept at %s", rawPath)
		return "", err
	}
	return mp3Path, nil
}
