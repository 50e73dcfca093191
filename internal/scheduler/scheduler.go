package scheduler

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tanq16/ytgrab/internal/downloaders/audio"
	"github.com/tanq16/ytgrab/internal/downloaders/video"
	"github.com/tanq16/ytgrab/internal/output"
	"github.com/tanq16/ytgrab/internal/utils"
)

var downloaderRegistry = map[string]utils.Downloader{
	"video": &video.VideoDownloader{},
	"audio": &audio.AudioDownloader{},
}

// ErrAllJobsFailed is returned when no job produced an artifact. Partial
// playlist failures are best-effort warnings and still count as success.
var ErrAllJobsFailed = errors.New("all jobs failed")

// Run executes the jobs across numWorkers workers and blocks until done.
// A worker count below 1 is clamped so every job is always processed.
func Run(jobs []utils.GrabJob, numWorkers int) error {
	if numWorkers < 1 {
		numWorkers = 1
	}
	outputMgr := output.NewManager()
	outputMgr.StartDisplay()

	jobCh := make(chan utils.GrabJob, len(jobs))
	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			processJobs(jobCh, outputMgr)
		}()
	}
	wg.Wait()

	failed := outputMgr.Failures() > 0 && outputMgr.Successes() == 0
	outputMgr.StopDisplay()
	if failed {
		return ErrAllJobsFailed
	}
	return nil
}

func processJobs(jobCh <-chan utils.GrabJob, outputMgr *output.Manager) {
	for job := range jobCh {
		jobID := outputMgr.Register(job.URL)

		downloader, exists := downloaderRegistry[job.JobType]
		if !exists {
			outputMgr.ReportError(jobID, fmt.Errorf("unknown job type: %s", job.JobType))
			outputMgr.SetMessage(jobID, fmt.Sprintf("Error: Unknown job type %s", job.JobType))
			continue
		}

		outputMgr.SetStatus(jobID, "pending")
		outputMgr.SetMessage(jobID, fmt.Sprintf("Validating %s job", job.JobType))
		if err := downloader.ValidateJob(&job); err != nil {
			outputMgr.ReportError(jobID, err)
			outputMgr.SetMessage(jobID, fmt.Sprintf("Validation failed for %s", job.URL))
			continue
		}

		outputMgr.SetMessage(jobID, fmt.Sprintf("Preparing %s job", job.JobType))
		if err := downloader.BuildJob(&job); err != nil {
			outputMgr.ReportError(jobID, err)
			outputMgr.SetMessage(jobID, fmt.Sprintf("Preparation failed for %s", job.URL))
			continue
		}

		job.ProgressFunc = func(downloaded, total int64) {
			if total > 0 {
				outputMgr.SetProgress(jobID, downloaded, total,
					fmt.Sprintf("%s / %s", utils.FormatBytes(uint64(downloaded)), utils.FormatBytes(uint64(total))))
			} else {
				outputMgr.SetProgress(jobID, 0, 0, fmt.Sprintf("%s downloaded", utils.FormatBytes(uint64(downloaded))))
			}
		}
		job.StreamFunc = func(line string) {
			outputMgr.AddStreamLine(jobID, line)
		}

		outputMgr.SetStatus(jobID, "downloading")
		outputMgr.SetMessage(jobID, fmt.Sprintf("Downloading %s", job.URL))
		if err := downloader.Download(&job); err != nil {
			outputMgr.ReportError(jobID, err)
			outputMgr.SetMessage(jobID, fmt.Sprintf("Download failed for %s", job.URL))
			continue
		}

		if failedItems, _ := job.Metadata["failed"].(int); failedItems > 0 {
			if itemErrors, ok := job.Metadata["itemErrors"].([]string); ok {
				for _, msg := range itemErrors {
					outputMgr.AddWarning(jobID, errors.New(msg))
				}
			}
			succeededItems, _ := job.Metadata["succeeded"].(int)
			outputMgr.CompleteWithWarning(jobID,
				fmt.Sprintf("Completed %s (%d item(s) ok, %d failed)", job.URL, succeededItems, failedItems))
			continue
		}
		outputMgr.Complete(jobID, fmt.Sprintf("Completed %s", job.URL))
	}
}
