package extract

import (
	"fmt"

	"github.com/lrstanley/go-ytdlp"

	"github.com/tanq16/ytgrab/internal/utils"
)

// Tracker maps yt-dlp progress updates onto the job callbacks. Rendered
// progress never decreases: yt-dlp restarts its counters between fragments
// and formats, so regressions are clamped to the high-water mark.
type Tracker struct {
	progressFunc  func(downloaded, total int64)
	streamFunc    func(line string)
	maxDownloaded int64
	maxTotal      int64
	done          bool
}

func NewTracker(progressFunc func(downloaded, total int64), streamFunc func(line string)) *Tracker {
	return &Tracker{
		progressFunc: progressFunc,
		streamFunc:   streamFunc,
	}
}

func (t *Tracker) Observe(update ytdlp.ProgressUpdate) {
	if t.done {
		return
	}
	switch update.Status {
	case ytdlp.ProgressStatusDownloading:
		downloaded := int64(update.DownloadedBytes)
		total := int64(update.TotalBytes)
		if downloaded > t.maxDownloaded {
			t.maxDownloaded = downloaded
		}
		if total > t.maxTotal {
			t.maxTotal = total
		}
		if t.progressFunc != nil {
			t.progressFunc(t.maxDownloaded, t.maxTotal)
		}
	case ytdlp.ProgressStatusFinished:
		t.done = true
		if t.progressFunc != nil && t.maxTotal > 0 {
			t.progressFunc(t.maxTotal, t.maxTotal)
		}
		if t.streamFunc != nil {
			size := ""
			if t.maxTotal > 0 {
				size = fmt.Sprintf(" (%s)", utils.FormatBytes(uint64(t.maxTotal)))
			}
			t.streamFunc("Download finished" + size)
		}
	case ytdlp.ProgressStatusError:
		t.done = true
		if t.streamFunc != nil {
			t.streamFunc("Download error reported")
		}
	}
}

// Downloaded returns the high-water mark of downloaded bytes.
func (t *Tracker) Downloaded() int64 { return t.maxDownloaded }

// Total returns the largest total-bytes figure seen, 0 if unknown.
func (t *Tracker) Total() int64 { return t.maxTotal }

// Finished reports whether a terminal status was observed.
func (t *Tracker) Finished() bool { return t.done }
