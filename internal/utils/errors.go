package utils

import (
	"errors"
	"fmt"
)

var ErrInvalidInput = errors.New("invalid input")

// DownloadFailedError reports a failed extraction for a single item. There is
// no automatic retry; playlist runs continue with the remaining items.
type DownloadFailedError struct {
	URL string
	Err error
}

func (e *DownloadFailedError) Error() string {
	return fmt.Sprintf("download failed for %s: %v", e.URL, e.Err)
}

func (e *DownloadFailedError) Unwrap() error { return e.Err }

// PostProcessFailedError reports a failed transcode or tagging step. The raw
// downloaded media is preserved when this is returned.
type PostProcessFailedError struct {
	Stage string
	Path  string
	Err   error
}

func (e *PostProcessFailedError) Error() string {
	return fmt.Sprintf("post-processing (%s) failed for %s: %v", e.Stage, e.Path, e.Err)
}

func (e *PostProcessFailedError) Unwrap() error { return e.Err }
