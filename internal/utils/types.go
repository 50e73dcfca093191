package utils

type Downloader interface {
	Download(job *GrabJob) error
	BuildJob(job *GrabJob) error
	ValidateJob(job *GrabJob) error
}

type GrabJob struct {
	ID               string
	JobType          string
	URL              string
	OutputDir        string
	ProgressFunc     func(downloaded, total int64)
	StreamFunc       func(line string)
	Metadata         map[string]any
	HTTPClientConfig HTTPClientConfig
}

type MediaMeta struct {
	Title     string
	Artist    string
	Thumbnail string
}
