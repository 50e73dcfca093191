package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNormalizeJobType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"video", "video"},
		{"yt", "video"},
		{"youtube", "video"},
		{"audio", "audio"},
		{"music", "audio"},
		{"mp3", "audio"},
		{"gdrive", ""},
		{"", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, normalizeJobType(tt.in), "type %q", tt.in)
	}
}

func TestBuildJobsFromBatch(t *testing.T) {
	raw := `
video:
  - link: https://www.youtube.com/watch?v=AAA
    quality: 720p
  - link: https://www.youtube.com/playlist?list=PLx
    playlist: true
audio:
  - link: https://youtu.be/BBB
    bitrate: "128"
    op: /tmp/music
`
	var batchFile BatchFile
	require.NoError(t, yaml.Unmarshal([]byte(raw), &batchFile))

	jobs := buildJobsFromBatch(batchFile)
	require.Len(t, jobs, 3)

	byURL := make(map[string]int)
	for i, job := range jobs {
		byURL[job.URL] = i
	}

	first := jobs[byURL["https://www.youtube.com/watch?v=AAA"]]
	require.Equal(t, "video", first.JobType)
	require.Equal(t, "720p", first.Metadata["quality"])
	require.Equal(t, false, first.Metadata["playlist"])

	second := jobs[byURL["https://www.youtube.com/playlist?list=PLx"]]
	require.Equal(t, true, second.Metadata["playlist"])

	third := jobs[byURL["https://youtu.be/BBB"]]
	require.Equal(t, "audio", third.JobType)
	require.Equal(t, "128", third.Metadata["bitrate"])
	require.Equal(t, "/tmp/music", third.OutputDir)
	require.Equal(t, true, third.Metadata["noOpen"])
}

func TestBuildJobsFromBatchSkipsInvalidEntries(t *testing.T) {
	batchFile := BatchFile{
		"video":   {{Link: ""}},
		"torrent": {{Link: "magnet:?xt=abc"}},
	}
	jobs := buildJobsFromBatch(batchFile)
	require.Empty(t, jobs)
}
