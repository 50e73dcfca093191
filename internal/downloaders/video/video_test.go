package video

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tanq16/ytgrab/internal/utils"
)

func TestValidateJob(t *testing.T) {
	d := &VideoDownloader{}
	tests := []struct {
		name    string
		url     string
		quality string
		wantErr bool
	}{
		{"valid watch URL", "https://www.youtube.com/watch?v=X", "best", false},
		{"valid short URL", "https://youtu.be/X", "", false},
		{"valid playlist URL", "https://www.youtube.com/playlist?list=PLx", "720p", false},
		{"empty URL", "", "best", true},
		{"non-YouTube URL", "https://example.com/video", "best", true},
		{"unknown quality", "https://youtu.be/X", "4k-ultra", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &utils.GrabJob{
				JobType:  "video",
				URL:      tt.url,
				Metadata: map[string]any{"quality": tt.quality},
			}
			err := d.ValidateJob(job)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, utils.ErrInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateJobRejectsBeforeAnyNetworkCall(t *testing.T) {
	// Validation is pure selection checking: a rejected job must fail
	// without touching the extraction client.
	d := &VideoDownloader{}
	job := &utils.GrabJob{JobType: "video", URL: "", Metadata: map[string]any{}}
	require.ErrorIs(t, d.ValidateJob(job), utils.ErrInvalidInput)
}
