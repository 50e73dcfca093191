package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsYouTubeURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"short URL", "https://youtu.be/dQw4w9WgXcQ", true},
		{"music URL", "https://music.youtube.com/watch?v=abc", true},
		{"playlist URL", "https://www.youtube.com/playlist?list=PLx", true},
		{"other site", "https://vimeo.com/12345", false},
		{"empty", "", false},
		{"garbage", "not a url at all", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsYouTubeURL(tt.url))
		})
	}
}

func TestGetRandomUserAgent(t *testing.T) {
	ua := GetRandomUserAgent()
	require.Contains(t, userAgents, ua)
}

func TestIsPlaylistURL(t *testing.T) {
	require.True(t, IsPlaylistURL("https://www.youtube.com/watch?v=X&list=PLx"))
	require.True(t, IsPlaylistURL("https://www.youtube.com/playlist?list=PLx"))
	require.False(t, IsPlaylistURL("https://www.youtube.com/watch?v=X"))
}

func TestRenewOutputPath(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "song.mp3")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0644))

	renewed := RenewOutputPath(existing)
	require.Equal(t, filepath.Join(dir, "song-(1).mp3"), renewed)

	// Renewal skips every existing index.
	require.NoError(t, os.WriteFile(renewed, []byte("x"), 0644))
	require.Equal(t, filepath.Join(dir, "song-(2).mp3"), RenewOutputPath(existing))
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{512, "512 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{10 * 1024 * 1024, "10.00 MB"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatBytes(tt.bytes))
	}
}

func TestFormatSpeed(t *testing.T) {
	require.Equal(t, "0 B/s", FormatSpeed(1024, 0))
	require.Equal(t, "1.00 KB/s", FormatSpeed(1024, 1))
}

func TestDefaultMediaDir(t *testing.T) {
	videoDir := DefaultMediaDir("video")
	audioDir := DefaultMediaDir("audio")
	require.NotEqual(t, videoDir, audioDir)
	require.Equal(t, "Videos", filepath.Base(videoDir))
	require.Equal(t, "Music", filepath.Base(audioDir))
}
