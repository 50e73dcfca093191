package postprocess

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranscodeArgs(t *testing.T) {
	tests := []struct {
		name    string
		bitrate string
		wantKey string
		wantVal any
	}{
		{"source max VBR", "0", "q:a", 0},
		{"empty defaults to VBR", "", "q:a", 0},
		{"fixed 128 kbps", "128", "b:a", "128k"},
		{"fixed 192 kbps", "192", "b:a", "192k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kwargs := TranscodeArgs(tt.bitrate)
			require.Equal(t, "libmp3lame", kwargs["acodec"])
			require.Equal(t, tt.wantVal, kwargs[tt.wantKey])
		})
	}
}

func TestTranscodeArgsExclusive(t *testing.T) {
	vbr := TranscodeArgs("0")
	_, hasCBR := vbr["b:a"]
	require.False(t, hasCBR, "VBR args must not carry a fixed bitrate")

	cbr := TranscodeArgs("128")
	_, hasVBR := cbr["q:a"]
	require.False(t, hasVBR, "CBR args must not carry a VBR quality")
}

func TestTargetMP3Path(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "song.m4a")
	require.NoError(t, os.WriteFile(raw, []byte("x"), 0644))
	require.Equal(t, filepath.Join(dir, "song.mp3"), targetMP3Path(raw))

	// Existing destination gets renewed.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "song.mp3"), []byte("x"), 0644))
	require.Equal(t, filepath.Join(dir, "song-(1).mp3"), targetMP3Path(raw))
}

func TestTargetMP3PathNeverReturnsItsInput(t *testing.T) {
	// A raw download that is already .mp3 must transcode to a renewed name.
	dir := t.TempDir()
	raw := filepath.Join(dir, "already.mp3")
	require.NoError(t, os.WriteFile(raw, []byte("x"), 0644))
	require.Equal(t, filepath.Join(dir, "already-(1).mp3"), targetMP3Path(raw))
}

func TestThumbExt(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://i.ytimg.com/vi/X/maxresdefault.jpg", ".jpg"},
		{"https://i.ytimg.com/vi_webp/X/maxresdefault.webp", ".webp"},
		{"https://i.ytimg.com/vi/X/hqdefault.png?sqp=abc", ".png"},
		{"https://i.ytimg.com/vi/X/unknown", ".webp"},
		{"https://i.ytimg.com/vi/X/file.gif", ".webp"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, thumbExt(tt.url), "url %s", tt.url)
	}
}
