// Package extract wraps yt-dlp for stream selection, metadata probing, and
// progress-reported downloads. All site scraping and muxing is owned by the
// yt-dlp and ffmpeg binaries; this package only builds invocations.
package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog/log"

	"github.com/tanq16/ytgrab/internal/utils"
)

var FormatSelectors = map[string]string{
	"best":     "bestvideo+bestaudio/best",
	"best60":   "bestvideo[fps<=60]+bestaudio/best",
	"bestmp4":  "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]",
	"decent":   "bestvideo[height<=1080]+bestaudio/best",
	"decent60": "bestvideo[height<=1080][fps<=60]+bestaudio/best",
	"cheap":    "bestvideo[height<=720]+bestaudio/best",
	"1080p":    "bestvideo[height=1080][ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]",
	"1080p60":  "bestvideo[height=1080][fps<=60][ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]",
	"720p":     "bestvideo[height=720][ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]",
	"480p":     "bestvideo[height=480][ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]",
}

const AudioSelector = "bestaudio[ext=m4a]/bestaudio"

type Request struct {
	URL          string
	OutputDir    string
	Format       string
	MergeMP4     bool
	ProgressFunc func(downloaded, total int64)
	StreamFunc   func(line string)
}

// EnsureTools installs yt-dlp if needed and verifies ffmpeg is reachable on
// PATH. ffmpeg is a hard requirement for merging and transcoding.
func EnsureTools(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("error ensuring yt-dlp: %v", err)
	}
	if _, err := EnsureFFmpeg(); err != nil {
		return err
	}
	return nil
}

func EnsureFFmpeg() (string, error) {
	path, err := exec.LookPath("ffmpeg")
	if err == nil {
		return path, nil
	}
	execDir, err := os.Executable()
	if err == nil {
		ffmpegPath := filepath.Join(filepath.Dir(execDir), "ffmpeg")
		if runtime.GOOS == "windows" {
			ffmpegPath += ".exe"
		}
		if _, err := os.Stat(ffmpegPath); err == nil {
			return ffmpegPath, nil
		}
	}
	return "", fmt.Errorf("ffmpeg not found in PATH, please install manually")
}

// ResolveItems expands a playlist URL into per-entry watch URLs. Non-playlist
// URLs resolve to themselves; with all=false only the first entry is kept.
// A watch URL carrying a list parameter resolves to the watched video itself
// unless all playlist items were asked for.
func ResolveItems(ctx context.Context, url string, all bool) ([]string, error) {
	if !utils.IsPlaylistURL(url) {
		return []string{url}, nil
	}
	if !all && hasWatchTarget(url) {
		return []string{url}, nil
	}
	probe := ytdlp.New().
		Quiet().
		NoWarnings().
		SkipDownload().
		FlatPlaylist().
		Print("url")
	result, err := probe.Run(ctx, url)
	if err != nil {
		return nil, &utils.DownloadFailedError{URL: url, Err: err}
	}
	var items []string
	for _, line := range strings.Split(result.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "NA" {
			continue
		}
		items = append(items, line)
	}
	if len(items) == 0 {
		return nil, &utils.DownloadFailedError{URL: url, Err: fmt.Errorf("no playlist entries found")}
	}
	if !all {
		items = items[:1]
	}
	log.Debug().Str("op", "extract/resolve").Msgf("Resolved %d playlist item(s)", len(items))
	return items, nil
}

func hasWatchTarget(url string) bool {
	return strings.Contains(url, "watch?v=") || strings.Contains(url, "youtu.be/")
}

// Probe fetches title, uploader, and thumbnail URL for a single item without
// downloading media.
func Probe(ctx context.Context, url string) (*utils.MediaMeta, error) {
	probe := ytdlp.New().
		Quiet().
		NoWarnings().
		SkipDownload().
		NoPlaylist().
		Print("title").
		Print("uploader").
		Print("thumbnail")
	result, err := probe.Run(ctx, url)
	if err != nil {
		return nil, &utils.DownloadFailedError{URL: url, Err: err}
	}
	lines := strings.Split(strings.TrimSpace(result.Stdout), "\n")
	meta := &utils.MediaMeta{}
	fields := []*string{&meta.Title, &meta.Artist, &meta.Thumbnail}
	for i, field := range fields {
		if i < len(lines) {
			v := strings.TrimSpace(lines[i])
			if v != "NA" {
				*field = v
			}
		}
	}
	return meta, nil
}

// Fetch downloads a single item and returns the path of the written media
// file. Progress callbacks arrive synchronously while the call blocks.
func Fetch(ctx context.Context, req *Request) (string, error) {
	dl := ytdlp.New().
		Format(req.Format).
		Output(filepath.Join(req.OutputDir, "%(title)s.%(ext)s")).
		NoPlaylist().
		NoWarnings().
		Print("after_move:filepath")
	if req.MergeMP4 {
		dl = dl.MergeOutputFormat("mp4")
	}

	tracker := NewTracker(req.ProgressFunc, req.StreamFunc)
	dl.ProgressFunc(500*time.Millisecond, tracker.Observe)

	result, err := dl.Run(ctx, req.URL)
	if err != nil {
		return "", &utils.DownloadFailedError{URL: req.URL, Err: err}
	}
	artifact := pickArtifact(result.Stdout)
	if artifact == "" {
		return "", &utils.DownloadFailedError{URL: req.URL, Err: fmt.Errorf("no output file reported")}
	}
	log.Debug().Str("op", "extract/fetch").Msgf("Wrote %s", artifact)
	return artifact, nil
}

// pickArtifact finds the printed after_move filepath among yt-dlp stdout
// lines; progress noise is skipped by checking the path actually exists.
func pickArtifact(stdout string) string {
	lines := strings.Split(stdout, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if _, err := os.Stat(line); err == nil {
			return line
		}
	}
	return ""
}
