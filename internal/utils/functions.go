package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

func GetRandomUserAgent() string {
	return userAgents[time.Now().UnixNano()%int64(len(userAgents))]
}

func IsYouTubeURL(url string) bool {
	for _, d := range []string{"youtube.com/", "youtu.be/", "music.youtube.com/"} {
		if strings.Contains(url, d) {
			return true
		}
	}
	return false
}

func IsPlaylistURL(url string) bool {
	return strings.Contains(url, "list=")
}

// DefaultMediaDir returns the per-OS library folder for a media kind
// ("video" -> Videos, "audio" -> Music).
func DefaultMediaDir(kind string) string {
	sub := "Videos"
	if kind == "audio" {
		sub = "Music"
	}
	if runtime.GOOS == "windows" {
		if up := os.Getenv("USERPROFILE"); up != "" {
			dir := filepath.Join(up, sub)
			if _, err := os.Stat(dir); err == nil {
				return dir
			}
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return sub
	}
	return filepath.Join(home, sub)
}

func RenewOutputPath(outputPath string) string {
	dir := filepath.Dir(outputPath)
	base := filepath.Base(outputPath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	index := 1
	for {
		outputPath = filepath.Join(dir, fmt.Sprintf("%s-(%d)%s", name, index, ext))
		if _, err := os.Stat(outputPath); os.IsNotExist(err) {
			return outputPath
		}
		index++
	}
}

func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func FormatSpeed(bytes int64, elapsed float64) string {
	if elapsed == 0 {
		return "0 B/s"
	}
	bps := float64(bytes) / elapsed
	formatted := FormatBytes(uint64(bps))
	return formatted[:len(formatted)-1] + "B/s" // Slice off "B" and add "B/s"
}

// OpenFolder opens the OS file manager at dir. Best effort; failures are
// logged and never abort the run (headless environments).
func OpenFolder(dir string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", dir)
	case "windows":
		cmd = exec.Command("explorer", dir)
	default:
		cmd = exec.Command("xdg-open", dir)
	}
	if err := cmd.Start(); err != nil {
		log.Warn().Str("op", "utils/open").Err(err).Msgf("Could not open folder %s", dir)
		return
	}
	go func() { _ = cmd.Wait() }()
}
