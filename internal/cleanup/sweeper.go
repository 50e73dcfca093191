// Package cleanup removes leftover thumbnail files from output directories.
// The run-scoped temp directory already cleans itself up; this sweep is a
// best-effort second pass for thumbnails written next to artifacts by earlier
// or interrupted runs.
package cleanup

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// MaxThumbAge bounds the sweep: files modified longer ago than this are never
// touched, so unrelated pre-existing images survive.
const MaxThumbAge = 10 * time.Minute

var thumbExts = map[string]bool{
	".webp": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Sweep deletes recent thumbnail files in dir. When stems is non-empty only
// files whose basename (sans extension) matches one of the stems are
// considered. Deletion errors are logged and swallowed, never fatal.
func Sweep(dir string, stems []string, maxAge time.Duration) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn().Str("op", "cleanup/sweep").Err(err).Msgf("Could not read %s", dir)
		return
	}
	stemSet := make(map[string]bool, len(stems))
	for _, s := range stems {
		stemSet[s] = true
	}
	now := time.Now()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !thumbExts[ext] {
			continue
		}
		if len(stemSet) > 0 && !stemSet[strings.TrimSuffix(name, filepath.Ext(name))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) >= maxAge {
			continue
		}
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			log.Warn().Str("op", "cleanup/sweep").Err(err).Msgf("Could not remove %s", path)
			continue
		}
		log.Debug().Str("op", "cleanup/sweep").Msgf("Removed thumbnail %s", path)
	}
}
