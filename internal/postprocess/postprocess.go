// Package postprocess turns a raw audio download into a tagged MP3: it
// fetches the item's thumbnail out-of-band, converts it to JPEG, transcodes
// the audio, and embeds the image as ID3v2 cover art. The raw file is only
// removed after every step succeeded.
package postprocess

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/tanq16/ytgrab/internal/utils"
)

type Params struct {
	RawPath string
	Meta    *utils.MediaMeta
	Bitrate string // "0" keeps source-max VBR, otherwise kbps like "128"
	Client  *utils.GrabHTTPClient
}

// Run executes the audio chain and returns the final MP3 path. On transcode
// or tagging failure the raw download is left in place and a
// PostProcessFailedError is returned.
func Run(p *Params, streamFunc func(string)) (string, error) {
	outputDir := filepath.Dir(p.RawPath)
	tempDir := filepath.Join(outputDir, utils.TempDirName)
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return "", &utils.PostProcessFailedError{Stage: "setup", Path: p.RawPath, Err: err}
	}
	defer os.RemoveAll(tempDir)

	// Thumbnail is best effort: a missing cover never blocks the transcode.
	artworkPath := ""
	if p.Meta != nil && p.Meta.Thumbnail != "" {
		path, err := prepareArtwork(p.Meta.Thumbnail, tempDir, p.Client)
		if err != nil {
			log.Warn().Str("op", "postprocess/artwork").Err(err).Msg("Continuing without cover art")
			if streamFunc != nil {
				streamFunc("Thumbnail unavailable, skipping cover art")
			}
		} else {
			artworkPath = path
		}
	}

	mp3Path := targetMP3Path(p.RawPath)
	if streamFunc != nil {
		streamFunc(fmt.Sprintf("Transcoding to %s", filepath.Base(mp3Path)))
	}
	if err := transcode(p.RawPath, mp3Path, p.Bitrate); err != nil {
		return "", &utils.PostProcessFailedError{Stage: "transcode", Path: p.RawPath, Err: err}
	}

	if err := embedTags(mp3Path, artworkPath, p.Meta); err != nil {
		os.Remove(mp3Path)
		return "", &utils.PostProcessFailedError{Stage: "tagging", Path: p.RawPath, Err: err}
	}

	if err := os.Remove(p.RawPath); err != nil {
		log.Warn().Str("op", "postprocess").Err(err).Msgf("Could not remove raw file %s", p.RawPath)
	}
	if streamFunc != nil {
		streamFunc("Cover art embedded")
	}
	return mp3Path, nil
}

// targetMP3Path picks the transcode destination next to the raw download. A
// file already at the destination gets a renewed name, the raw download
// itself included when it came down as .mp3, so ffmpeg never writes over its
// own input.
func targetMP3Path(rawPath string) string {
	mp3Path := strings.TrimSuffix(rawPath, filepath.Ext(rawPath)) + ".mp3"
	if mp3Path == rawPath {
		return utils.RenewOutputPath(mp3Path)
	}
	if _, err := os.Stat(mp3Path); err == nil {
		return utils.RenewOutputPath(mp3Path)
	}
	return mp3Path
}

// prepareArtwork downloads the thumbnail and converts it to JPEG. yt-dlp's
// own thumbnail pipeline fails intermittently, so the bytes are fetched
// directly and converted locally.
func prepareArtwork(thumbURL, tempDir string, client *utils.GrabHTTPClient) (string, error) {
	marker := uuid.New().String()
	rawPath := filepath.Join(tempDir, marker+thumbExt(thumbURL))
	if err := fetchFile(thumbURL, rawPath, client); err != nil {
		return "", err
	}
	jpgPath := filepath.Join(tempDir, marker+".jpg")
	if strings.EqualFold(filepath.Ext(rawPath), ".jpg") {
		return rawPath, nil
	}
	err := ffmpeg.Input(rawPath).
		Output(jpgPath, ffmpeg.KwArgs{"frames:v": 1, "q:v": 2}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", fmt.Errorf("thumbnail conversion failed: %v", err)
	}
	return jpgPath, nil
}

func thumbExt(url string) string {
	url = strings.SplitN(url, "?", 2)[0]
	ext := strings.ToLower(filepath.Ext(url))
	switch ext {
	case ".webp", ".jpg", ".jpeg", ".png":
		return ext
	}
	return ".webp"
}

func fetchFile(url, path string, client *utils.GrabHTTPClient) error {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, resp.Body)
	return err
}

// TranscodeArgs maps the user bitrate choice to libmp3lame arguments.
// "0" selects best VBR like the original quality setting; anything else is a
// fixed CBR in kbps.
func TranscodeArgs(bitrate string) ffmpeg.KwArgs {
	kwargs := ffmpeg.KwArgs{"acodec": "libmp3lame", "vn": ""}
	if bitrate == "" || bitrate == "0" {
		kwargs["q:a"] = 0
	} else {
		kwargs["b:a"] = bitrate + "k"
	}
	return kwargs
}

func transcode(inputPath, outputPath, bitrate string) error {
	err := ffmpeg.Input(inputPath).
		Output(outputPath, TranscodeArgs(bitrate)).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg transcode failed: %v", err)
	}
	return nil
}

// embedTags writes the cover art APIC frame plus title/artist. Existing
// frames stay untouched except TRCK, which is stripped to match players that
// misrender stray track numbers on single downloads.
func embedTags(mp3Path, artworkPath string, meta *utils.MediaMeta) error {
	tag, err := id3v2.Open(mp3Path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("error opening tags: %v", err)
	}
	defer tag.Close()

	if artworkPath != "" {
		artwork, err := os.ReadFile(artworkPath)
		if err != nil {
			return fmt.Errorf("error reading artwork: %v", err)
		}
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Description: "Cover",
			Picture:     artwork,
		})
	}
	if meta != nil {
		if meta.Title != "" {
			tag.SetTitle(meta.Title)
		}
		if meta.Artist != "" {
			tag.SetArtist(meta.Artist)
		}
	}
	tag.DeleteFrames("TRCK")
	if err := tag.Save(); err != nil {
		return fmt.Errorf("error saving tags: %v", err)
	}
	return nil
}
