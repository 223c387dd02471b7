package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// yt-dlp subprocess wrappers. ExtractFlat never downloads media;
// DownloadAudio writes a single mp3 to the given path.

// ExtractedInfo is the subset of yt-dlp's info JSON we consume.
type ExtractedInfo struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	UploadDate string           `json:"upload_date"`
	WebpageURL string           `json:"webpage_url"`
	Entries    []ExtractedEntry `json:"entries"`
}

// ExtractedEntry is one playlist/channel entry from flat extraction.
type ExtractedEntry struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func ytdlpBin() string {
	if engine.Cfg.YtdlpPath != "" {
		return engine.Cfg.YtdlpPath
	}
	return "yt-dlp"
}

// ExtractFlat queries yt-dlp for video metadata in flat-playlist mode.
// Playlists and channels return Entries; a single video returns WebpageURL.
func ExtractFlat(ctx context.Context, rawURL string) (*ExtractedInfo, error) {
	cmd := exec.CommandContext(ctx, ytdlpBin(),
		"--quiet",
		"--no-warnings",
		"--flat-playlist",
		"--dump-single-json",
		rawURL)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp extract %s: %w: %s", rawURL, err, stderr.String())
	}

	var info ExtractedInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("yt-dlp extract %s: decode info JSON: %w", rawURL, err)
	}
	return &info, nil
}

// DownloadAudio downloads the best available audio track as mp3 to outputPath
// and returns the video metadata yt-dlp printed alongside.
func DownloadAudio(ctx context.Context, rawURL, outputPath string) (*ExtractedInfo, error) {
	cmd := exec.CommandContext(ctx, ytdlpBin(),
		"--quiet",
		"--no-warnings",
		"--format", "bestaudio/best",
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"--print-json",
		"-o", outputPath,
		rawURL)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp download %s: %w: %s", rawURL, err, stderr.String())
	}

	var info ExtractedInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		// Audio is on disk even when the metadata print is unusable.
		return &ExtractedInfo{WebpageURL: rawURL}, nil
	}
	return &info, nil
}
