package video

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// GeneratedTranscript is the output of the audio fallback path: download the
// audio track with yt-dlp, run speech recognition, keep the video metadata
// alongside the text.
type GeneratedTranscript struct {
	VideoID    string
	Title      string
	UploadDate string
	Segments   []Segment
	Text       string
}

var (
	downloadAudio = DownloadAudio
	transcribe    = transcribeAudio
)

// GenerateTranscript downloads a video's audio and transcribes it. The audio
// file lives in the system temp dir and is removed before returning.
func GenerateTranscript(ctx context.Context, rawURL string) (*GeneratedTranscript, error) {
	audioPath := filepath.Join(os.TempDir(), "go_tube_audio.mp3")

	info, err := downloadAudio(ctx, rawURL, audioPath)
	if err != nil {
		return nil, fmt.Errorf("download audio: %w", err)
	}
	defer func() {
		if err := os.Remove(audioPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("audio cleanup failed", slog.String("path", audioPath), slog.Any("err", err))
		}
	}()

	segments, err := transcribe(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	if len(segments) == 0 {
		return nil, errors.New("speech recognition produced no segments")
	}

	texts := make([]string, 0, len(segments))
	for _, s := range segments {
		if t := strings.TrimSpace(s.Text); t != "" {
			texts = append(texts, t)
		}
	}

	gt := &GeneratedTranscript{
		Segments: segments,
		Text:     strings.Join(texts, "\n"),
	}
	if info != nil {
		gt.VideoID = info.ID
		gt.Title = info.Title
		gt.UploadDate = info.UploadDate
	}
	if gt.VideoID == "" {
		gt.VideoID = extractVideoID(rawURL)
	}
	return gt, nil
}
