package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// Speech-to-text client for a faster-whisper compatible HTTP server
// (OpenAI transcriptions API shape plus beam_size/word_timestamps fields).

// Segment is one recognized span of speech with second offsets.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type whisperResp struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// transcribeAudio sends an audio file to the whisper server and returns the
// recognized segments in order.
func transcribeAudio(ctx context.Context, audioPath string) ([]Segment, error) {
	engine.IncrWhisperRequests()

	f, err := os.Open(audioPath)
	if err != nil {
		engine.IncrWhisperError()
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		engine.IncrWhisperError()
		return nil, fmt.Errorf("read audio: %w", err)
	}

	fields := map[string]string{
		"model":           engine.Cfg.WhisperModel,
		"response_format": "verbose_json",
		"beam_size":       strconv.Itoa(engine.Cfg.WhisperBeamSize),
		"word_timestamps": "true",
	}
	if engine.Cfg.WhisperLanguage != "" {
		fields["language"] = engine.Cfg.WhisperLanguage
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	url := engine.Cfg.WhisperURL + "/v1/audio/transcriptions"
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf.Bytes()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", mw.FormDataContentType())
		if engine.Cfg.WhisperAPIKey != "" {
			req.Header.Set("Authorization", "Bearer "+engine.Cfg.WhisperAPIKey)
		}
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		engine.IncrWhisperError()
		return nil, fmt.Errorf("whisper request: %w", err)
	}
	defer resp.Body.Close()

	var out whisperResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		engine.IncrWhisperError()
		return nil, fmt.Errorf("decode whisper response: %w", err)
	}
	if len(out.Segments) == 0 && out.Text != "" {
		out.Segments = []Segment{{Text: out.Text}}
	}
	return out.Segments, nil
}
