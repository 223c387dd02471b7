package video

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// Caption fetching, the fast transcript path with no speech recognition.
// Primary:  scrape watch page ytInitialPlayerResponse → caption track XML
// Fallback: ANDROID Innertube /player → captionTracks
// Either way the timedtext lines are regrouped into fixed-duration windows
// and emitted with MM:SS--MM:SS labels.

var videoIDRE = regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// extractVideoID pulls the 11-char video ID from any YouTube URL format.
func extractVideoID(rawURL string) string {
	m := videoIDRE.FindStringSubmatch(rawURL)
	if len(m) >= 2 {
		return m[1]
	}
	return ""
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the given language
// preferences. No auto-translation: only tracks already in a preferred
// language (or English) qualify. Skips tracks that require PoToken.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	// 1. Manual track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	// 2. Auto-generated track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	// 3. Any English track
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return captionTrack{}, false
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL.
func fetchTimedText(ctx context.Context, baseURL string) (*timedText, error) {
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, err
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}
	return &tt, nil
}

// formatTimestamp renders whole seconds as MM:SS.
func formatTimestamp(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// formatWindows regroups caption lines into chunkSeconds-wide windows, each
// prefixed with a MM:SS--MM:SS label derived from chunkSeconds and the window
// index. Window boundaries come from each line's start attribute.
func formatWindows(tt *timedText, chunkSeconds int) string {
	if chunkSeconds <= 0 {
		chunkSeconds = 30
	}

	windows := make(map[int][]string)
	maxWindow := -1
	for _, line := range tt.Lines {
		text := engine.CleanHTML(line.Text)
		if text == "" {
			continue
		}
		w := int(line.Start) / chunkSeconds
		windows[w] = append(windows[w], text)
		if w > maxWindow {
			maxWindow = w
		}
	}

	var sb strings.Builder
	for w := 0; w <= maxWindow; w++ {
		texts, ok := windows[w]
		if !ok {
			continue
		}
		start := w * chunkSeconds
		end := (w + 1) * chunkSeconds
		fmt.Fprintf(&sb, "%s--%s: %s\n", formatTimestamp(start), formatTimestamp(end), strings.Join(texts, " "))
	}
	return sb.String()
}

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// fetchCaptionsViaWatchPage scrapes the YouTube watch page HTML and extracts
// the caption track XML from ytInitialPlayerResponse. Works from any IP.
func fetchCaptionsViaWatchPage(ctx context.Context, videoID string, langs []string) (*timedText, error) {
	watchURL := "https://www.youtube.com/watch?v=" + videoID

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentChrome)
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	idx := strings.Index(string(body), ytInitialPlayerResponseMarker)
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var playerResp innertubePlayerResp
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return captionsFromPlayerResp(ctx, &playerResp, langs)
}

// fetchCaptionsViaPlayer uses the ANDROID Innertube /player endpoint.
// Works from non-blocked (residential/cloud) IP addresses.
func fetchCaptionsViaPlayer(ctx context.Context, videoID string, langs []string) (*timedText, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, ytInnertubeURL+"?prettyPrint=false", bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", ytAndroidUA)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()

	var playerResp innertubePlayerResp
	if err := json.NewDecoder(resp.Body).Decode(&playerResp); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return captionsFromPlayerResp(ctx, &playerResp, langs)
}

// captionsFromPlayerResp picks a caption track from a player response and
// fetches its timedtext.
func captionsFromPlayerResp(ctx context.Context, playerResp *innertubePlayerResp, langs []string) (*timedText, error) {
	if playerResp.Captions == nil {
		reason := ""
		if playerResp.PlayabilityStatus != nil {
			reason = playerResp.PlayabilityStatus.Reason
		}
		if reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", reason)
		}
		return nil, errors.New("no captions in player response")
	}
	tracks := playerResp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New("no caption tracks")
	}
	track, ok := pickBestTrack(tracks, langs)
	if !ok {
		return nil, errors.New("no usable caption track for requested languages")
	}
	return fetchTimedText(ctx, track.BaseURL)
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	var prev byte
	for i, c := range b {
		if inStr {
			if c == '"' && prev != '\\' {
				inStr = false
			}
		} else {
			switch c {
			case '"':
				inStr = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return b[:i+1]
				}
			}
		}
		prev = c
	}
	return nil
}

// FetchTranscript fetches existing captions for a YouTube video and formats
// them into chunkSeconds-wide timestamped windows. Any failure is returned
// as an error for the caller's fallback decision, never panicked.
func FetchTranscript(ctx context.Context, rawURL string, chunkSeconds int) (string, error) {
	engine.IncrCaptionFetch()

	videoID := extractVideoID(rawURL)
	if videoID == "" {
		engine.IncrCaptionFetchError()
		return "", fmt.Errorf("no video ID in URL %q", rawURL)
	}

	langs := engine.Cfg.CaptionLanguages
	if len(langs) == 0 {
		langs = []string{"en"}
	}

	tt, err := fetchCaptionsViaWatchPage(ctx, videoID, langs)
	if err != nil {
		slog.Warn("captions: watch page failed, trying player",
			slog.String("id", videoID), slog.Any("err", err))
		tt, err = fetchCaptionsViaPlayer(ctx, videoID, langs)
	}
	if err != nil {
		engine.IncrCaptionFetchError()
		return "", err
	}

	text := formatWindows(tt, chunkSeconds)
	if text == "" {
		engine.IncrCaptionFetchError()
		return "", errors.New("empty caption track")
	}
	return text, nil
}
