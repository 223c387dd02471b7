// Package video resolves YouTube references and acquires transcripts, by
// caption fetch when a video has captions and by audio download plus speech
// recognition when it does not.
package video

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// URL resolution: a raw input (single video, playlist, or channel URL,
// possibly embedded in surrounding prose) expands into individual video URLs
// via flat extraction. Malformed or unextractable inputs are recorded as
// failed, never raised: one bad input must not sink the batch.

var firstURLRE = regexp.MustCompile(`https?://[^\s]+`)

// validURLRE is the syntactic gate applied before any network call:
// scheme http/https/ftp, domain name or IPv4 literal, optional port and path.
var validURLRE = regexp.MustCompile(`(?i)^(?:http|ftp)s?://` +
	`(?:(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,}\.?` + // domain
	`|localhost` +
	`|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` + // IPv4 literal
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

// CleanURL extracts the first URL-looking substring from s, tolerating
// surrounding prose. Returns s unchanged when nothing matches.
func CleanURL(s string) string {
	if m := firstURLRE.FindString(s); m != "" {
		return m
	}
	return s
}

// ValidURL reports whether s passes the syntactic URL gate.
func ValidURL(s string) bool {
	return validURLRE.MatchString(s)
}

// Resolution accounts for every input: each raw input either contributed
// expansions to Refs or is listed in Failed.
type Resolution struct {
	Refs   []string `json:"refs"`
	Failed []string `json:"failed"`
}

// extractFlat is stubbed in tests.
var extractFlat = ExtractFlat

// Resolve validates and expands raw inputs into individual video URLs.
// Playlist and channel URLs expand to one reference per entry; a single
// video resolves to its canonical webpage URL. Extraction runs in flat
// mode, so no per-entry network fetch happens.
func Resolve(ctx context.Context, inputs []string) Resolution {
	engine.IncrResolveRequests()

	var res Resolution
	for _, raw := range inputs {
		cleaned := CleanURL(raw)
		if !ValidURL(cleaned) {
			slog.Warn("resolve: rejected malformed URL", slog.String("input", raw))
			res.Failed = append(res.Failed, raw)
			continue
		}

		info, err := extractFlat(ctx, cleaned)
		if err != nil {
			slog.Warn("resolve: extraction failed", slog.String("url", cleaned), slog.Any("error", err))
			res.Failed = append(res.Failed, raw)
			continue
		}

		added := 0
		for _, e := range info.Entries {
			if e.URL != "" {
				res.Refs = append(res.Refs, e.URL)
				added++
			}
		}
		if added > 0 {
			continue
		}
		if info.WebpageURL != "" {
			res.Refs = append(res.Refs, info.WebpageURL)
			continue
		}
		slog.Warn("resolve: extraction yielded no usable references", slog.String("url", cleaned))
		res.Failed = append(res.Failed, raw)
	}
	return res
}
