package video

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// AcquireSource names which path produced a transcript.
type AcquireSource string

const (
	SourceFetched   AcquireSource = "fetched"
	SourceGenerated AcquireSource = "generated"
	SourceNone      AcquireSource = "none"
)

// Acquisition is the result of the fetch-or-generate transcript decision for
// one video. When Source is none, Reason carries the last failure.
type Acquisition struct {
	Text   string
	Source AcquireSource
	Reason string
	Info   *GeneratedTranscript
}

// OK reports whether a transcript was obtained by either path.
func (a Acquisition) OK() bool {
	return a.Source != SourceNone
}

var (
	fetchTranscript    = FetchTranscript
	generateTranscript = GenerateTranscript
)

// Acquire obtains a transcript for one video: existing captions first, speech
// recognition as the fallback. Both failing yields Source none, not an error,
// so a batch caller can record the loss and keep going.
func Acquire(ctx context.Context, rawURL string) Acquisition {
	text, err := fetchTranscript(ctx, rawURL, engine.Cfg.ChunkSeconds)
	if err == nil && text != "" {
		return Acquisition{Text: text, Source: SourceFetched}
	}
	slog.Info("captions unavailable, generating transcript",
		slog.String("url", rawURL), slog.Any("err", err))

	gt, genErr := generateTranscript(ctx, rawURL)
	if genErr != nil {
		slog.Warn("transcript generation failed",
			slog.String("url", rawURL), slog.Any("err", genErr))
		return Acquisition{Source: SourceNone, Reason: genErr.Error()}
	}
	return Acquisition{Text: gt.Text, Source: SourceGenerated, Info: gt}
}
