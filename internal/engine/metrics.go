package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	ResolveRequests      atomic.Int64
	CaptionFetches       atomic.Int64
	CaptionFetchErrors   atomic.Int64
	WhisperRequests      atomic.Int64
	WhisperErrors        atomic.Int64
	IngestBatches        atomic.Int64
	ChunksWritten        atomic.Int64
	RetrievalRequests    atomic.Int64
	LLMCalls             atomic.Int64
	LLMErrors            atomic.Int64
	AgentTurns           atomic.Int64
	AgentFailures        atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"resolve_requests":     metrics.ResolveRequests.Load(),
		"caption_fetches":      metrics.CaptionFetches.Load(),
		"caption_fetch_errors": metrics.CaptionFetchErrors.Load(),
		"whisper_requests":     metrics.WhisperRequests.Load(),
		"whisper_errors":       metrics.WhisperErrors.Load(),
		"ingest_batches":       metrics.IngestBatches.Load(),
		"chunks_written":       metrics.ChunksWritten.Load(),
		"retrieval_requests":   metrics.RetrievalRequests.Load(),
		"llm_calls":            metrics.LLMCalls.Load(),
		"llm_errors":           metrics.LLMErrors.Load(),
		"agent_turns":          metrics.AgentTurns.Load(),
		"agent_failures":       metrics.AgentFailures.Load(),
		"cache_hits":           hits,
		"cache_misses":         misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"resolve_requests",
		"caption_fetches", "caption_fetch_errors",
		"whisper_requests", "whisper_errors",
		"ingest_batches", "chunks_written",
		"retrieval_requests",
		"llm_calls", "llm_errors",
		"agent_turns", "agent_failures",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sub-packages.
func IncrResolveRequests()    { metrics.ResolveRequests.Add(1) }
func IncrCaptionFetch()       { metrics.CaptionFetches.Add(1) }
func IncrCaptionFetchError()  { metrics.CaptionFetchErrors.Add(1) }
func IncrWhisperRequests()    { metrics.WhisperRequests.Add(1) }
func IncrWhisperError()       { metrics.WhisperErrors.Add(1) }
func IncrIngestBatches()      { metrics.IngestBatches.Add(1) }
func AddChunksWritten(n int)  { metrics.ChunksWritten.Add(int64(n)) }
func IncrRetrievalRequests()  { metrics.RetrievalRequests.Add(1) }
func IncrLLMCall()            { metrics.LLMCalls.Add(1) }
func IncrLLMError()           { metrics.LLMErrors.Add(1) }
func IncrAgentTurns()         { metrics.AgentTurns.Add(1) }
func IncrAgentFailures()      { metrics.AgentFailures.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
