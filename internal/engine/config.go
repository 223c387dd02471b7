package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	LLMAPIKey          string
	LLMAPIKeyFallbacks []string
	LLMAPIBase         string
	LLMModel           string
	LLMTemperature     float64
	LLMMaxTokens       int

	EmbeddingAPIBase string // empty = api.openai.com
	EmbeddingAPIKey  string
	EmbeddingModel   string
	VectorDBPath     string // sqlite file holding chunk rows + vectors

	WhisperURL      string // faster-whisper HTTP server base URL
	WhisperAPIKey   string // optional bearer token
	WhisperModel    string
	WhisperLanguage string // empty means autodetect
	WhisperBeamSize int

	YtdlpPath        string   // yt-dlp binary, resolved via PATH by default
	CaptionLanguages []string // preferred caption languages, no auto-translation
	ChunkSeconds     int      // transcript timestamp window for fetched captions

	ChunkSize           int     // splitter target chunk length
	ChunkOverlap        int     // overlap between consecutive chunks, must stay < ChunkSize
	SimilarityThreshold float64 // retrieval score cutoff
	RetrievalTopK       int     // hits per sub-query
	QueryRewrites       int     // LLM paraphrases per retrieval

	IngestDelay   time.Duration // pause between references in a batch
	AgentMaxSteps int

	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	HTTPClient *http.Client
	LLMClient  *llm.Client
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (video, store, ingest).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
