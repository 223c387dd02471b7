// go_tube is a YouTube video Q&A MCP server.
//
// Ingests video transcripts into a local vector store (fetched captions when
// a video has them, Whisper-generated otherwise) and answers questions about
// the stored material through a ReAct agent with conversation memory.
//
// Exposes MCP tools: ask, reset_conversation, ingest_videos,
// retrieve_context, store_document, evaluate_answer.
package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_tube/internal/agent"
	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/store"
	"github.com/anatolykoptev/go_tube/internal/tubeserver"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	initEngine()

	slog.Info("starting go_tube",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_tube",
		Version: version,
	}, nil)

	tubeserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", 6))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_tube",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		LLMAPIKey:           env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:  env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:          env.Str("LLM_API_BASE", "https://api.openai.com/v1"),
		LLMModel:            env.Str("LLM_MODEL", "gpt-4o-mini"),
		LLMTemperature:      env.Float("LLM_TEMPERATURE", 0.1),
		LLMMaxTokens:        env.Int("LLM_MAX_TOKENS", 4096),
		EmbeddingAPIBase:    env.Str("EMBEDDING_API_BASE", ""),
		EmbeddingAPIKey:     env.Str("OPENAI_API_KEY", ""),
		EmbeddingModel:      env.Str("EMBEDDING_MODEL", "text-embedding-3-small"),
		VectorDBPath:        env.Str("VECTOR_DB_PATH", "./data/chunks.db"),
		WhisperURL:          env.Str("WHISPER_URL", "http://127.0.0.1:8000"),
		WhisperAPIKey:       env.Str("WHISPER_API_KEY", ""),
		WhisperModel:        env.Str("WHISPER_MODEL", "base"),
		WhisperLanguage:     env.Str("WHISPER_LANGUAGE", ""),
		WhisperBeamSize:     env.Int("WHISPER_BEAM_SIZE", 5),
		YtdlpPath:           env.Str("YTDLP_PATH", "yt-dlp"),
		CaptionLanguages:    env.List("CAPTION_LANGUAGES", "en"),
		ChunkSeconds:        env.Int("TRANSCRIPT_CHUNK_SECONDS", 30),
		ChunkSize:           env.Int("CHUNK_SIZE", 1500),
		ChunkOverlap:        env.Int("CHUNK_OVERLAP", 300),
		SimilarityThreshold: env.Float("SIMILARITY_THRESHOLD", 0.75),
		RetrievalTopK:       env.Int("RETRIEVAL_TOP_K", 5),
		QueryRewrites:       env.Int("QUERY_REWRITES", 3),
		IngestDelay:         env.Duration("INGEST_DELAY", 2*time.Second),
		AgentMaxSteps:       env.Int("AGENT_MAX_STEPS", 8),

		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
		llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
		llm.WithMaxTokens(c.LLMMaxTokens),
		llm.WithTemperature(c.LLMTemperature),
		llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
	)

	engine.Init(c)

	// Vector store (sqlite file + OpenAI embeddings)
	embedder := store.NewOpenAIEmbedder(c.EmbeddingAPIBase, c.EmbeddingAPIKey, c.EmbeddingModel)
	db, err := store.Open(c.VectorDBPath, embedder)
	if err != nil {
		slog.Error("vector store init failed", slog.Any("error", err))
	} else {
		store.SetDB(db)
		slog.Info("vector store initialized", slog.String("path", c.VectorDBPath))
	}

	agent.SetLoop(agent.NewLoop(store.GetDB()))

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}
