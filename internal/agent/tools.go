package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/ingest"
	"github.com/anatolykoptev/go_tube/internal/engine/store"
	"github.com/anatolykoptev/go_tube/internal/engine/video"
)

// Tool identifies an action the loop can dispatch.
type Tool int

const (
	ToolUnknown Tool = iota
	ToolIngestPipeline
	ToolStoreDocument
	ToolRetrieve
)

var toolNames = map[Tool]string{
	ToolIngestPipeline: "document_retrieval_pipeline",
	ToolStoreDocument:  "store_document",
	ToolRetrieve:       "multiquery",
}

func (t Tool) String() string { return toolNames[t] }

func parseTool(name string) (Tool, error) {
	name = strings.TrimSpace(name)
	for t, n := range toolNames {
		if n == name {
			return t, nil
		}
	}
	return ToolUnknown, fmt.Errorf("unknown tool %q", name)
}

// Handler executes one tool invocation and returns the observation text.
type Handler func(ctx context.Context, input string) (string, error)

// Loop is the conversational agent: per-conversation memory plus the tool
// handlers the reason-act cycle can dispatch to.
type Loop struct {
	memory   *Memory
	handlers map[Tool]Handler
	maxSteps int

	// complete is stubbed in tests
	complete func(ctx context.Context, prompt string) (string, error)
}

// NewLoop builds the agent over the given chunk store.
func NewLoop(db *store.DB) *Loop {
	l := &Loop{
		memory:   NewMemory(),
		maxSteps: engine.Cfg.AgentMaxSteps,
		complete: engine.CallLLM,
	}
	if l.maxSteps <= 0 {
		l.maxSteps = 8
	}
	l.handlers = map[Tool]Handler{
		ToolIngestPipeline: func(ctx context.Context, input string) (string, error) {
			res := video.Resolve(ctx, splitURLs(input))
			out, err := ingest.Run(ctx, res.Refs, db)
			if err != nil {
				return "", err
			}
			if len(res.Failed) > 0 {
				return fmt.Sprintf("%s Unresolved inputs: %s", out.Summary, strings.Join(res.Failed, ", ")), nil
			}
			return out.Summary, nil
		},
		ToolStoreDocument: func(ctx context.Context, input string) (string, error) {
			var doc struct {
				Content  string         `json:"content"`
				Metadata map[string]any `json:"metadata"`
			}
			if err := json.Unmarshal([]byte(input), &doc); err != nil {
				// plain text with default metadata
				doc.Content = input
				doc.Metadata = map[string]any{"source": "agent"}
			}
			n, err := store.Write(ctx, db, doc.Content, doc.Metadata)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Stored %d chunks.", n), nil
		},
		ToolRetrieve: func(ctx context.Context, input string) (string, error) {
			text, err := store.Retrieve(ctx, db, input, engine.Cfg.SimilarityThreshold)
			if err != nil {
				return "", err
			}
			if text == "" {
				return "No relevant context found.", nil
			}
			return text, nil
		},
	}
	return l
}

// Memory exposes the loop's conversation memory.
func (l *Loop) Memory() *Memory { return l.memory }

// splitURLs splits a tool input that may carry several URLs separated by
// commas, whitespace, or newlines.
func splitURLs(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

var loop *Loop

// SetLoop installs the process-wide agent loop. Called once from main.
func SetLoop(l *Loop) { loop = l }

// GetLoop returns the process-wide agent loop.
func GetLoop() *Loop { return loop }
