package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
)

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CallLLM sends a prompt using the configured temperature and max_tokens.
func CallLLM(ctx context.Context, prompt string) (string, error) {
	if cfg.LLMClient == nil {
		return "", errors.New("llm client not configured")
	}
	IncrLLMCall()
	resp, err := cfg.LLMClient.Complete(ctx, "", prompt)
	if err != nil {
		IncrLLMError()
		return "", err
	}
	return stripFences(resp), nil
}

// ExpandRetrievalQueries uses the LLM to generate semantically diverse
// paraphrases of a retrieval query. The original query is not included.
func ExpandRetrievalQueries(ctx context.Context, query string, n int) ([]string, error) {
	if cfg.LLMClient == nil {
		return nil, errors.New("llm client not configured")
	}
	prompt := fmt.Sprintf(expandRetrievalPrompt, n, query, n)
	IncrLLMCall()
	raw, err := cfg.LLMClient.Complete(ctx, "", prompt,
		llm.WithChatTemperature(0.7),
		llm.WithChatMaxTokens(250),
	)
	if err != nil {
		IncrLLMError()
		return nil, err
	}
	raw = stripFences(raw)
	var variants []string
	if err := json.Unmarshal([]byte(raw), &variants); err != nil {
		return nil, fmt.Errorf("expand: parse failed on %q: %w", raw, err)
	}
	if len(variants) > n {
		variants = variants[:n]
	}
	return variants, nil
}
