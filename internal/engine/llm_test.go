package engine

import (
	"context"
	"testing"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain text",
			raw:  "hello world",
			want: "hello world",
		},
		{
			name: "json fence",
			raw:  "```json\n[\"a\", \"b\"]\n```",
			want: `["a", "b"]`,
		},
		{
			name: "bare fence",
			raw:  "```\ntext\n```",
			want: "text",
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n answer \n ",
			want: "answer",
		},
		{
			name: "empty",
			raw:  "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.raw); got != tt.want {
				t.Errorf("stripFences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCallLLMNoClient(t *testing.T) {
	old := cfg
	defer Init(old)
	Init(Config{})

	if _, err := CallLLM(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error when no LLM client is configured")
	}
	if _, err := ExpandRetrievalQueries(context.Background(), "query", 3); err == nil {
		t.Fatal("expected error when no LLM client is configured")
	}
}
