package engine

// MCP tool input/output types.

type AskInput struct {
	Question       string `json:"question" jsonschema:"Question about the ingested videos"`
	ConversationID string `json:"conversation_id,omitempty" jsonschema:"Conversation to continue (default: default)"`
}

type AskOutput struct {
	Answer         string `json:"answer"`
	ConversationID string `json:"conversation_id"`
}

type ResetInput struct {
	ConversationID string `json:"conversation_id,omitempty" jsonschema:"Conversation to reset; empty resets all"`
}

type ResetOutput struct {
	Status string `json:"status"`
}

type IngestInput struct {
	URL  string   `json:"url,omitempty" jsonschema:"A YouTube video, playlist, or channel URL"`
	URLs []string `json:"urls,omitempty" jsonschema:"Several YouTube URLs to ingest in one batch"`
}

type IngestOutput struct {
	Attempted []string `json:"attempted"`
	Stored    []string `json:"stored,omitempty"`
	Failed    []string `json:"failed,omitempty"`
	Summary   string   `json:"summary"`
}

type RetrieveInput struct {
	Query     string   `json:"query" jsonschema:"What to look for in the stored transcripts"`
	Threshold *float64 `json:"threshold,omitempty" jsonschema:"Minimum similarity score 0..1 (default from config)"`
}

type RetrieveOutput struct {
	Context string `json:"context"`
	Found   bool   `json:"found"`
}

type StoreDocumentInput struct {
	Content  string         `json:"content" jsonschema:"Document text to chunk and store"`
	Metadata map[string]any `json:"metadata,omitempty" jsonschema:"Document metadata; source is required, transcripts also need video_url"`
}

type StoreDocumentOutput struct {
	Chunks int `json:"chunks"`
}

type EvaluateInput struct {
	Predicted string  `json:"predicted" jsonschema:"Answer produced by the agent"`
	Expected  string  `json:"expected" jsonschema:"Reference answer to compare against"`
	Threshold float64 `json:"threshold,omitempty" jsonschema:"Pass mark for the overlap score (default 0.7)"`
}

type EvaluateOutput struct {
	Score float64 `json:"score"`
	Pass  bool    `json:"pass"`
}
