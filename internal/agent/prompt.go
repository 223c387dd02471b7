package agent

import (
	"fmt"
	"strings"
)

const reactTemplate = `You are a helpful assistant that answers questions about YouTube videos using their stored transcripts.

You have access to the following tools:

document_retrieval_pipeline: Ingest one or more YouTube video, playlist, or channel URLs. Fetches or generates transcripts and stores them for retrieval. Input: the URLs.
store_document: Store a text document for later retrieval. Input: JSON with "content" and "metadata" fields, or plain text.
multiquery: Search the stored transcripts for passages relevant to a question. Input: the search query.

Use the following format:

Question: the input question you must answer
Thought: you should always think about what to do
Action: the action to take, should be one of [document_retrieval_pipeline, store_document, multiquery]
Action Input: the input to the action
Observation: the result of the action
... (this Thought/Action/Action Input/Observation can repeat N times)
Thought: I now know the final answer
Final Answer: the final answer to the original input question

When transcript passages carry timestamps, cite them in your answer.
If the stored transcripts contain nothing relevant, answer exactly:
I'm sorry, I don't have information on that.

Previous conversation:
%s

Begin!

Question: %s
%s`

// renderHistory formats past turns for the prompt. A turn with an empty role
// is corrupt history and renders as an error.
func renderHistory(turns []Turn) (string, error) {
	if len(turns) == 0 {
		return "(none)", nil
	}
	var sb strings.Builder
	for _, t := range turns {
		switch t.Role {
		case "human":
			fmt.Fprintf(&sb, "Human: %s\n", t.Text)
		case "ai":
			fmt.Fprintf(&sb, "AI: %s\n", t.Text)
		default:
			return "", fmt.Errorf("conversation turn has unknown role %q", t.Role)
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// renderPrompt assembles the full prompt: template, history, question, and
// the scratchpad of steps taken so far.
func renderPrompt(history, question, scratchpad string) string {
	return fmt.Sprintf(reactTemplate, history, question, scratchpad)
}
