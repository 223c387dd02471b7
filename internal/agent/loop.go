package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// errorAnswer is what the user sees when the loop cannot recover. The
// conversation's memory is cleared alongside so a corrupt history cannot
// poison the next turn.
const errorAnswer = "An error occurred."

// maxParseRetries bounds how many malformed model responses get fed back as
// observations before the turn is abandoned.
const maxParseRetries = 2

// maxObservationRunes caps how much tool output flows back into the prompt.
const maxObservationRunes = 6000

// Ask answers one question within a conversation. On success the question
// and answer are appended to the conversation's memory. On unrecoverable
// failure the memory is cleared and a fixed error message returned.
func (l *Loop) Ask(ctx context.Context, convID, question string) string {
	engine.IncrAgentTurns()

	history, err := renderHistory(l.memory.Snapshot(convID))
	if err != nil {
		slog.Error("agent: corrupt conversation history", slog.String("conv", convID), slog.Any("error", err))
		return l.fail(convID)
	}

	var scratchpad strings.Builder
	parseRetries := 0

	for i := 0; i < l.maxSteps; i++ {
		prompt := renderPrompt(history, question, scratchpad.String())

		resp, err := l.complete(ctx, prompt)
		if err != nil {
			slog.Error("agent: completion failed", slog.String("conv", convID), slog.Any("error", err))
			return l.fail(convID)
		}

		st, err := parseStep(resp)
		if err != nil {
			parseRetries++
			if parseRetries > maxParseRetries {
				slog.Error("agent: repeated malformed responses", slog.String("conv", convID), slog.Any("error", err))
				return l.fail(convID)
			}
			fmt.Fprintf(&scratchpad, "%s\nObservation: your response was malformed (%v), follow the format exactly\n", resp, err)
			continue
		}

		if st.final {
			l.memory.Append(convID, "human", question)
			l.memory.Append(convID, "ai", st.finalAnswer)
			return st.finalAnswer
		}

		tool, err := parseTool(st.action)
		if err != nil {
			fmt.Fprintf(&scratchpad, "%s\nObservation: %v\n", resp, err)
			continue
		}

		var observation string
		err = engine.TrackOperation(ctx, tool.String(), func(ctx context.Context) error {
			var herr error
			observation, herr = l.handlers[tool](ctx, st.actionInput)
			return herr
		})
		if err != nil {
			observation = fmt.Sprintf("tool error: %v", err)
		}
		slog.Debug("agent: step",
			slog.String("conv", convID),
			slog.String("tool", tool.String()),
			slog.Int("step", i))
		fmt.Fprintf(&scratchpad, "%s\nObservation: %s\n", resp, engine.TruncateRunes(observation, maxObservationRunes, "..."))
	}

	slog.Error("agent: step limit reached without a final answer", slog.String("conv", convID))
	return l.fail(convID)
}

func (l *Loop) fail(convID string) string {
	engine.IncrAgentFailures()
	l.memory.Clear(convID)
	return errorAnswer
}
