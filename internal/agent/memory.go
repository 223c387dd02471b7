// Package agent implements the conversational question answering loop: a
// reason-act cycle over the ingestion and retrieval tools, with per
// conversation memory of past turns.
package agent

import "sync"

// Turn is one utterance in a conversation. Role is "human" or "ai".
type Turn struct {
	Role string
	Text string
}

// Memory holds conversation histories keyed by conversation ID.
// Safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	turns map[string][]Turn
}

func NewMemory() *Memory {
	return &Memory{turns: make(map[string][]Turn)}
}

// Append adds a turn to the conversation.
func (m *Memory) Append(convID, role, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns[convID] = append(m.turns[convID], Turn{Role: role, Text: text})
}

// Snapshot returns a copy of the conversation's turns in order.
func (m *Memory) Snapshot(convID string) []Turn {
	m.mu.Lock()
	defer m.mu.Unlock()
	src := m.turns[convID]
	out := make([]Turn, len(src))
	copy(out, src)
	return out
}

// Clear drops one conversation's history.
func (m *Memory) Clear(convID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.turns, convID)
}

// ClearAll drops every conversation.
func (m *Memory) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = make(map[string][]Turn)
}

// Len returns the number of turns in a conversation.
func (m *Memory) Len(convID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns[convID])
}
