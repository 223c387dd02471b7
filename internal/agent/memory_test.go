package agent

import "testing"

func TestMemoryAppendSnapshot(t *testing.T) {
	m := NewMemory()
	m.Append("c1", "human", "hello")
	m.Append("c1", "ai", "hi there")
	m.Append("c2", "human", "other conversation")

	turns := m.Snapshot("c1")
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Role != "human" || turns[0].Text != "hello" {
		t.Errorf("turn 0 = %+v", turns[0])
	}
	if turns[1].Role != "ai" || turns[1].Text != "hi there" {
		t.Errorf("turn 1 = %+v", turns[1])
	}
	if m.Len("c2") != 1 {
		t.Errorf("c2 len = %d", m.Len("c2"))
	}
}

func TestMemorySnapshotIsCopy(t *testing.T) {
	m := NewMemory()
	m.Append("c1", "human", "original")
	snap := m.Snapshot("c1")
	snap[0].Text = "mutated"
	if m.Snapshot("c1")[0].Text != "original" {
		t.Error("snapshot mutation leaked into memory")
	}
}

func TestMemoryClear(t *testing.T) {
	m := NewMemory()
	m.Append("c1", "human", "a")
	m.Append("c2", "human", "b")

	m.Clear("c1")
	if m.Len("c1") != 0 {
		t.Errorf("c1 len = %d after clear", m.Len("c1"))
	}
	if m.Len("c2") != 1 {
		t.Errorf("c2 len = %d, clear must not touch other conversations", m.Len("c2"))
	}

	m.ClearAll()
	if m.Len("c2") != 0 {
		t.Errorf("c2 len = %d after clear all", m.Len("c2"))
	}
}
