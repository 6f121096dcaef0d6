package types

import (
	"fmt"
	"testing"
	"time"
)

func TestLearningsMergeNilReceiver(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	var l Learnings
	l = l.Merge(map[string]any{"style": "short sessions"}, now)

	if len(l) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(l))
	}
	entry := l["style"]
	if entry.Value != "short sessions" {
		t.Errorf("value = %v, want %q", entry.Value, "short sessions")
	}
	if entry.Revision != 1 {
		t.Errorf("revision = %d, want 1", entry.Revision)
	}
	if !entry.UpdatedAt.Equal(now) {
		t.Errorf("updated_at = %v, want %v", entry.UpdatedAt, now)
	}
}

func TestLearningsMergeBumpsRevisionAndKeepsOtherKeys(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	l := Learnings{}.Merge(map[string]any{"a": 1, "b": 2}, t0)
	l = l.Merge(map[string]any{"a": 10}, t1)

	if l["a"].Revision != 2 {
		t.Errorf("a revision = %d, want 2", l["a"].Revision)
	}
	if l["a"].Value != 10 {
		t.Errorf("a value = %v, want 10", l["a"].Value)
	}
	if l["b"].Revision != 1 {
		t.Errorf("b revision = %d, want 1 (untouched key must not change)", l["b"].Revision)
	}
	if l["b"].Value != 2 {
		t.Errorf("b value = %v, want 2", l["b"].Value)
	}
}

func TestLearningsMergeEvictsOldest(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	l := Learnings{}
	for i := 0; i < MaxLearnings; i++ {
		l = l.Merge(map[string]any{fmt.Sprintf("key%03d", i): i}, base.Add(time.Duration(i)*time.Minute))
	}
	if len(l) != MaxLearnings {
		t.Fatalf("expected %d entries before overflow, got %d", MaxLearnings, len(l))
	}

	l = l.Merge(map[string]any{"newest": true}, base.Add(time.Duration(MaxLearnings)*time.Minute))

	if len(l) != MaxLearnings {
		t.Fatalf("expected %d entries after overflow, got %d", MaxLearnings, len(l))
	}
	if _, ok := l["key000"]; ok {
		t.Error("oldest key should have been evicted")
	}
	if _, ok := l["newest"]; !ok {
		t.Error("newly merged key must survive eviction")
	}
}
