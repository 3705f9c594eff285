package session

import (
	"testing"
	"time"

	"vineyard-assistant/internal/constant"
)

func TestRecordExchangeKeepsChronologicalOrder(t *testing.T) {
	store := NewStore(30*time.Minute, 0)

	store.RecordExchange(42, "вопрос 1", "ответ 1")
	store.RecordExchange(42, "вопрос 2", "ответ 2")

	turns := store.Context(42)
	if len(turns) != 4 {
		t.Fatalf("turn count = %d, want 4", len(turns))
	}

	wantRoles := []string{
		constant.ChatMessageRoleUser,
		constant.ChatMessageRoleAssistant,
		constant.ChatMessageRoleUser,
		constant.ChatMessageRoleAssistant,
	}
	wantContents := []string{"вопрос 1", "ответ 1", "вопрос 2", "ответ 2"}
	for i, turn := range turns {
		if turn.Role != wantRoles[i] {
			t.Errorf("turn %d role = %q, want %q", i, turn.Role, wantRoles[i])
		}
		if turn.Content != wantContents[i] {
			t.Errorf("turn %d content = %q, want %q", i, turn.Content, wantContents[i])
		}
	}
}

func TestClearRemovesSession(t *testing.T) {
	store := NewStore(30*time.Minute, 0)
	store.RecordExchange(42, "вопрос", "ответ")

	store.Clear(42)

	if turns := store.Context(42); len(turns) != 0 {
		t.Fatalf("turn count after clear = %d, want 0", len(turns))
	}
	if store.Len() != 0 {
		t.Fatalf("session count after clear = %d, want 0", store.Len())
	}
}

func TestSweepIsGlobal(t *testing.T) {
	store := NewStore(30*time.Millisecond, 0)

	store.RecordExchange(1, "в", "о")
	store.RecordExchange(2, "в", "о")
	time.Sleep(60 * time.Millisecond)

	// Any user's access sweeps every expired session, not just their own
	store.GetOrCreate(3)

	if got := store.Len(); got != 1 {
		t.Fatalf("session count after sweep = %d, want 1 (only the fresh one)", got)
	}
}

func TestExpiredSessionIsSynthesizedFresh(t *testing.T) {
	store := NewStore(30*time.Millisecond, 0)

	store.RecordExchange(42, "вопрос", "ответ")
	time.Sleep(60 * time.Millisecond)

	sess := store.GetOrCreate(42)
	if len(sess.Context) != 0 {
		t.Fatalf("expired session kept %d turns, want a fresh empty one", len(sess.Context))
	}
}

func TestActivityRefreshDefersExpiry(t *testing.T) {
	store := NewStore(50*time.Millisecond, 0)

	store.RecordExchange(42, "в1", "о1")
	time.Sleep(30 * time.Millisecond)
	store.RecordExchange(42, "в2", "о2") // refreshes the idle deadline
	time.Sleep(30 * time.Millisecond)

	if got := len(store.Context(42)); got != 4 {
		t.Fatalf("turn count = %d, want 4 (session must survive)", got)
	}
}

func TestContextIsReadOnly(t *testing.T) {
	store := NewStore(30*time.Minute, 0)

	if turns := store.Context(42); turns != nil {
		t.Fatalf("Context for absent user = %v, want nil", turns)
	}
	if store.Len() != 0 {
		t.Fatal("Context must not synthesize a session")
	}

	// The returned slice is a copy: mutating it must not affect the store
	store.RecordExchange(42, "вопрос", "ответ")
	turns := store.Context(42)
	turns[0].Content = "испорчено"
	if store.Context(42)[0].Content != "вопрос" {
		t.Fatal("Context returned a live reference into the store")
	}
}

func TestTurnCapDropsOldestPairs(t *testing.T) {
	store := NewStore(30*time.Minute, 4)

	store.RecordExchange(42, "в1", "о1")
	store.RecordExchange(42, "в2", "о2")
	store.RecordExchange(42, "в3", "о3")

	turns := store.Context(42)
	if len(turns) != 4 {
		t.Fatalf("turn count = %d, want 4", len(turns))
	}
	if turns[0].Content != "в2" {
		t.Errorf("oldest kept turn = %q, want %q (first pair dropped)", turns[0].Content, "в2")
	}
	if len(turns)%2 != 0 {
		t.Error("truncation must keep whole user/assistant pairs")
	}
}
