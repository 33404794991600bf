package conversation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kailas-cloud/docsense/internal/domain"
)

func pairs(n int) History {
	var h History
	for i := 0; i < n; i++ {
		h = append(h, UserTurn(fmt.Sprintf("q%d", i)), AssistantTurn(fmt.Sprintf("a%d", i)))
	}
	return h
}

func TestRecent_DropsOldest(t *testing.T) {
	h := pairs(6) // 12 turns
	got := h.Recent(DefaultMaxTurns)

	if len(got) != 10 {
		t.Fatalf("expected 10 turns, got %d", len(got))
	}
	if got[0].Content != "q1" {
		t.Errorf("expected oldest kept turn q1, got %q", got[0].Content)
	}
	if got[9].Content != "a5" {
		t.Errorf("expected newest turn a5, got %q", got[9].Content)
	}
}

func TestRecent_SystemTurnsNotCounted(t *testing.T) {
	h := History{{Role: domain.RoleSystem, Content: "sys"}}
	h = append(h, pairs(3)...)

	got := h.Recent(2)
	if len(got) != 3 {
		t.Fatalf("expected system + 2 turns, got %d", len(got))
	}
	if got[0].Role != domain.RoleSystem {
		t.Errorf("expected system turn kept, got %q", got[0].Role)
	}
	if got[1].Content != "q2" || got[2].Content != "a2" {
		t.Errorf("unexpected turns: %+v", got)
	}
}

func TestRecent_ShortHistoryUnchanged(t *testing.T) {
	h := pairs(2)
	got := h.Recent(10)
	if len(got) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(got))
	}
	got[0].Content = "mutated"
	if h[0].Content != "q0" {
		t.Error("Recent must return a copy")
	}
}

func TestMessages_SkipsSystem(t *testing.T) {
	h := History{{Role: domain.RoleSystem, Content: "sys"}, UserTurn("hi"), AssistantTurn("hello")}
	msgs := h.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != domain.RoleUser || msgs[1].Role != domain.RoleAssistant {
		t.Errorf("unexpected roles: %+v", msgs)
	}
}

func TestEncodeDecode(t *testing.T) {
	raw, err := Encode(History{UserTurn("hello"), AssistantTurn("hi there")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `[{"role":"user","content":"hello"},{"role":"assistant","content":"hi there"}]`
	if raw != want {
		t.Errorf("Encode = %s, want %s", raw, want)
	}

	h, err := Decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h) != 2 || h[1].Content != "hi there" {
		t.Errorf("unexpected history: %+v", h)
	}
}

func TestEncode_NilIsEmptyArray(t *testing.T) {
	raw, err := Encode(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != "[]" {
		t.Errorf("expected [], got %s", raw)
	}
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode("{not json")
	if !errors.Is(err, domain.ErrMalformedCachedPayload) {
		t.Fatalf("expected ErrMalformedCachedPayload, got %v", err)
	}
}

func TestDecode_DropsUnknownRoles(t *testing.T) {
	h, err := Decode(`[{"role":"tool","content":"x"},{"role":"user","content":"q"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(h) != 1 || h[0].Role != domain.RoleUser {
		t.Errorf("unexpected history: %+v", h)
	}
}
