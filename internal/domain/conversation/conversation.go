// Package conversation models per-document dialogue state and its canonical encoding.
package conversation

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/docsense/internal/domain"
)

// DefaultMaxTurns is the number of recent user/assistant turns kept in a history.
const DefaultMaxTurns = 10

// Turn is one entry of a conversation.
type Turn struct {
	Role    domain.Role `json:"role"`
	Content string      `json:"content"`
}

// UserTurn builds a user turn.
func UserTurn(content string) Turn { return Turn{Role: domain.RoleUser, Content: content} }

// AssistantTurn builds an assistant turn.
func AssistantTurn(content string) Turn { return Turn{Role: domain.RoleAssistant, Content: content} }

// Message converts the turn into a completion message.
func (t Turn) Message() domain.Message {
	return domain.Message{Role: t.Role, Content: t.Content}
}

func (t Turn) dialogue() bool {
	return t.Role == domain.RoleUser || t.Role == domain.RoleAssistant
}

// History is an ordered, append-only sequence of turns.
type History []Turn

// Recent returns a copy holding the last n user/assistant turns. System turns are
// kept in place and do not count towards n.
func (h History) Recent(n int) History {
	if n < 0 {
		n = 0
	}
	dialogue := 0
	for _, t := range h {
		if t.dialogue() {
			dialogue++
		}
	}
	drop := dialogue - n

	out := make(History, 0, len(h))
	for _, t := range h {
		if t.dialogue() && drop > 0 {
			drop--
			continue
		}
		out = append(out, t)
	}
	return out
}

// Dialogue returns only the user/assistant turns.
func (h History) Dialogue() History {
	out := make(History, 0, len(h))
	for _, t := range h {
		if t.dialogue() {
			out = append(out, t)
		}
	}
	return out
}

// Messages converts user/assistant turns into completion messages.
func (h History) Messages() []domain.Message {
	msgs := make([]domain.Message, 0, len(h))
	for _, t := range h {
		if t.dialogue() {
			msgs = append(msgs, t.Message())
		}
	}
	return msgs
}

// Clone returns an independent copy.
func (h History) Clone() History {
	if h == nil {
		return nil
	}
	out := make(History, len(h))
	copy(out, h)
	return out
}

// Encode serializes the history into its canonical persisted form: a JSON array of
// {"role","content"} objects.
func Encode(h History) (string, error) {
	if h == nil {
		h = History{}
	}
	data, err := json.Marshal(h)
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}
	return string(data), nil
}

// Decode parses the canonical persisted form. Turns with an unknown role are dropped.
func Decode(raw string) (History, error) {
	var turns []Turn
	if err := json.Unmarshal([]byte(raw), &turns); err != nil {
		return nil, fmt.Errorf("%w: history: %w", domain.ErrMalformedCachedPayload, err)
	}
	out := make(History, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case domain.RoleUser, domain.RoleAssistant, domain.RoleSystem:
			out = append(out, t)
		}
	}
	return out, nil
}
