package domain

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubEmbedder struct {
	result EmbeddingResult
	err    error
	got    string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) (EmbeddingResult, error) {
	s.got = text
	return s.result, s.err
}

func TestTruncatingEmbedder_ShortTextUnchanged(t *testing.T) {
	inner := &stubEmbedder{result: EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}}}
	emb := NewTruncatingEmbedder(inner, 10)

	result, err := emb.Embed(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.got != "hello world" {
		t.Errorf("expected untouched text, got %q", inner.got)
	}
	if len(result.Embedding) != 3 {
		t.Errorf("expected 3-element vector, got %d", len(result.Embedding))
	}
}

func TestTruncatingEmbedder_LongTextCut(t *testing.T) {
	inner := &stubEmbedder{}
	emb := NewTruncatingEmbedder(inner, 8000)

	if _, err := emb.Embed(context.Background(), strings.Repeat("a", 30000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inner.got) != 24000+len("...") {
		t.Errorf("expected 24000 chars plus ellipsis, got %d", len(inner.got))
	}
}

func TestTruncatingEmbedder_ErrorPropagation(t *testing.T) {
	innerErr := errors.New("provider down")
	emb := NewTruncatingEmbedder(&stubEmbedder{err: innerErr}, 10)

	_, err := emb.Embed(context.Background(), "text")
	if !errors.Is(err, innerErr) {
		t.Fatalf("expected wrapped inner error, got %v", err)
	}
}
