package cache

import (
	"strings"
	"testing"
)

func TestKey_SamePrefixSameKey(t *testing.T) {
	head := strings.Repeat("p", FingerprintChars)
	a := head + " first document tail"
	b := head + " a completely different tail"

	if Key(NamespaceSummary, a) != Key(NamespaceSummary, b) {
		t.Error("texts sharing the first 100 characters must share a key")
	}
}

func TestKey_DifferentPrefixDifferentKey(t *testing.T) {
	a := strings.Repeat("p", FingerprintChars)
	b := strings.Repeat("p", FingerprintChars-1) + "q"

	if Key(NamespaceSummary, a) == Key(NamespaceSummary, b) {
		t.Error("texts differing within the first 100 characters must not share a key")
	}
}

func TestKey_NamespaceSeparates(t *testing.T) {
	s := "same text"
	if Key(NamespaceSummary, s) == Key(NamespaceEmbedding, s) {
		t.Error("different namespaces must produce different keys")
	}
	if !strings.HasPrefix(Key(NamespaceTopics, s), "topics:") {
		t.Errorf("unexpected key %q", Key(NamespaceTopics, s))
	}
}

func TestKey_CharactersNotBytes(t *testing.T) {
	head := strings.Repeat("é", FingerprintChars)
	if Key(NamespaceSummary, head+"x") != Key(NamespaceSummary, head+"y") {
		t.Error("fingerprint must cover 100 characters, not 100 bytes")
	}
}

func TestHistoryKey(t *testing.T) {
	if got := HistoryKey("doc-42"); got != "history:doc-42" {
		t.Errorf("HistoryKey = %q", got)
	}
}

func TestNamespaceOf(t *testing.T) {
	if got := namespaceOf("embedding:abc"); got != "embedding" {
		t.Errorf("namespaceOf = %q", got)
	}
	if got := namespaceOf("nocolon"); got != "other" {
		t.Errorf("namespaceOf = %q", got)
	}
}
