package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/kailas-cloud/docsense/internal/domain/text"
)

// FingerprintChars is how many leading characters of the input take part in a cache key.
// Two inputs sharing this prefix share their keys.
const FingerprintChars = 100

// Cache namespaces, one per cached operation.
const (
	NamespaceSummary    = "summary"
	NamespaceTopics     = "topics"
	NamespaceKeyPhrases = "keyphrases"
	NamespaceEmbedding  = "embedding"
	NamespaceHistory    = "history"
)

// Fingerprint derives a short deterministic string from the first FingerprintChars
// characters of s.
func Fingerprint(s string) string {
	h := sha256.Sum256([]byte(text.Prefix(s, FingerprintChars)))
	return hex.EncodeToString(h[:])
}

// Key builds the cache key for an operation namespace and its input text.
func Key(namespace, s string) string {
	return namespace + ":" + Fingerprint(s)
}

// HistoryKey builds the conversation history key for a document.
func HistoryKey(documentID string) string {
	return NamespaceHistory + ":" + documentID
}

// namespaceOf returns the namespace part of a key, used as a metrics label.
func namespaceOf(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			return key[:i]
		}
	}
	return "other"
}
