package domain

import "errors"

var (
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidRequest signals malformed caller input.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrCacheMiss signals that the cache holds no entry for a key.
	ErrCacheMiss = errors.New("cache miss")
	// ErrCacheUnavailable signals a failure of the key-value store. Callers treat it as a miss.
	ErrCacheUnavailable = errors.New("cache unavailable")
	// ErrMalformedCachedPayload signals a cached value that could not be decoded. Treated as a miss.
	ErrMalformedCachedPayload = errors.New("malformed cached payload")

	// ErrProviderCallFailed signals a failed completion or embedding provider call.
	ErrProviderCallFailed = errors.New("provider call failed")
	// ErrAnswerGenerationFailed signals that no conversation strategy could produce an answer.
	ErrAnswerGenerationFailed = errors.New("answer generation failed")
)
