package config

import "time"

// SummaryTTL is the cache lifetime of summaries, topics and key phrases.
func (c PipelineConfig) SummaryTTL() time.Duration {
	return time.Duration(c.SummaryTTLHours) * time.Hour
}

// EmbeddingTTL is the cache lifetime of embeddings.
func (c PipelineConfig) EmbeddingTTL() time.Duration {
	return time.Duration(c.EmbeddingTTLDays) * 24 * time.Hour
}

// IngestTimeout bounds one background ingestion run.
func (c PipelineConfig) IngestTimeout() time.Duration {
	return time.Duration(c.IngestTimeoutSec) * time.Second
}

// HistoryTTL is the lifetime of the durable conversation history.
func (c ConversationConfig) HistoryTTL() time.Duration {
	return time.Duration(c.HistoryTTLMinutes) * time.Minute
}

// SessionTTL is the idle lifetime of an in-process conversation session.
func (c ConversationConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}
