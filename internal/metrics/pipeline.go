package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline Prometheus metrics.
var (
	CacheOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache lookups and writes by namespace and result",
		},
		[]string{"namespace", "result"}, // hit / miss / error / malformed / stored
	)

	ConversationAnswersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversation_answers_total",
			Help:      "Answers produced by the QA engine by memory mode",
		},
		[]string{"mode", "status"},
	)

	SummaryChunks = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "summary_chunks",
			Help:      "Number of chunks per map-reduce summarization",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		},
	)

	IngestionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingestions_total",
			Help:      "Document ingestion runs by outcome",
		},
		[]string{"status"},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers provider and pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(
		CompletionRequestsTotal,
		CompletionRequestDuration,
		CompletionTokensTotal,
		EmbeddingRequestsTotal,
		EmbeddingRequestDuration,
		EmbeddingTokensTotal,
		ProviderErrorsTotal,
		CacheOperationsTotal,
		ConversationAnswersTotal,
		SummaryChunks,
		IngestionsTotal,
	)
	pipelineMetricsRegistered = true
}
