// Package conversation answers questions about a document while keeping a bounded,
// per-document dialogue.
//
// Without a document ID the engine is stateless. With one it runs in structured mode,
// backed by an in-process session mirrored to the durable history after every answer.
// Any structured failure switches the call to fallback mode, which rebuilds the dialogue
// from the durable history alone. Fallback never switches back within a call, and a
// fallback failure is terminal. Both modes read and write the same canonical encoding.
//
// Concurrent calls for one document are not serialized: they may answer from the same
// history and the last durable write wins.
package conversation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsense/internal/domain"
	domconv "github.com/kailas-cloud/docsense/internal/domain/conversation"
	"github.com/kailas-cloud/docsense/internal/domain/text"
	"github.com/kailas-cloud/docsense/internal/metrics"
)

// Mode is the memory strategy used to produce an answer.
type Mode string

// Memory strategies.
const (
	ModeStateless  Mode = "stateless"
	ModeStructured Mode = "structured"
	ModeFallback   Mode = "fallback"
)

// Defaults used when Config leaves a field zero.
const (
	DefaultExcerptTokens = 4000
	DefaultAnswerTokens  = 500
)

var errEmptyAnswer = fmt.Errorf("empty answer: %w", domain.ErrProviderCallFailed)

// Config tunes prompts and history bounds.
type Config struct {
	// ExcerptTokens bounds the document excerpt embedded in every prompt.
	ExcerptTokens int
	// MaxTurns caps the prior user/assistant turns carried into a prompt.
	MaxTurns     int
	AnswerTokens int
	Temperature  float32
}

// Answer is a generated reply and the mode that produced it.
type Answer struct {
	Text string
	Mode Mode
}

// Engine is the conversational QA engine.
type Engine struct {
	llm      Completer
	history  HistoryStore
	sessions *SessionStore
	cfg      Config
	logger   *zap.Logger
}

// New creates an engine over a durable history store and an injected session store.
func New(llm Completer, history HistoryStore, sessions *SessionStore, cfg Config, logger *zap.Logger) *Engine {
	if cfg.ExcerptTokens <= 0 {
		cfg.ExcerptTokens = DefaultExcerptTokens
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = domconv.DefaultMaxTurns
	}
	if cfg.AnswerTokens <= 0 {
		cfg.AnswerTokens = DefaultAnswerTokens
	}
	return &Engine{llm: llm, history: history, sessions: sessions, cfg: cfg, logger: logger}
}

// Answer replies to question about content. An empty documentID selects stateless mode.
// Terminal failures wrap domain.ErrAnswerGenerationFailed.
func (e *Engine) Answer(ctx context.Context, content, question, documentID string) (Answer, error) {
	excerpt := text.Truncate(content, e.cfg.ExcerptTokens)

	if documentID == "" {
		reply, err := e.answerStateless(ctx, excerpt, question)
		return e.finish(ModeStateless, documentID, reply, err)
	}

	reply, err := e.answerStructured(ctx, excerpt, question, documentID)
	if err == nil {
		return e.finish(ModeStructured, documentID, reply, nil)
	}

	metrics.ConversationAnswersTotal.WithLabelValues(string(ModeStructured), "error").Inc()
	e.logger.Warn("Structured memory failed, switching to fallback",
		zap.String("document_id", documentID), zap.Error(err))

	reply, err = e.answerFallback(ctx, excerpt, question, documentID)
	return e.finish(ModeFallback, documentID, reply, err)
}

// Forget drops both the in-process session and the durable history of documentID.
func (e *Engine) Forget(ctx context.Context, documentID string) error {
	e.sessions.Remove(documentID)
	if err := e.history.Delete(ctx, documentID); err != nil {
		return fmt.Errorf("forget conversation %s: %w", documentID, err)
	}
	return nil
}

func (e *Engine) answerStateless(ctx context.Context, excerpt, question string) (string, error) {
	return e.complete(ctx, []domain.Message{
		domain.SystemMessage(persona),
		domain.SystemMessage(documentContext(excerpt)),
		domain.UserMessage(question),
	})
}

// answerStructured answers from the in-process session, hydrating it from the durable
// history on first use, then mirrors the updated dialogue to the durable history.
func (e *Engine) answerStructured(ctx context.Context, excerpt, question, documentID string) (string, error) {
	sess := e.sessions.acquire(documentID, func() domconv.History {
		return e.history.Load(ctx, documentID).Dialogue()
	})

	prior := sess.snapshot().Recent(e.cfg.MaxTurns)

	msgs := make([]domain.Message, 0, len(prior)+2)
	msgs = append(msgs, domain.SystemMessage(groundedPersona(excerpt)))
	msgs = append(msgs, prior.Messages()...)
	msgs = append(msgs, domain.UserMessage(question))

	reply, err := e.complete(ctx, msgs)
	if err != nil {
		return "", err
	}

	updated := sess.replace(append(prior, domconv.UserTurn(question), domconv.AssistantTurn(reply)))
	e.sessions.touch(documentID, sess)
	e.history.Save(ctx, documentID, updated)
	return reply, nil
}

// answerFallback answers from the durable history alone. On success the in-process
// session is dropped so the next structured call rehydrates from what was written here.
func (e *Engine) answerFallback(ctx context.Context, excerpt, question, documentID string) (string, error) {
	h := e.history.Load(ctx, documentID).Recent(e.cfg.MaxTurns)
	h = append(h, domconv.UserTurn(question))

	msgs := make([]domain.Message, 0, len(h)+2)
	msgs = append(msgs, domain.SystemMessage(persona), domain.SystemMessage(documentContext(excerpt)))
	msgs = append(msgs, h.Messages()...)

	reply, err := e.complete(ctx, msgs)
	if err != nil {
		return "", err
	}

	h = append(h, domconv.AssistantTurn(reply))
	e.history.Save(ctx, documentID, h)
	e.sessions.Remove(documentID)
	return reply, nil
}

func (e *Engine) complete(ctx context.Context, msgs []domain.Message) (string, error) {
	res, err := e.llm.Complete(ctx, domain.CompletionRequest{
		Messages:    msgs,
		MaxTokens:   e.cfg.AnswerTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}
	if res.Content == "" {
		return "", errEmptyAnswer
	}
	return res.Content, nil
}

func (e *Engine) finish(mode Mode, documentID, reply string, err error) (Answer, error) {
	if err != nil {
		metrics.ConversationAnswersTotal.WithLabelValues(string(mode), "error").Inc()
		e.logger.Error("Answer generation failed",
			zap.String("mode", string(mode)), zap.String("document_id", documentID), zap.Error(err))
		return Answer{}, fmt.Errorf("%w: %s mode: %w", domain.ErrAnswerGenerationFailed, mode, err)
	}
	metrics.ConversationAnswersTotal.WithLabelValues(string(mode), "success").Inc()
	return Answer{Text: reply, Mode: mode}, nil
}
