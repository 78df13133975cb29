package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rumiadrian30/techdivulga/internal/cache"
	"github.com/rumiadrian30/techdivulga/internal/classifier"
	"github.com/rumiadrian30/techdivulga/internal/observability"
	"github.com/rumiadrian30/techdivulga/internal/response"
)

// Config holds chat service settings.
type Config struct {
	SessionTTL      time.Duration
	AnalysisLogSize int
	VoiceMaxChars   int
}

// Service runs conversations. Turns of one session are serialized; turns of
// different sessions run in parallel.
type Service struct {
	classifier *classifier.Classifier
	generator  *response.Generator
	store      cache.Client
	analyses   *AnalysisLog
	config     Config
	logger     *observability.Logger
	now        func() time.Time

	locks *keyedMutex
}

// NewService creates a chat service. Sessions live in store.
func NewService(c *classifier.Classifier, g *response.Generator, store cache.Client, cfg Config, logger *observability.Logger) *Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.VoiceMaxChars <= 0 {
		cfg.VoiceMaxChars = response.DefaultVoiceMaxChars
	}
	if logger == nil {
		logger = observability.NopLogger()
	}
	logger = logger.WithComponent("chat")

	return &Service{
		classifier: c,
		generator:  g,
		store:      store,
		analyses:   NewAnalysisLog(cfg.AnalysisLogSize, store, logger),
		config:     cfg,
		logger:     logger,
		now:        time.Now,
		locks:      newKeyedMutex(),
	}
}

// Analyses returns the analysis log.
func (s *Service) Analyses() *AnalysisLog {
	return s.analyses
}

// Classify exposes the classifier for diagnostics.
func (s *Service) Classify(query string) classifier.Result {
	return s.classifier.Classify(query)
}

// CreateSession starts a conversation with the welcome message.
func (s *Service) CreateSession(ctx context.Context) (*Session, error) {
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	sess.Messages = append(sess.Messages, s.message(AuthorSystem, WelcomeMessage, ""))

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.WithSession(sess.ID).Info().Msg("Session created")
	return sess, nil
}

// Session loads a conversation.
func (s *Service) Session(ctx context.Context, id string) (*Session, error) {
	data, err := s.store.Get(ctx, cache.SessionKey(id))
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// Ask runs one turn: classify, generate, render, record. A blank query is
// rejected before anything is recorded.
func (s *Service) Ask(ctx context.Context, sessionID, query string, format response.Format) (*Turn, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrBlankQuery
	}
	if format == "" {
		format = response.FormatMarkdown
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	start := s.now()
	sess.Messages = append(sess.Messages, s.message(AuthorUser, query, ""))

	turn := s.answer(sessionID, query, format)
	sess.Messages = append(sess.Messages, s.message(AuthorAssistant, turn.Text, turn.Classification.Intent))

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	s.analyses.Append(ctx, AnalysisRecord{
		SessionID:  sessionID,
		Query:      query,
		Intent:     turn.Classification.Intent,
		Confidence: turn.Classification.Confidence,
		Response:   turn.Text,
		Timestamp:  s.now(),
	})

	s.logger.WithSession(sessionID).Info().
		Str("intent", turn.Classification.Intent).
		Float64("confidence", turn.Classification.Confidence).
		Bool("specific", turn.Classification.Specific).
		Dur("duration", s.now().Sub(start)).
		Msg("Query answered")

	return turn, nil
}

// Answer runs classify and generate without a session.
func (s *Service) Answer(query string, format response.Format) *Turn {
	return s.answer("", query, format)
}

func (s *Service) answer(sessionID, query string, format response.Format) (turn *Turn) {
	turn = &Turn{SessionID: sessionID, Query: query, Format: format}

	defer func() {
		if r := recover(); r != nil {
			s.logger.WithSession(sessionID).Error().
				Str("query", query).
				Interface("panic", r).
				Msg("Response generation failed")
			turn.Response = response.Response{Intent: turn.Classification.Intent, Intro: ErrorMessage}
			turn.Text = ErrorMessage
			turn.Voice = response.Speakable(ErrorMessage, s.config.VoiceMaxChars)
		}
	}()

	turn.Classification = s.classifier.Classify(query)
	turn.Response = s.generator.Generate(turn.Classification, query)
	turn.Text = response.NewRenderer(format, s.config.VoiceMaxChars).Render(turn.Response)
	turn.Voice = response.VoiceRenderer{MaxChars: s.config.VoiceMaxChars}.Render(turn.Response)
	return turn
}

// Feedback rates the last exchange of a session and acknowledges it with a
// system message.
func (s *Service) Feedback(ctx context.Context, sessionID string, fb Feedback) (*Message, error) {
	if fb != FeedbackPositive && fb != FeedbackNegative {
		return nil, ErrInvalidFeedback
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	rec, err := s.analyses.RateLast(ctx, sessionID, fb)
	if err != nil {
		return nil, err
	}

	msg := s.message(AuthorSystem, "✅ Gracias por tu feedback: "+fb.label(), "")
	sess.Messages = append(sess.Messages, msg)
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.WithSession(sessionID).Info().
		Str("feedback", string(fb)).
		Str("intent", rec.Intent).
		Msg("Feedback recorded")
	return &msg, nil
}

// Clear drops the messages of a session, leaving a single system notice.
func (s *Service) Clear(ctx context.Context, sessionID string) (*Session, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Messages = []Message{s.message(AuthorSystem, ClearedMessage, "")}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Delete removes a session.
func (s *Service) Delete(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if _, err := s.Session(ctx, sessionID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, cache.SessionKey(sessionID)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Service) message(author Author, text, intent string) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		Author:    author,
		Timestamp: s.now(),
		Intent:    intent,
	}
}

func (s *Service) save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = s.now()
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.Set(ctx, cache.SessionKey(sess.ID), data, s.config.SessionTTL); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}
