package chat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumiadrian30/techdivulga/internal/cache"
	"github.com/rumiadrian30/techdivulga/internal/classifier"
	"github.com/rumiadrian30/techdivulga/internal/knowledge"
	"github.com/rumiadrian30/techdivulga/internal/observability"
	"github.com/rumiadrian30/techdivulga/internal/response"
)

func newTestService(t *testing.T, cfg Config) (*Service, *cache.MemoryClient) {
	t.Helper()
	cat, err := knowledge.LoadCatalog()
	require.NoError(t, err)
	kb, err := knowledge.LoadBase()
	require.NoError(t, err)
	c, err := classifier.New(cat, classifier.Config{})
	require.NoError(t, err)

	store := cache.NewMemoryClient(0)
	t.Cleanup(func() { _ = store.Close() })
	return NewService(c, response.NewGenerator(kb), store, cfg, observability.NopLogger()), store
}

func TestService_CreateSession(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, Config{})

	sess, err := s.CreateSession(ctx)
	require.NoError(t, err)
	require.Len(t, sess.Messages, 1)
	assert.Equal(t, AuthorSystem, sess.Messages[0].Author)
	assert.Equal(t, WelcomeMessage, sess.Messages[0].Text)

	loaded, err := s.Session(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Len(t, loaded.Messages, 1)
}

func TestService_Ask(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, Config{})
	sess, err := s.CreateSession(ctx)
	require.NoError(t, err)

	turn, err := s.Ask(ctx, sess.ID, "cuántos balones de oro tiene", response.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "balones_oro", turn.Classification.Intent)
	assert.Contains(t, turn.Text, "8")
	assert.Contains(t, turn.Text, "**")
	assert.NotContains(t, turn.Voice, "**")

	loaded, err := s.Session(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 3)
	assert.Equal(t, AuthorUser, loaded.Messages[1].Author)
	assert.Equal(t, "cuántos balones de oro tiene", loaded.Messages[1].Text)
	assert.Equal(t, AuthorAssistant, loaded.Messages[2].Author)
	assert.Equal(t, "balones_oro", loaded.Messages[2].Intent)

	records := s.Analyses().Records()
	require.Len(t, records, 1)
	assert.Equal(t, "balones_oro", records[0].Intent)
	assert.Equal(t, sess.ID, records[0].SessionID)
}

func TestService_Ask_Formats(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, Config{VoiceMaxChars: 120})
	sess, err := s.CreateSession(ctx)
	require.NoError(t, err)

	html, err := s.Ask(ctx, sess.ID, "háblame de su vida personal", response.FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, html.Text, "<div")

	voice, err := s.Ask(ctx, sess.ID, "estadísticas de messi", response.FormatVoice)
	require.NoError(t, err)
	assert.LessOrEqual(t, utf8.RuneCountInString(voice.Text), 120)
	assert.Equal(t, voice.Text, voice.Voice)
}

func TestService_Ask_Errors(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, Config{})

	_, err := s.Ask(ctx, "nope", "hola", response.FormatText)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	sess, err := s.CreateSession(ctx)
	require.NoError(t, err)
	_, err = s.Ask(ctx, sess.ID, "   ", response.FormatText)
	assert.ErrorIs(t, err, ErrBlankQuery)
	assert.Equal(t, 0, s.Analyses().Len())
}

func TestService_Ask_ConcurrentTurnsKeepEveryMessage(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, Config{})
	sess, err := s.CreateSession(ctx)
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Ask(ctx, sess.ID, fmt.Sprintf("hola %d", i), response.FormatText)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	loaded, err := s.Session(ctx, sess.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Messages, 1+2*n)
	for i := 1; i < len(loaded.Messages); i += 2 {
		assert.Equal(t, AuthorUser, loaded.Messages[i].Author)
		assert.Equal(t, AuthorAssistant, loaded.Messages[i+1].Author)
	}
	assert.Equal(t, 0, s.locks.size())
}

func TestService_Feedback(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, Config{})
	sess, err := s.CreateSession(ctx)
	require.NoError(t, err)

	_, err = s.Feedback(ctx, sess.ID, FeedbackPositive)
	assert.ErrorIs(t, err, ErrNoExchange)

	_, err = s.Ask(ctx, sess.ID, "hola", response.FormatText)
	require.NoError(t, err)
	_, err = s.Ask(ctx, sess.ID, "¿Quién es Messi?", response.FormatText)
	require.NoError(t, err)

	msg, err := s.Feedback(ctx, sess.ID, FeedbackNegative)
	require.NoError(t, err)
	assert.Equal(t, "✅ Gracias por tu feedback: 👎 Negativo", msg.Text)

	records := s.Analyses().Records()
	require.Len(t, records, 2)
	assert.Empty(t, records[0].Feedback)
	assert.Equal(t, FeedbackNegative, records[1].Feedback)

	_, err = s.Feedback(ctx, sess.ID, Feedback("meh"))
	assert.ErrorIs(t, err, ErrInvalidFeedback)
}

func TestService_Clear(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, Config{})
	sess, err := s.CreateSession(ctx)
	require.NoError(t, err)
	_, err = s.Ask(ctx, sess.ID, "hola", response.FormatText)
	require.NoError(t, err)

	cleared, err := s.Clear(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, cleared.Messages, 1)
	assert.Equal(t, ClearedMessage, cleared.Messages[0].Text)

	require.NoError(t, s.Delete(ctx, sess.ID))
	_, err = s.Session(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, s.Delete(ctx, sess.ID), ErrSessionNotFound)
}

func TestService_SessionExpires(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService(t, Config{SessionTTL: time.Minute})
	sess, err := s.CreateSession(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, cache.SessionKey(sess.ID)))
	_, err = s.Ask(ctx, sess.ID, "hola", response.FormatText)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_Answer(t *testing.T) {
	s, _ := newTestService(t, Config{})

	turn := s.Answer("cuál es el dólar hoy", response.FormatText)
	assert.Equal(t, knowledge.IntentNotMessi, turn.Classification.Intent)
	assert.Equal(t, 1.0, turn.Classification.Confidence)
	assert.Contains(t, turn.Text, "Lionel Messi")
}

func TestAnalysisLog_DropsOldestFirst(t *testing.T) {
	ctx := context.Background()
	log := NewAnalysisLog(3, nil, nil)

	for i := range 5 {
		log.Append(ctx, AnalysisRecord{Query: fmt.Sprint(i)})
		assert.LessOrEqual(t, log.Len(), 3)
	}

	var queries []string
	for _, r := range log.Records() {
		queries = append(queries, r.Query)
	}
	assert.Equal(t, []string{"2", "3", "4"}, queries)
}

func TestAnalysisLog_PersistAndRestore(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryClient(0)
	defer store.Close()

	log := NewAnalysisLog(2, store, nil)
	log.Append(ctx, AnalysisRecord{SessionID: "s", Query: "a"})
	log.Append(ctx, AnalysisRecord{SessionID: "s", Query: "b"})
	_, err := log.RateLast(ctx, "s", FeedbackPositive)
	require.NoError(t, err)

	restored := NewAnalysisLog(1, store, nil)
	require.NoError(t, restored.Restore(ctx))
	records := restored.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "b", records[0].Query)
	assert.Equal(t, FeedbackPositive, records[0].Feedback)

	empty := NewAnalysisLog(2, cache.NewMemoryClient(0), nil)
	assert.NoError(t, empty.Restore(ctx))
	assert.Equal(t, 0, empty.Len())
}

type failingStore struct{ cache.Client }

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store down")
}

func TestAnalysisLog_StoreFailureIsLoggedNotReturned(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.NewLogger(observability.LogConfig{Level: "warn", Output: &buf})

	log := NewAnalysisLog(5, failingStore{}, logger)
	log.Append(context.Background(), AnalysisRecord{Query: "hola"})

	assert.Equal(t, 1, log.Len())
	assert.Contains(t, buf.String(), "store down")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

// gatedStore holds the first Set until release is closed.
type gatedStore struct {
	*cache.MemoryClient
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return g.MemoryClient.Set(ctx, key, value, ttl)
}

func TestAnalysisLog_ConcurrentAppendsMirrorNewestSnapshot(t *testing.T) {
	ctx := context.Background()
	store := &gatedStore{
		MemoryClient: cache.NewMemoryClient(0),
		entered:      make(chan struct{}),
		release:      make(chan struct{}),
	}
	defer store.Close()
	log := NewAnalysisLog(10, store, nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		log.Append(ctx, AnalysisRecord{SessionID: "a", Query: "primera"})
	}()
	<-store.entered
	go func() {
		defer wg.Done()
		log.Append(ctx, AnalysisRecord{SessionID: "b", Query: "segunda"})
	}()
	// give the second append time to reach the cache
	time.Sleep(50 * time.Millisecond)
	close(store.release)
	wg.Wait()

	restored := NewAnalysisLog(10, store.MemoryClient, nil)
	require.NoError(t, restored.Restore(ctx))
	assert.Len(t, restored.Records(), 2)
}

func TestParseFeedback(t *testing.T) {
	for in, want := range map[string]Feedback{
		"positive":  FeedbackPositive,
		"+":         FeedbackPositive,
		" NEGATIVE": FeedbackNegative,
		"-":         FeedbackNegative,
	} {
		got, err := ParseFeedback(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFeedback("maybe")
	assert.ErrorIs(t, err, ErrInvalidFeedback)
}

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	k := newKeyedMutex()
	var mu sync.Mutex
	active, maxActive := 0, 0

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("same")
			defer unlock()

			mu.Lock()
			active++
			maxActive = max(maxActive, active)
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive)
	assert.Equal(t, 0, k.size())
}
