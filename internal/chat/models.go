// Package chat runs conversations with the Messi assistant: it keeps
// sessions, runs one classify and generate turn per user message and records
// an analysis log with user feedback.
package chat

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rumiadrian30/techdivulga/internal/classifier"
	"github.com/rumiadrian30/techdivulga/internal/response"
)

// Common errors
var (
	ErrBlankQuery      = errors.New("query is blank")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidFeedback = errors.New("feedback must be positive or negative")
	ErrNoExchange      = errors.New("session has no exchange to rate")
)

// Author identifies who wrote a message.
type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
	AuthorSystem    Author = "system"
)

// Message is one entry of a conversation.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    Author    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
	Intent    string    `json:"intent,omitempty"`
}

// Session is a conversation with its messages in order.
type Session struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Feedback is the user's rating of an answer.
type Feedback string

const (
	FeedbackPositive Feedback = "positive"
	FeedbackNegative Feedback = "negative"
)

// ParseFeedback accepts positive, negative and their + and - shorthands.
func ParseFeedback(s string) (Feedback, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "+", "👍":
		return FeedbackPositive, nil
	case "negative", "-", "👎":
		return FeedbackNegative, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFeedback, s)
	}
}

func (f Feedback) label() string {
	if f == FeedbackPositive {
		return "👍 Positivo"
	}
	return "👎 Negativo"
}

// AnalysisRecord is one exchange kept for later review.
type AnalysisRecord struct {
	SessionID  string    `json:"session_id"`
	Query      string    `json:"query"`
	Intent     string    `json:"intent"`
	Confidence float64   `json:"confidence"`
	Response   string    `json:"response"`
	Timestamp  time.Time `json:"timestamp"`
	Feedback   Feedback  `json:"feedback,omitempty"`
}

// Turn is the outcome of one user message.
type Turn struct {
	SessionID      string            `json:"session_id"`
	Query          string            `json:"query"`
	Classification classifier.Result `json:"classification"`
	Response       response.Response `json:"response"`
	Format         response.Format   `json:"format"`
	// Text is Response rendered in Format.
	Text string `json:"text"`
	// Voice is the speakable rendering, whatever Format was requested.
	Voice string `json:"voice"`
}

// Fixed system texts.
const (
	WelcomeMessage = "¡Bienvenido al sistema de inteligencia artificial especializado en Lionel Messi! ¿Qué te gustaría saber sobre Messi?"
	ClearedMessage = "💬 Conversación reiniciada. ¿En qué puedo ayudarte ahora?"
	ErrorMessage   = "⚠️ **Error en el procesamiento**\n\nLo siento, hubo un error procesando tu consulta. Por favor, intenta de nuevo."
)
