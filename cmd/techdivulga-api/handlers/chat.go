package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rumiadrian30/techdivulga/internal/chat"
	"github.com/rumiadrian30/techdivulga/internal/observability"
	"github.com/rumiadrian30/techdivulga/internal/response"
)

// ChatHandler exposes chat sessions and the classifier.
type ChatHandler struct {
	logger  *observability.Logger
	service *chat.Service
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(logger *observability.Logger, service *chat.Service) *ChatHandler {
	return &ChatHandler{logger: logger, service: service}
}

// CreateSession handles POST /api/chat/sessions.
func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.CreateSession(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// GetSession handles GET /api/chat/sessions/{id}.
func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Session(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// AskRequest is the body of POST /api/chat/sessions/{id}/messages.
type AskRequest struct {
	Query  string `json:"query"`
	Format string `json:"format,omitempty"`
}

// Ask handles POST /api/chat/sessions/{id}/messages.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	format, err := response.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid format", err.Error())
		return
	}

	turn, err := h.service.Ask(r.Context(), chi.URLParam(r, "id"), req.Query, format)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, turn)
}

// FeedbackRequest is the body of POST /api/chat/sessions/{id}/feedback.
type FeedbackRequest struct {
	Feedback string `json:"feedback"`
}

// Feedback handles POST /api/chat/sessions/{id}/feedback.
func (h *ChatHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	fb, err := chat.ParseFeedback(req.Feedback)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	msg, err := h.service.Feedback(r.Context(), chi.URLParam(r, "id"), fb)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// Clear handles DELETE /api/chat/sessions/{id}. The session survives with
// a single notice so the client can keep using it.
func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Clear(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// ClassifyRequest is the body of POST /api/classify.
type ClassifyRequest struct {
	Query string `json:"query"`
}

// Classify handles POST /api/classify.
func (h *ChatHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required", "")
		return
	}
	writeJSON(w, http.StatusOK, h.service.Classify(req.Query))
}

// Analyses handles GET /api/chat/analyses.
func (h *ChatHandler) Analyses(w http.ResponseWriter, r *http.Request) {
	records := h.service.Analyses().Records()
	writeJSON(w, http.StatusOK, map[string]any{"count": len(records), "analyses": records})
}

func (h *ChatHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, chat.ErrBlankQuery), errors.Is(err, chat.ErrInvalidFeedback):
		writeError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, chat.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, chat.ErrNoExchange):
		writeError(w, http.StatusConflict, err.Error(), "")
	default:
		h.logger.WithContext(r.Context()).Error().Err(err).Msg("Chat request failed")
		writeError(w, http.StatusInternalServerError, "chat request failed", "")
	}
}
