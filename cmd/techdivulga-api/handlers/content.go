package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rumiadrian30/techdivulga/internal/content"
	"github.com/rumiadrian30/techdivulga/internal/observability"
)

// ContentHandler serves the content tables and the site endpoints built on
// them.
type ContentHandler struct {
	logger  *observability.Logger
	service *content.Service
}

// NewContentHandler creates a new content handler.
func NewContentHandler(logger *observability.Logger, service *content.Service) *ContentHandler {
	return &ContentHandler{logger: logger, service: service}
}

// List handles GET /tables/{resource}.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := content.ListOptions{
		Page:   atoi(q.Get("page")),
		Limit:  atoi(q.Get("limit")),
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
	}
	page, err := h.service.List(r.Context(), chi.URLParam(r, "resource"), opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /tables/{resource}/{id}.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "resource"), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /tables/{resource}.
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := decodeJSON(w, r, &fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	item, err := h.service.Create(r.Context(), chi.URLParam(r, "resource"), fields)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /tables/{resource}/{id}.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, h.service.Update)
}

// Patch handles PATCH /tables/{resource}/{id}.
func (h *ContentHandler) Patch(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, h.service.Patch)
}

type saveFunc func(ctx context.Context, resource, id string, fields map[string]any) (content.Item, error)

func (h *ContentHandler) save(w http.ResponseWriter, r *http.Request, fn saveFunc) {
	var fields map[string]any
	if err := decodeJSON(w, r, &fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	item, err := fn(r.Context(), chi.URLParam(r, "resource"), chi.URLParam(r, "id"), fields)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /tables/{resource}/{id}.
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "resource"), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /api/content/search?q=&types=.
func (h *ContentHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required", "")
		return
	}

	var types []content.Resource
	if raw := r.URL.Query().Get("types"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			res, err := content.ParseResource(strings.TrimSpace(name))
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid types", err.Error())
				return
			}
			types = append(types, res)
		}
	}
	writeJSON(w, http.StatusOK, h.service.Search(r.Context(), query, types))
}

// Featured handles GET /api/content/featured.
func (h *ContentHandler) Featured(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.Featured(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// Stats handles GET /api/content/stats.
func (h *ContentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Stats(r.Context()))
}

// NewsletterRequest is the body of POST /api/newsletter.
type NewsletterRequest struct {
	Email string `json:"email"`
}

// Subscribe handles POST /api/newsletter.
func (h *ContentHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req NewsletterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := h.service.Subscribe(r.Context(), req.Email); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": content.SubscribedMessage})
}

// AddComment handles POST /api/content/{resource}/{id}/comments.
func (h *ContentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var in content.CommentInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	c, err := h.service.AddComment(r.Context(), chi.URLParam(r, "resource"), chi.URLParam(r, "id"), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "comment": c})
}

// Comments handles GET /api/content/{resource}/{id}/comments.
func (h *ContentHandler) Comments(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Comments(r.Context(), chi.URLParam(r, "resource"), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ContentHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, content.ErrUnknownResource):
		writeError(w, http.StatusNotFound, "unknown resource", err.Error())
	case errors.Is(err, content.ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found", "")
	case errors.Is(err, content.ErrInvalidRecord), errors.Is(err, content.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
	default:
		h.logger.WithContext(r.Context()).Error().Err(err).Msg("Content request failed")
		writeError(w, http.StatusInternalServerError, "content request failed", "")
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
