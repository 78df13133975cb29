package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rumiadrian30/techdivulga/internal/files"
	"github.com/rumiadrian30/techdivulga/internal/observability"
)

// FilesHandler serves the documents of the data directory.
type FilesHandler struct {
	logger *observability.Logger
	store  *files.Store
	index  *files.Index
}

// NewFilesHandler creates a new files handler.
func NewFilesHandler(logger *observability.Logger, store *files.Store, index *files.Index) *FilesHandler {
	return &FilesHandler{logger: logger, store: store, index: index}
}

// List handles GET /api/files.
func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "files": list})
}

// ProcessPDFRequest is the body of POST /api/process-pdf.
type ProcessPDFRequest struct {
	Filename string `json:"filename"`
}

// ProcessPDF handles POST /api/process-pdf.
func (h *FilesHandler) ProcessPDF(w http.ResponseWriter, r *http.Request) {
	var req ProcessPDFRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	doc, err := h.store.ProcessPDF(r.Context(), req.Filename)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"filename": doc.Filename,
		"content":  doc.Content,
		"numPages": doc.NumPages,
		"info":     doc.Info,
	})
}

// ReadText handles GET /api/read-text/{filename}.
func (h *FilesHandler) ReadText(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.ReadText(r.Context(), chi.URLParam(r, "filename"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"filename": doc.Filename,
		"content":  doc.Content,
	})
}

// LoadAll handles GET /api/load-all-documents.
func (h *FilesHandler) LoadAll(w http.ResponseWriter, r *http.Request) {
	docs, err := h.store.LoadAll(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "documents": docs})
}

// Search handles GET /api/search-documents?q=&limit=.
func (h *FilesHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required", "")
		return
	}
	hits := h.index.Search(q, atoi(r.URL.Query().Get("limit")))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": hits,
		"index":   h.index.Stats(),
	})
}

// Static serves the raw files under /data/.
func (h *FilesHandler) Static() http.Handler {
	return http.StripPrefix("/data/", http.FileServer(http.Dir(h.store.Dir())))
}

func (h *FilesHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var fe *files.Error
	if !errors.As(err, &fe) {
		h.logger.WithContext(r.Context()).Error().Err(err).Msg("File request failed")
		writeError(w, http.StatusInternalServerError, "file request failed", err.Error())
		return
	}

	switch fe.Kind {
	case files.KindValidation:
		writeError(w, http.StatusBadRequest, fe.Message, "")
	case files.KindNotFound:
		resp := map[string]any{"success": false, "error": fe.Message}
		if len(fe.Suggestions) > 0 {
			resp["suggestions"] = fe.Suggestions
		}
		writeJSON(w, http.StatusNotFound, resp)
	default:
		h.logger.WithContext(r.Context()).Error().Err(err).Msg("File request failed")
		detail := ""
		if fe.Err != nil {
			detail = fe.Err.Error()
		}
		writeError(w, http.StatusInternalServerError, fe.Message, detail)
	}
}
