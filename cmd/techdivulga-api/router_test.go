package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumiadrian30/techdivulga/internal/app"
	"github.com/rumiadrian30/techdivulga/internal/config"
)

func newTestServer(t *testing.T) (*httptest.Server, *app.App) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Database.SQLite.Path = ":memory:"
	cfg.Files.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.Chat.RateLimitPerSecond = 1000
	cfg.Chat.RateLimitBurst = 1000
	require.NoError(t, os.MkdirAll(cfg.Files.DataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Files.DataDir, "notas.txt"), []byte("Messi ganó el Mundial de Qatar con Argentina"), 0o644))

	a, err := app.New(context.Background(), cfg, nil, app.Options{Migrate: true})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	srv := httptest.NewServer(NewRouter(a.Logger, a))
	t.Cleanup(srv.Close)
	return srv, a
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestRouter_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "techdivulga", body["service"])
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/ready", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", body["status"])
}

func TestRouter_TablesCRUD(t *testing.T) {
	srv, _ := newTestServer(t)
	base := srv.URL + "/tables/articulos"

	resp, created := doJSON(t, http.MethodPost, base, map[string]any{
		"titulo":            "Go en producción",
		"publicado":         true,
		"fecha_publicacion": "2024-03-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	resp, got := doJSON(t, http.MethodGet, base+"/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Go en producción", got["titulo"])

	resp, patched := doJSON(t, http.MethodPatch, base+"/"+id, map[string]any{"resumen": "Notas"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Go en producción", patched["titulo"])
	assert.Equal(t, "Notas", patched["resumen"])

	resp, page := doJSON(t, http.MethodGet, base+"?search=produccion&limit=5", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "articulos", page["table"])

	resp, page = doJSON(t, http.MethodGet, base+"?search=GO+en", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, page["total"])

	resp, _ = doJSON(t, http.MethodDelete, base+"/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, base+"/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestRouter_TablesErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/tables/planetas", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/tables/noticias/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/tables/noticias", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_NewsletterAndComments(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/newsletter", map[string]string{"email": "Ana@Example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/newsletter", map[string]string{"email": "no-es-email"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, created := doJSON(t, http.MethodPost, srv.URL+"/tables/tutoriales", map[string]any{"titulo": "Canales", "publicado": true})
	id := created["id"].(string)
	comments := srv.URL + "/api/content/tutoriales/" + id + "/comments"

	resp, body = doJSON(t, http.MethodPost, comments, map[string]string{"autor": "Ana", "contenido": "Muy claro"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, _ = doJSON(t, http.MethodPost, comments, map[string]string{"autor": "Ana"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err := http.Get(comments)
	require.NoError(t, err)
	defer resp.Body.Close()
	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "Muy claro", list[0]["contenido"])
}

func TestRouter_ContentSearchAndStats(t *testing.T) {
	srv, _ := newTestServer(t)

	doJSON(t, http.MethodPost, srv.URL+"/tables/herramientas", map[string]any{"nombre": "Docker", "publicado": true})
	doJSON(t, http.MethodPost, srv.URL+"/tables/herramientas", map[string]any{"nombre": "Dockerfile lint", "publicado": false})

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/content/search?q=docker&types=herramientas", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	hits, _ := body["herramientas"].([]any)
	assert.Len(t, hits, 1)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/content/search", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/content/search?q=x&types=planetas", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/content/stats", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/content/featured", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_Chat(t *testing.T) {
	srv, _ := newTestServer(t)
	base := srv.URL + "/api/chat/sessions"

	resp, sess := doJSON(t, http.MethodPost, base, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := sess["id"].(string)

	resp, _ = doJSON(t, http.MethodPost, base+"/"+id+"/feedback", map[string]string{"feedback": "+"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, turn := doJSON(t, http.MethodPost, base+"/"+id+"/messages", map[string]string{"query": "¿Cuántos balones de oro tiene?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	classification := turn["classification"].(map[string]any)
	assert.Equal(t, "balones_oro", classification["intent"])
	assert.NotEmpty(t, turn["text"])
	assert.NotEmpty(t, turn["voice"])

	resp, _ = doJSON(t, http.MethodPost, base+"/"+id+"/messages", map[string]string{"query": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, base+"/"+id+"/messages", map[string]string{"query": "hola", "format": "braille"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, base+"/"+id+"/feedback", map[string]string{"feedback": "meh"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, msg := doJSON(t, http.MethodPost, base+"/"+id+"/feedback", map[string]string{"feedback": "positive"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "system", msg["author"])

	resp, got := doJSON(t, http.MethodGet, base+"/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, got["messages"], 4)

	resp, analyses := doJSON(t, http.MethodGet, srv.URL+"/api/chat/analyses", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, analyses["count"])

	resp, cleared := doJSON(t, http.MethodDelete, base+"/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, cleared["messages"], 1)

	resp, _ = doJSON(t, http.MethodGet, base+"/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_Classify(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/classify", map[string]string{"query": "¿Qué opinas de Cristiano Ronaldo?"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no_es_messi", body["intent"])

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/classify", map[string]string{"query": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ChatRateLimit(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Database.SQLite.Path = ":memory:"
	cfg.Files.DataDir = t.TempDir()
	cfg.Chat.RateLimitPerSecond = 0.001
	cfg.Chat.RateLimitBurst = 1

	a, err := app.New(context.Background(), cfg, nil, app.Options{SkipDatabase: true})
	require.NoError(t, err)
	defer a.Close()
	srv := httptest.NewServer(NewRouter(a.Logger, a))
	defer srv.Close()

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/chat/sessions", nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/chat/sessions", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	// content routes are not mounted without a database
	resp, err = http.Get(srv.URL + "/tables/articulos")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_Files(t *testing.T) {
	srv, a := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/files", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["files"], 1)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/read-text/notas.txt", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body["content"], "Qatar")

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/read-text/nota.txt", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["suggestions"], "notas.txt")

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/process-pdf", map[string]string{"filename": "../etc/passwd.pdf"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/load-all-documents", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["documents"], 1)

	_, err := a.Index.Rebuild(context.Background(), a.Files)
	require.NoError(t, err)
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/search-documents?q=qatar", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["results"], 1)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/search-documents", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	raw, err := http.Get(srv.URL + "/data/notas.txt")
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusOK, raw.StatusCode)
}
