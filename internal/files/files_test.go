package files

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumiadrian30/techdivulga/internal/config"
	"github.com/rumiadrian30/techdivulga/internal/nlp"
	"github.com/rumiadrian30/techdivulga/internal/observability"
)

type fakeExtractor struct {
	texts map[string]string
}

func (f fakeExtractor) Extract(_ context.Context, path string) (*PDFText, error) {
	text, ok := f.texts[filepath.Base(path)]
	if !ok {
		return nil, errors.New("corrupt pdf")
	}
	return &PDFText{Text: text, NumPages: 2, Info: map[string]string{"title": "Prueba"}}, nil
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func newTestStore(t *testing.T, files map[string]string, ex PDFExtractor) *Store {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, files)
	cfg := config.DefaultConfig().Files
	cfg.DataDir = dir
	return NewStore(cfg, ex, observability.NopLogger())
}

func TestStore_List(t *testing.T) {
	s := newTestStore(t, map[string]string{
		"b.md":      "# titulo",
		"a.txt":     "hola",
		"image.png": "x",
		"doc.PDF":   "%PDF",
	}, nil)
	require.NoError(t, os.Mkdir(filepath.Join(s.Dir(), "sub.txt"), 0o755))

	files, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 3)

	assert.Equal(t, "a.txt", files[0].Name)
	assert.Equal(t, "/data/a.txt", files[0].Path)
	assert.Equal(t, "txt", files[0].Type)
	assert.Equal(t, int64(4), files[0].Size)
	assert.False(t, files[0].LastModified.IsZero())
	assert.Equal(t, "pdf", files[2].Type)
}

func TestStore_List_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	s := NewStore(config.FilesConfig{DataDir: dir}, nil, nil)

	files, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
	assert.DirExists(t, dir)
}

func TestStore_ReadText(t *testing.T) {
	s := newTestStore(t, map[string]string{"notas.md": "Messi ganó 8 Balones de Oro"}, nil)

	doc, err := s.ReadText(context.Background(), "notas.md")
	require.NoError(t, err)
	assert.Equal(t, "notas.md", doc.Filename)
	assert.Equal(t, "Messi ganó 8 Balones de Oro", doc.Content)
}

func TestStore_Resolve_Errors(t *testing.T) {
	s := newTestStore(t, map[string]string{"informe-anual.txt": "x", "notas.md": "y", "run.exe": "MZ"}, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		kind ErrorKind
	}{
		{"", KindValidation},
		{"../secret.txt", KindValidation},
		{`..\secret.txt`, KindValidation},
		{"run.exe", KindValidation},
		{"informe.txt", KindNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.ReadText(ctx, tc.name)
			require.Error(t, err)
			assert.Equal(t, tc.kind, KindOf(err))
		})
	}

	_, err := s.ReadText(ctx, "informe.txt")
	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "File not found", fe.Message)
	assert.Contains(t, fe.Suggestions, "informe-anual.txt")
}

func TestStore_Suggest(t *testing.T) {
	s := newTestStore(t, map[string]string{"messi.pdf": "", "mesas.txt": "", "otro.md": ""}, nil)

	got := s.Suggest(context.Background(), "mesi.pdf")
	assert.Contains(t, got, "messi.pdf")
	assert.NotContains(t, got, "otro.md")
	assert.LessOrEqual(t, len(got), 3)
}

func TestStore_ProcessPDF(t *testing.T) {
	s := newTestStore(t, map[string]string{"guia.pdf": "%PDF", "roto.pdf": "%PDF", "nota.txt": "x"},
		fakeExtractor{texts: map[string]string{"guia.pdf": "Texto de la guía"}})
	ctx := context.Background()

	doc, err := s.ProcessPDF(ctx, "guia.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Texto de la guía", doc.Content)
	assert.Equal(t, 2, doc.NumPages)
	assert.Equal(t, "Prueba", doc.Info["title"])

	_, err = s.ProcessPDF(ctx, "roto.pdf")
	assert.Equal(t, KindExtraction, KindOf(err))

	_, err = s.ProcessPDF(ctx, "nota.txt")
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = s.ProcessPDF(ctx, "falta.pdf")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestStore_LoadAll(t *testing.T) {
	long := strings.Repeat("ñ", 50)
	s := newTestStore(t, map[string]string{
		"a.txt":    long,
		"b.pdf":    "%PDF",
		"c.pdf":    "%PDF",
		"d.json":   `{"k":"v"}`,
		"skip.bin": "x",
	}, fakeExtractor{texts: map[string]string{"b.pdf": "contenido pdf"}})
	s.maxChars = 10

	docs, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 4)

	assert.Equal(t, "a.txt", docs[0].Filename)
	assert.Equal(t, 10, utf8.RuneCountInString(docs[0].Content))
	assert.Equal(t, "contenido ", docs[1].Content)
	assert.Equal(t, PDFPlaceholder("c.pdf")[:10], docs[2].Content[:10])
	assert.Equal(t, "json", docs[3].Type)
	assert.Equal(t, int64(len(long)), docs[0].Size)
}

func TestStore_LoadAll_PDFExtractionFailureUsesPlaceholder(t *testing.T) {
	s := newTestStore(t, map[string]string{"roto.pdf": "esto no es un pdf"}, FitzExtractor{})

	docs, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "[Contenido del PDF roto.pdf - error en extracción]", docs[0].Content)
}

func TestStore_LoadAll_Cancelled(t *testing.T) {
	s := newTestStore(t, map[string]string{"a.txt": "x"}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.LoadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChunkText(t *testing.T) {
	assert.Nil(t, ChunkText("   ", 10, 2))
	assert.Equal(t, []string{"corto"}, ChunkText("corto", 10, 2))
	assert.Equal(t, []string{"uno dos", "tres"}, ChunkText("uno dos tres", 8, 0))
	assert.Equal(t, []string{"abcdefghij", "hijklmnopq", "opqrst"}, ChunkText("abcdefghijklmnopqrst", 10, 3))

	// overlap >= size is ignored rather than looping forever
	assert.Equal(t, []string{"abcde", "fghij"}, ChunkText("abcdefghij", 5, 5))

	for _, c := range ChunkText(strings.Repeat("palabra ", 200), 50, 10) {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 50)
	}
}

func testTokenizer() *nlp.Tokenizer {
	return nlp.NewTokenizer(nlp.Lexicon{
		StopWords: []string{"de", "la", "el", "en"},
		Synonyms:  map[string][]string{"barca": {"barcelona"}},
	})
}

func TestIndex_Search(t *testing.T) {
	x := NewIndex(testTokenizer(), 40, 0)
	stats := x.Build([]Document{
		{Filename: "messi.txt", Content: "Messi ganó ocho balones de oro. Jugó en el Barcelona muchos años."},
		{Filename: "go.md", Content: "Go es un lenguaje de programación con goroutines."},
	})
	assert.Equal(t, 2, stats.Documents)
	assert.GreaterOrEqual(t, stats.Chunks, 3)

	hits := x.Search("balones de oro", 5)
	require.NotEmpty(t, hits)
	assert.Equal(t, "messi.txt", hits[0].Filename)
	assert.Contains(t, hits[0].Text, "balones")

	// synonyms expand the query
	hits = x.Search("barca", 5)
	require.NotEmpty(t, hits)
	assert.Contains(t, hits[0].Text, "Barcelona")

	assert.Empty(t, x.Search("de la", 5))
	assert.Empty(t, x.Search("python", 5))
	assert.Len(t, x.Search("messi goroutines", 1), 1)
}

func TestIndex_Rebuild(t *testing.T) {
	s := newTestStore(t, map[string]string{"a.txt": "tutoriales de docker y kubernetes"}, nil)
	x := NewIndex(testTokenizer(), 1000, 100)

	stats, err := x.Rebuild(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Documents)
	assert.Equal(t, 1, x.Stats().Chunks)
	assert.Len(t, x.Search("kubernetes", 0), 1)
}

func TestReindexer(t *testing.T) {
	s := newTestStore(t, map[string]string{"a.txt": "kubernetes"}, nil)
	x := NewIndex(testTokenizer(), 100, 0)

	_, err := NewReindexer(s, x, "every ten minutes", nil)
	assert.Error(t, err)

	r, err := NewReindexer(s, x, "@every 1h", nil)
	require.NoError(t, err)
	require.NoError(t, r.Start(context.Background()))
	defer r.Stop(context.Background())
	assert.Equal(t, 1, x.Stats().Chunks)

	writeFiles(t, s.Dir(), map[string]string{"b.txt": "docker"})
	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 2, x.Stats().Documents)
}

func TestReindexer_LogsOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.NewLogger(observability.LogConfig{Level: "info", Output: &buf})
	s := newTestStore(t, map[string]string{"a.txt": "kubernetes"}, nil)

	r, err := NewReindexer(s, NewIndex(testTokenizer(), 100, 0), "@every 1h", logger)
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background()))

	assert.Contains(t, buf.String(), `"component":"reindexer"`)
	assert.Contains(t, buf.String(), `"operation":"reindex"`)
	assert.Contains(t, buf.String(), `"documents":1`)
}
