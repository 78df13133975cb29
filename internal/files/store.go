// Package files serves the documents kept in the data directory: listing,
// PDF text extraction, plain-text reads, bulk loading and chunked keyword
// search.
package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/errgroup"

	"github.com/rumiadrian30/techdivulga/internal/config"
	"github.com/rumiadrian30/techdivulga/internal/nlp"
	"github.com/rumiadrian30/techdivulga/internal/observability"
)

// FileInfo describes one file of the data directory.
type FileInfo struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	Type         string    `json:"type"`
	LastModified time.Time `json:"lastModified"`
}

// PDFDocument is the result of extracting a PDF.
type PDFDocument struct {
	Filename string            `json:"filename"`
	Content  string            `json:"content"`
	NumPages int               `json:"numPages"`
	Info     map[string]string `json:"info"`
}

// TextDocument is the content of a text file.
type TextDocument struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Document is a loaded file with its content capped at MaxDocumentChars.
type Document struct {
	Filename   string    `json:"filename"`
	Content    string    `json:"content"`
	Type       string    `json:"type"`
	UploadDate time.Time `json:"uploadDate"`
	Size       int64     `json:"size"`
}

// Store reads documents from a single directory. File names are plain base
// names; anything that could escape the directory is rejected.
type Store struct {
	dir           string
	extensions    map[string]struct{}
	maxChars      int
	maxConcurrent int
	extractor     PDFExtractor
	logger        *observability.Logger
	now           func() time.Time
}

// NewStore creates a store over cfg.DataDir. extractor may be nil, in which
// case PDFs are read with go-fitz.
func NewStore(cfg config.FilesConfig, extractor PDFExtractor, logger *observability.Logger) *Store {
	if extractor == nil {
		extractor = FitzExtractor{}
	}
	if logger == nil {
		logger = observability.NopLogger()
	}
	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = []string{".pdf", ".txt", ".json", ".md"}
	}
	s := &Store{
		dir:           cfg.DataDir,
		extensions:    make(map[string]struct{}, len(exts)),
		maxChars:      cfg.MaxDocumentChars,
		maxConcurrent: max(cfg.MaxConcurrent, 1),
		extractor:     extractor,
		logger:        logger.WithComponent("files"),
		now:           time.Now,
	}
	for _, e := range exts {
		s.extensions[strings.ToLower(e)] = struct{}{}
	}
	return s
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// List returns the supported files sorted by name. A missing directory is
// created and reported as empty.
func (s *Store) List(ctx context.Context) ([]FileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return nil, ioError("create data directory", err)
		}
		return []FileInfo{}, nil
	}
	if err != nil {
		return nil, ioError("read data directory", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !s.supported(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, ioError("stat "+entry.Name(), err)
		}
		files = append(files, FileInfo{
			Name:         entry.Name(),
			Path:         "/data/" + entry.Name(),
			Size:         info.Size(),
			Type:         fileType(entry.Name()),
			LastModified: info.ModTime().UTC(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// ProcessPDF extracts the text of a PDF in the data directory.
func (s *Store) ProcessPDF(ctx context.Context, name string) (*PDFDocument, error) {
	path, err := s.resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	if fileType(name) != "pdf" {
		return nil, validationError(fmt.Sprintf("not a PDF file: %s", name))
	}

	text, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return nil, extractionError("extract "+name, err)
	}
	info := text.Info
	if info == nil {
		info = map[string]string{}
	}
	return &PDFDocument{
		Filename: name,
		Content:  text.Text,
		NumPages: text.NumPages,
		Info:     info,
	}, nil
}

// ReadText returns the content of a file as UTF-8 text.
func (s *Store) ReadText(ctx context.Context, name string) (*TextDocument, error) {
	path, err := s.resolve(ctx, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError("read "+name, err)
	}
	return &TextDocument{Filename: name, Content: string(data)}, nil
}

// LoadAll reads every supported file concurrently and returns them in name
// order. A PDF that cannot be extracted yields a placeholder content instead
// of failing the batch.
func (s *Store) LoadAll(ctx context.Context) ([]Document, error) {
	files, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, f := range files {
		g.Go(func() error {
			content, err := s.content(gctx, f)
			if err != nil {
				return err
			}
			docs[i] = Document{
				Filename:   f.Name,
				Content:    s.truncate(content),
				Type:       f.Type,
				UploadDate: s.now().UTC(),
				Size:       f.Size,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug().Int("documents", len(docs)).Msg("Documents loaded")
	return docs, nil
}

// PDFPlaceholder is the content reported for a PDF whose text could not be
// extracted.
func PDFPlaceholder(name string) string {
	return fmt.Sprintf("[Contenido del PDF %s - error en extracción]", name)
}

func (s *Store) content(ctx context.Context, f FileInfo) (string, error) {
	path := filepath.Join(s.dir, f.Name)
	if f.Type == "pdf" {
		text, err := s.extractor.Extract(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			s.logger.Warn().Err(err).Str("file", f.Name).Msg("PDF extraction failed")
			return PDFPlaceholder(f.Name), nil
		}
		return text.Text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", ioError("read "+f.Name, err)
	}
	return string(data), nil
}

func (s *Store) truncate(content string) string {
	if s.maxChars <= 0 {
		return content
	}
	runes := []rune(content)
	if len(runes) <= s.maxChars {
		return content
	}
	return string(runes[:s.maxChars])
}

// resolve validates name and returns its path. Missing files come back as
// a not-found error carrying suggestions.
func (s *Store) resolve(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", validationError("filename is required")
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", validationError(fmt.Sprintf("invalid filename: %s", name))
	}
	if !s.supported(name) {
		return "", validationError(fmt.Sprintf("unsupported file type: %s", name))
	}

	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &Error{
			Kind:        KindNotFound,
			Message:     "File not found",
			Suggestions: s.Suggest(ctx, name),
		}
	}
	if err != nil {
		return "", ioError("stat "+name, err)
	}
	if info.IsDir() {
		return "", validationError(fmt.Sprintf("not a file: %s", name))
	}
	return path, nil
}

// Suggest returns up to three existing file names close to name: fuzzy
// subsequence matches first, then names within a small edit distance.
func (s *Store) Suggest(ctx context.Context, name string) []string {
	files, err := s.List(ctx)
	if err != nil || len(files) == 0 {
		return nil
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}

	const limit = 3
	seen := map[string]bool{}
	var out []string
	add := func(n string) {
		if !seen[n] && len(out) < limit {
			seen[n] = true
			out = append(out, n)
		}
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	for _, m := range fuzzy.Find(stem, names) {
		add(m.Str)
	}

	type candidate struct {
		name string
		dist int
	}
	var near []candidate
	for _, n := range names {
		d := nlp.EditDistance(strings.ToLower(name), strings.ToLower(n))
		if d <= max(2, len([]rune(name))/4) {
			near = append(near, candidate{n, d})
		}
	}
	sort.SliceStable(near, func(i, j int) bool { return near[i].dist < near[j].dist })
	for _, c := range near {
		add(c.name)
	}
	return out
}

func (s *Store) supported(name string) bool {
	_, ok := s.extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

func fileType(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}
