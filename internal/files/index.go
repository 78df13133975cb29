package files

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/rumiadrian30/techdivulga/internal/nlp"
)

// ChunkText splits text into passages of at most size runes, each starting
// overlap runes before the previous one ended. Cuts move back to the last
// whitespace in the second half of a window so words stay whole.
func ChunkText(text string, size, overlap int) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}
	if size <= 0 || len(runes) <= size {
		return []string{string(runes)}
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := min(start+size, len(runes))
		if end < len(runes) {
			for i := end; i > start+size/2; i-- {
				if unicode.IsSpace(runes[i-1]) {
					end = i
					break
				}
			}
		}
		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// Chunk is one indexed passage.
type Chunk struct {
	Filename string
	Index    int
	Text     string
	tokens   []string
}

// Hit is a search result.
type Hit struct {
	Filename string  `json:"filename"`
	Chunk    int     `json:"chunk"`
	Score    float64 `json:"score"`
	Text     string  `json:"text"`
}

// IndexStats describes the current index.
type IndexStats struct {
	Documents int       `json:"documents"`
	Chunks    int       `json:"chunks"`
	BuiltAt   time.Time `json:"built_at"`
}

// Index is an in-memory keyword index over document chunks. Build swaps
// the whole index at once; searches see either the old or the new one.
type Index struct {
	tokenizer *nlp.Tokenizer
	size      int
	overlap   int

	mu      sync.RWMutex
	chunks  []Chunk
	docs    int
	builtAt time.Time
}

// NewIndex creates an empty index.
func NewIndex(tokenizer *nlp.Tokenizer, chunkSize, chunkOverlap int) *Index {
	return &Index{tokenizer: tokenizer, size: chunkSize, overlap: chunkOverlap}
}

// Build replaces the index with the chunks of docs.
func (x *Index) Build(docs []Document) IndexStats {
	var chunks []Chunk
	for _, d := range docs {
		for i, text := range ChunkText(d.Content, x.size, x.overlap) {
			chunks = append(chunks, Chunk{
				Filename: d.Filename,
				Index:    i,
				Text:     text,
				tokens:   x.tokenizer.Tokenize(text),
			})
		}
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.chunks = chunks
	x.docs = len(docs)
	x.builtAt = time.Now().UTC()
	return x.statsLocked()
}

// Rebuild loads every document from store and rebuilds the index.
func (x *Index) Rebuild(ctx context.Context, store *Store) (IndexStats, error) {
	docs, err := store.LoadAll(ctx)
	if err != nil {
		return IndexStats{}, err
	}
	return x.Build(docs), nil
}

// Search ranks chunks by Jaccard similarity between the expanded query
// tokens and the chunk tokens. Chunks sharing no token are left out; ties
// keep document order.
func (x *Index) Search(query string, limit int) []Hit {
	if limit <= 0 {
		limit = 10
	}
	terms := x.tokenizer.ExpandSynonyms(x.tokenizer.Tokenize(query))
	if len(terms) == 0 {
		return []Hit{}
	}

	x.mu.RLock()
	hits := make([]Hit, 0, len(x.chunks))
	for _, c := range x.chunks {
		if score := nlp.Jaccard(terms, c.tokens); score > 0 {
			hits = append(hits, Hit{Filename: c.Filename, Chunk: c.Index, Score: score, Text: c.Text})
		}
	}
	x.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	return hits[:min(limit, len(hits))]
}

// Stats returns the size of the index.
func (x *Index) Stats() IndexStats {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.statsLocked()
}

func (x *Index) statsLocked() IndexStats {
	return IndexStats{Documents: x.docs, Chunks: len(x.chunks), BuiltAt: x.builtAt}
}
