// Package nlp implements the text processing used by the chatbot: Spanish
// normalization and tokenization, synonym expansion, similarity measures,
// rule-based entity extraction and a lexicon sentiment score.
package nlp

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinTokenLength is the shortest token Tokenize keeps.
const MinTokenLength = 3

// Normalize lower-cases text, strips combining diacritical marks
// (U+0300..U+036F after NFD decomposition), turns every character that is
// not an ASCII letter or digit into a space and collapses whitespace.
func Normalize(text string) string {
	stripped, _, err := transform.String(stripMarks(), strings.ToLower(text))
	if err != nil {
		stripped = strings.ToLower(text)
	}

	var b strings.Builder
	b.Grow(len(stripped))
	pendingSpace := false
	for _, r := range stripped {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		default:
			pendingSpace = true
		}
	}
	return b.String()
}

// stripMarks returns a fresh transformer; transformers carry state and are
// not safe to share between goroutines.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r >= 0x0300 && r <= 0x036f
	})))
}

// Lexicon holds the static word tables the tokenizer and scorers consult.
type Lexicon struct {
	StopWords []string
	Synonyms  map[string][]string
	Weights   map[string]float64
}

// Tokenizer splits normalized text into content tokens and enriches them.
// It is immutable after construction and safe for concurrent use.
type Tokenizer struct {
	stopWords map[string]struct{}
	synonyms  map[string][]string
	weights   map[string]float64
}

// NewTokenizer builds a tokenizer from a lexicon. Stop words and weight keys
// are normalized so accented and unaccented spellings behave the same.
func NewTokenizer(lex Lexicon) *Tokenizer {
	t := &Tokenizer{
		stopWords: make(map[string]struct{}, len(lex.StopWords)),
		synonyms:  make(map[string][]string, len(lex.Synonyms)),
		weights:   make(map[string]float64, len(lex.Weights)),
	}
	for _, w := range lex.StopWords {
		t.stopWords[Normalize(w)] = struct{}{}
	}
	for k, v := range lex.Synonyms {
		key := Normalize(k)
		for _, syn := range v {
			t.synonyms[key] = append(t.synonyms[key], Normalize(syn))
		}
	}
	for k, v := range lex.Weights {
		key := Normalize(k)
		if v > t.weights[key] {
			t.weights[key] = v
		}
	}
	return t
}

// Tokenize normalizes text and returns the tokens longer than two
// characters that are not stop words, in input order. It never fails and
// returns an empty (non-nil) slice for empty input.
func (t *Tokenizer) Tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < MinTokenLength {
			continue
		}
		if _, stop := t.stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// IsStopWord reports whether the normalized word is a stop word.
func (t *Tokenizer) IsStopWord(word string) bool {
	_, ok := t.stopWords[Normalize(word)]
	return ok
}

// ExpandSynonyms returns tokens followed by the synonyms of each token,
// de-duplicated and in first-seen order.
func (t *Tokenizer) ExpandSynonyms(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, tok := range tokens {
		add(tok)
	}
	for _, tok := range tokens {
		for _, syn := range t.synonyms[tok] {
			add(syn)
		}
	}
	return out
}

// Weight returns the importance of a token, 1 when it has none configured.
func (t *Tokenizer) Weight(token string) float64 {
	if w, ok := t.weights[token]; ok {
		return w
	}
	return 1
}
