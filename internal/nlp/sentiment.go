package nlp

// Sentiment is the polarity of a query.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// SentimentAnalyzer counts positive and negative lexicon hits.
type SentimentAnalyzer struct {
	tokenizer *Tokenizer
	positive  map[string]struct{}
	negative  map[string]struct{}
}

// NewSentimentAnalyzer builds an analyzer over the given word lists.
func NewSentimentAnalyzer(t *Tokenizer, positive, negative []string) *SentimentAnalyzer {
	s := &SentimentAnalyzer{
		tokenizer: t,
		positive:  make(map[string]struct{}, len(positive)),
		negative:  make(map[string]struct{}, len(negative)),
	}
	for _, w := range positive {
		s.positive[Normalize(w)] = struct{}{}
	}
	for _, w := range negative {
		s.negative[Normalize(w)] = struct{}{}
	}
	return s
}

// Analyze returns positive when positive hits outnumber negative ones,
// negative for the reverse and neutral otherwise.
func (s *SentimentAnalyzer) Analyze(text string) Sentiment {
	score := 0
	for _, tok := range s.tokenizer.Tokenize(text) {
		if _, ok := s.positive[tok]; ok {
			score++
		}
		if _, ok := s.negative[tok]; ok {
			score--
		}
	}
	switch {
	case score > 0:
		return SentimentPositive
	case score < 0:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
