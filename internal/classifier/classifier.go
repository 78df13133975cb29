// Package classifier maps a free-text question to an intent of the catalog
// with a confidence score.
package classifier

import (
	"sort"
	"strings"

	"github.com/rumiadrian30/techdivulga/internal/knowledge"
	"github.com/rumiadrian30/techdivulga/internal/nlp"
)

// Blend weights of the per-intent score.
const (
	PatternWeight = 0.4
	KeywordWeight = 0.3
	ExampleWeight = 0.3
	EntityBonus   = 0.1
)

// Score is the breakdown of one intent's score for a query.
type Score struct {
	Intent     string  `json:"intent"`
	Score      float64 `json:"score"`
	Threshold  float64 `json:"threshold"`
	PatternHit bool    `json:"pattern_hit"`
	Keyword    float64 `json:"keyword"`
	Example    float64 `json:"example"`
	Bonus      float64 `json:"bonus"`
}

// Result is the outcome of classifying one query. Every call returns a
// fresh value.
type Result struct {
	Query      string        `json:"query"`
	Intent     string        `json:"intent"`
	Confidence float64       `json:"confidence"`
	Specific   bool          `json:"specific"`
	Normalized string        `json:"normalized"`
	Tokens     []string      `json:"tokens"`
	Entities   nlp.Entities  `json:"entities"`
	Sentiment  nlp.Sentiment `json:"sentiment"`
	// Scores holds the whole ranking when Intent is unknown and the best
	// TopScores entries otherwise. Empty for short-circuited results.
	Scores []Score `json:"scores,omitempty"`
}

// Config holds classifier configuration.
type Config struct {
	// ThresholdOverride replaces every intent threshold when > 0.
	ThresholdOverride float64
	// TopScores is how many ranked scores a recognised result carries.
	TopScores int
}

// Classifier scores queries against an intent catalog. It holds only
// immutable state and is safe for concurrent use.
type Classifier struct {
	catalog   *knowledge.Catalog
	tokenizer *nlp.Tokenizer
	extractor *nlp.EntityExtractor
	sentiment *nlp.SentimentAnalyzer
	config    Config

	// tokenized catalog examples, indexed like catalog.Intents
	examples [][][]string
}

// New creates a classifier over the catalog.
func New(catalog *knowledge.Catalog, cfg Config) (*Classifier, error) {
	if cfg.TopScores <= 0 {
		cfg.TopScores = 3
	}

	extractor, err := catalog.EntityExtractor()
	if err != nil {
		return nil, err
	}
	tokenizer := catalog.Tokenizer()

	c := &Classifier{
		catalog:   catalog,
		tokenizer: tokenizer,
		extractor: extractor,
		sentiment: catalog.SentimentAnalyzer(tokenizer),
		config:    cfg,
		examples:  make([][][]string, len(catalog.Intents)),
	}
	for i, in := range catalog.Intents {
		for _, ex := range in.Examples {
			c.examples[i] = append(c.examples[i], tokenizer.Tokenize(ex))
		}
	}
	return c, nil
}

// Tokenizer returns the tokenizer the classifier scores with.
func (c *Classifier) Tokenizer() *nlp.Tokenizer {
	return c.tokenizer
}

// Catalog returns the catalog the classifier scores against.
func (c *Classifier) Catalog() *knowledge.Catalog {
	return c.catalog
}

// Classify determines the intent and confidence for a query. It never fails:
// queries that match nothing well enough come back as the unknown intent.
func (c *Classifier) Classify(query string) Result {
	lower := strings.ToLower(strings.TrimSpace(query))
	normalized := nlp.Normalize(query)
	tokens := c.tokenizer.Tokenize(query)

	res := Result{
		Query:      query,
		Normalized: normalized,
		Tokens:     tokens,
		Entities:   c.extractor.Extract(query),
		Sentiment:  c.sentiment.Analyze(query),
	}

	// Other players and unrelated topics are refused outright unless the
	// query also names Messi.
	if c.offTopic(normalized) {
		res.Intent = knowledge.IntentNotMessi
		res.Confidence = 1.0
		return res
	}

	for _, rule := range c.catalog.Specific {
		if matches(rule.Pattern.MatchString, lower, normalized) {
			res.Intent = rule.Intent
			res.Confidence = c.catalog.SpecificConfidence
			res.Specific = true
			return res
		}
	}

	scores := c.score(lower, normalized, tokens, res.Entities)
	if len(scores) == 0 {
		res.Intent = knowledge.IntentUnknown
		return res
	}
	best := scores[0]

	if best.Score < best.Threshold {
		res.Intent = knowledge.IntentUnknown
		res.Confidence = best.Score
		res.Scores = scores
		return res
	}

	res.Intent = best.Intent
	res.Confidence = best.Score
	res.Scores = scores[:min(c.config.TopScores, len(scores))]
	return res
}

// Score returns the full ranking of catalog intents for a query, skipping
// the off-topic and specific-pattern short-circuits.
func (c *Classifier) Score(query string) []Score {
	return c.score(
		strings.ToLower(strings.TrimSpace(query)),
		nlp.Normalize(query),
		c.tokenizer.Tokenize(query),
		c.extractor.Extract(query),
	)
}

func (c *Classifier) score(lower, normalized string, tokens []string, ents nlp.Entities) []Score {
	expanded := c.tokenizer.ExpandSynonyms(tokens)
	scores := make([]Score, 0, len(c.catalog.Intents))

	for i, in := range c.catalog.Intents {
		s := Score{Intent: in.Name, Threshold: c.threshold(in)}

		for _, re := range in.Patterns {
			if matches(re.MatchString, lower, normalized) {
				s.PatternHit = true
				break
			}
		}

		s.Keyword = nlp.Jaccard(expanded, in.Keywords)

		for _, ex := range c.examples[i] {
			if sim := c.tokenizer.WeightedCosine(tokens, ex); sim > s.Example {
				s.Example = sim
			}
		}

		for _, cat := range in.EntityBonus {
			if ents.Any(cat) {
				s.Bonus = EntityBonus
				break
			}
		}

		if s.PatternHit {
			s.Score = PatternWeight
		}
		s.Score += KeywordWeight*s.Keyword + ExampleWeight*s.Example + s.Bonus
		scores = append(scores, s)
	}

	// stable: equal scores keep catalog order
	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].Score > scores[b].Score
	})
	return scores
}

func (c *Classifier) threshold(in knowledge.Intent) float64 {
	if c.config.ThresholdOverride > 0 {
		return c.config.ThresholdOverride
	}
	return in.Threshold
}

func (c *Classifier) offTopic(normalized string) bool {
	hit := false
	for _, term := range c.catalog.OffTopicTerms {
		if strings.Contains(normalized, term) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	for _, alias := range c.catalog.SubjectAliases {
		if strings.Contains(normalized, alias) {
			return false
		}
	}
	return true
}

// matches tests the lower-cased raw query and its normalized form, so that
// accented and unaccented spellings of a pattern both hit.
func matches(match func(string) bool, lower, normalized string) bool {
	return match(lower) || (normalized != lower && match(normalized))
}
