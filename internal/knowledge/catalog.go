package knowledge

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rumiadrian30/techdivulga/internal/nlp"
)

// Reserved intent names produced by the classifier rather than the catalog.
const (
	IntentUnknown  = "desconocida"
	IntentNotMessi = "no_es_messi"
)

// Intent is one entry of the catalog.
type Intent struct {
	Name        string
	Patterns    []*regexp.Regexp
	Keywords    []string // normalized
	Examples    []string
	Threshold   float64
	EntityBonus []nlp.EntityCategory
}

// SpecificRule maps a hand-written pattern straight to an intent.
type SpecificRule struct {
	Intent  string
	Pattern *regexp.Regexp
}

// Catalog is the compiled intent catalog plus the lexicon it is scored with.
type Catalog struct {
	Intents            []Intent
	Specific           []SpecificRule
	SpecificConfidence float64
	DefaultThreshold   float64
	OffTopicTerms      []string
	SubjectAliases     []string

	lexicon     nlp.Lexicon
	entityRules []nlp.EntityRule
	positive    []string
	negative    []string
	byName      map[string]int
}

type catalogFile struct {
	Lexicon struct {
		StopWords []string            `yaml:"stop_words"`
		Weights   map[string]float64  `yaml:"weights"`
		Synonyms  map[string][]string `yaml:"synonyms"`
	} `yaml:"lexicon"`
	Sentiment struct {
		Positive []string `yaml:"positive"`
		Negative []string `yaml:"negative"`
	} `yaml:"sentiment"`
	Entities []struct {
		Category string `yaml:"category"`
		Name     string `yaml:"name"`
		Pattern  string `yaml:"pattern"`
	} `yaml:"entities"`
	OffTopic struct {
		Terms   []string `yaml:"terms"`
		Aliases []string `yaml:"aliases"`
	} `yaml:"off_topic"`
	Specific struct {
		Confidence float64 `yaml:"confidence"`
		Rules      []struct {
			Intent  string `yaml:"intent"`
			Pattern string `yaml:"pattern"`
		} `yaml:"rules"`
	} `yaml:"specific"`
	DefaultThreshold float64 `yaml:"default_threshold"`
	Intents          []struct {
		Name        string   `yaml:"name"`
		Threshold   float64  `yaml:"threshold"`
		EntityBonus []string `yaml:"entity_bonus"`
		Patterns    []string `yaml:"patterns"`
		Keywords    []string `yaml:"keywords"`
		Examples    []string `yaml:"examples"`
	} `yaml:"intents"`
}

// LoadCatalog decodes and compiles the embedded intent catalog.
func LoadCatalog() (*Catalog, error) {
	data, err := assets.ReadFile("data/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and compiles a catalog document. Patterns are
// compiled case-insensitive. Keywords and off-topic terms are normalized so
// they compare against normalized query text.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		SpecificConfidence: f.Specific.Confidence,
		DefaultThreshold:   f.DefaultThreshold,
		OffTopicTerms:      normalizeAll(f.OffTopic.Terms),
		SubjectAliases:     normalizeAll(f.OffTopic.Aliases),
		lexicon: nlp.Lexicon{
			StopWords: f.Lexicon.StopWords,
			Synonyms:  f.Lexicon.Synonyms,
			Weights:   f.Lexicon.Weights,
		},
		positive: f.Sentiment.Positive,
		negative: f.Sentiment.Negative,
		byName:   make(map[string]int, len(f.Intents)),
	}
	if c.DefaultThreshold <= 0 {
		c.DefaultThreshold = 0.5
	}
	if c.SpecificConfidence <= 0 {
		c.SpecificConfidence = 0.95
	}

	for _, e := range f.Entities {
		cat, err := nlp.ParseEntityCategory(e.Category)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", e.Name, err)
		}
		c.entityRules = append(c.entityRules, nlp.EntityRule{Category: cat, Name: e.Name, Pattern: e.Pattern})
	}

	for _, in := range f.Intents {
		if in.Name == "" {
			return nil, fmt.Errorf("intent without name")
		}
		if in.Name == IntentUnknown || in.Name == IntentNotMessi {
			return nil, fmt.Errorf("intent %q is reserved", in.Name)
		}
		if _, dup := c.byName[in.Name]; dup {
			return nil, fmt.Errorf("duplicate intent %q", in.Name)
		}

		intent := Intent{
			Name:      in.Name,
			Keywords:  normalizeAll(in.Keywords),
			Examples:  in.Examples,
			Threshold: in.Threshold,
		}
		if intent.Threshold <= 0 {
			intent.Threshold = c.DefaultThreshold
		}
		for _, p := range in.Patterns {
			re, err := compilePattern(p)
			if err != nil {
				return nil, fmt.Errorf("intent %q: %w", in.Name, err)
			}
			intent.Patterns = append(intent.Patterns, re)
		}
		for _, b := range in.EntityBonus {
			cat, err := nlp.ParseEntityCategory(b)
			if err != nil {
				return nil, fmt.Errorf("intent %q: %w", in.Name, err)
			}
			intent.EntityBonus = append(intent.EntityBonus, cat)
		}

		c.byName[in.Name] = len(c.Intents)
		c.Intents = append(c.Intents, intent)
	}

	for _, r := range f.Specific.Rules {
		if _, ok := c.byName[r.Intent]; !ok {
			return nil, fmt.Errorf("specific rule targets unknown intent %q", r.Intent)
		}
		re, err := compilePattern(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("specific rule for %q: %w", r.Intent, err)
		}
		c.Specific = append(c.Specific, SpecificRule{Intent: r.Intent, Pattern: re})
	}

	return c, nil
}

// Intent returns the catalog entry for name.
func (c *Catalog) Intent(name string) (Intent, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Intent{}, false
	}
	return c.Intents[i], true
}

// Names lists the catalog intents in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Intents))
	for i, in := range c.Intents {
		names[i] = in.Name
	}
	return names
}

// Tokenizer builds a tokenizer over the catalog lexicon.
func (c *Catalog) Tokenizer() *nlp.Tokenizer {
	return nlp.NewTokenizer(c.lexicon)
}

// EntityExtractor builds an extractor over the catalog entity rules.
func (c *Catalog) EntityExtractor() (*nlp.EntityExtractor, error) {
	return nlp.NewEntityExtractor(c.entityRules)
}

// SentimentAnalyzer builds a sentiment analyzer over the catalog word lists.
func (c *Catalog) SentimentAnalyzer(t *nlp.Tokenizer) *nlp.SentimentAnalyzer {
	return nlp.NewSentimentAnalyzer(t, c.positive, c.negative)
}

func compilePattern(p string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + p)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", p, err)
	}
	return re, nil
}

func normalizeAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if n := strings.TrimSpace(nlp.Normalize(w)); n != "" {
			out = append(out, n)
		}
	}
	return out
}
