package nlp

import (
	"fmt"
	"regexp"
	"strings"
)

// EntityCategory names a family of entities the extractor recognises.
type EntityCategory string

// Entity categories.
const (
	EntityPerson     EntityCategory = "person"
	EntityTeam       EntityCategory = "team"
	EntityTournament EntityCategory = "tournament"
	EntitySkill      EntityCategory = "skill"
	EntityYear       EntityCategory = "year"
	EntityNumber     EntityCategory = "number"
	// EntityAward has no detector rules in the default catalog. It is kept so
	// catalogs can declare award bonuses; with no rules the bonus never fires.
	EntityAward EntityCategory = "award"
)

// ParseEntityCategory validates a category name.
func ParseEntityCategory(s string) (EntityCategory, error) {
	switch c := EntityCategory(strings.ToLower(strings.TrimSpace(s))); c {
	case EntityPerson, EntityTeam, EntityTournament, EntitySkill, EntityYear, EntityNumber, EntityAward:
		return c, nil
	default:
		return "", fmt.Errorf("unknown entity category %q", s)
	}
}

// Entities maps a category to the canonical names detected for it.
type Entities map[EntityCategory][]string

// Has reports whether name was detected under category.
func (e Entities) Has(category EntityCategory, name string) bool {
	for _, n := range e[category] {
		if n == name {
			return true
		}
	}
	return false
}

// Any reports whether at least one entity of category was detected.
func (e Entities) Any(category EntityCategory) bool {
	return len(e[category]) > 0
}

func (e Entities) add(category EntityCategory, name string) {
	if !e.Has(category, name) {
		e[category] = append(e[category], name)
	}
}

// EntityRule maps a pattern to a canonical entity name.
type EntityRule struct {
	Category EntityCategory
	Name     string
	Pattern  string
}

type compiledRule struct {
	category EntityCategory
	name     string
	re       *regexp.Regexp
}

var (
	yearPattern   = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	numberPattern = regexp.MustCompile(`\b\d+\b`)
)

// EntityExtractor detects known entities with one regex per entity. Rules
// are evaluated in order over the lower-cased text.
type EntityExtractor struct {
	rules []compiledRule
}

// NewEntityExtractor compiles the rules.
func NewEntityExtractor(rules []EntityRule) (*EntityExtractor, error) {
	ex := &EntityExtractor{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile entity %q: %w", r.Name, err)
		}
		ex.rules = append(ex.rules, compiledRule{category: r.Category, name: r.Name, re: re})
	}
	return ex, nil
}

// Extract returns the detected entities. Every known entity appears at most
// once under its canonical name. Years and numbers are the raw digit runs;
// no range checking is applied, so an id like 2015 reads as a year.
func (x *EntityExtractor) Extract(text string) Entities {
	lower := strings.ToLower(text)
	out := Entities{}

	for _, y := range yearPattern.FindAllString(lower, -1) {
		out.add(EntityYear, y)
	}
	for _, n := range numberPattern.FindAllString(lower, -1) {
		out.add(EntityNumber, n)
	}
	for _, r := range x.rules {
		if r.re.MatchString(lower) {
			out.add(r.category, r.name)
		}
	}
	return out
}
