package nlp

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenizer() *Tokenizer {
	return NewTokenizer(Lexicon{
		StopWords: []string{"el", "la", "de", "que", "con", "para", "después", "son"},
		Synonyms: map[string][]string{
			"messi":     {"leo", "lionel", "pulga"},
			"barcelona": {"barca", "fcb"},
		},
		Weights: map[string]float64{"messi": 10, "balón": 9, "balon": 9, "oro": 9, "goles": 8},
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"¿Cuántos Balones de Oro?", "cuantos balones de oro"},
		{"  Selección   Argentina!! ", "seleccion argentina"},
		{"Barça vs. PSG", "barca vs psg"},
		{"año 2022; niño", "ano 2022 nino"},
		{"snake_case", "snake case"},
		{"", ""},
		{"¡¿?!", ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestTokenizer_Tokenize(t *testing.T) {
	tok := testTokenizer()

	assert.Equal(t, []string{"cuantos", "balones", "oro", "tiene"}, tok.Tokenize("¿Cuántos balones de oro tiene?"))
	assert.Equal(t, []string{"goles", "barcelona"}, tok.Tokenize("goles con el Barcelona"))
	// accented stop words match their normalized tokens
	assert.Empty(t, tok.Tokenize("después son de"))

	empty := tok.Tokenize("")
	require.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTokenizer_Tokenize_OnlyLowercaseAlnumContentTokens(t *testing.T) {
	tok := testTokenizer()
	valid := regexp.MustCompile(`^[a-z0-9]{3,}$`)

	inputs := []string{
		"¡Hola, Messi! ¿Qué tal?",
		"ÉL JUGÓ 778 PARTIDOS CON EL FC BARCELONA",
		"émoji ⚽🏆 y símbolos #@$%",
		"tab\tnew\nline",
		"a b c de la que",
	}
	for _, in := range inputs {
		for _, token := range tok.Tokenize(in) {
			assert.Regexp(t, valid, token, "input %q", in)
			assert.False(t, tok.IsStopWord(token), "stop word %q leaked", token)
		}
	}
}

func TestTokenizer_ExpandSynonyms(t *testing.T) {
	tok := testTokenizer()

	got := tok.ExpandSynonyms([]string{"messi", "barcelona", "leo"})
	assert.Equal(t, []string{"messi", "barcelona", "leo", "lionel", "pulga", "barca", "fcb"}, got)
	assert.Empty(t, tok.ExpandSynonyms(nil))
}

func TestTokenizer_Weight(t *testing.T) {
	tok := testTokenizer()
	assert.Equal(t, 9.0, tok.Weight("balon"))
	assert.Equal(t, 10.0, tok.Weight("messi"))
	assert.Equal(t, 1.0, tok.Weight("unknown"))
}

func TestJaccard(t *testing.T) {
	a := []string{"messi", "goles", "barcelona"}
	assert.Equal(t, 1.0, Jaccard(a, a))
	assert.Equal(t, 1.0, Jaccard([]string{"x", "x"}, []string{"x"}))
	assert.Equal(t, 0.0, Jaccard(a, []string{"psg", "miami"}))
	assert.Equal(t, 0.0, Jaccard(nil, nil))
	assert.InDelta(t, 0.5, Jaccard([]string{"a", "b"}, []string{"b", "c", "a", "d"}), 1e-9)
	assert.Equal(t, Jaccard([]string{"a", "b"}, []string{"b", "c"}), Jaccard([]string{"b", "c"}, []string{"a", "b"}))
}

func TestTokenizer_WeightedCosine(t *testing.T) {
	tok := testTokenizer()

	assert.InDelta(t, 1.0, tok.WeightedCosine([]string{"balon", "oro"}, []string{"oro", "balon"}), 1e-9)
	assert.Equal(t, 0.0, tok.WeightedCosine([]string{"balon"}, []string{"goles"}))
	assert.Equal(t, 0.0, tok.WeightedCosine(nil, []string{"goles"}))

	// heavy shared token dominates a light unshared one
	sim := tok.WeightedCosine([]string{"messi", "tiene"}, []string{"messi"})
	assert.InDelta(t, 10/(10.04987562112089), sim, 1e-9)

	ab := tok.WeightedCosine([]string{"messi", "goles", "tiene"}, []string{"goles", "oro"})
	ba := tok.WeightedCosine([]string{"goles", "oro"}, []string{"messi", "goles", "tiene"})
	assert.InDelta(t, ab, ba, 1e-12)
	assert.True(t, ab > 0 && ab < 1)
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"messi", "", 5},
		{"", "leo", 3},
		{"messi", "messi", 0},
		{"mesi", "messi", 1},
		{"kitten", "sitting", 3},
		{"balón", "balon", 1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, EditDistance(tc.a, tc.b), "%q -> %q", tc.a, tc.b)
		assert.Equal(t, tc.want, EditDistance(tc.b, tc.a))
	}
}

func TestEntityExtractor_Extract(t *testing.T) {
	ex, err := NewEntityExtractor([]EntityRule{
		{Category: EntityPerson, Name: "Lionel Messi", Pattern: `messi|lionel|leo|pulga`},
		{Category: EntityPerson, Name: "Cristiano Ronaldo", Pattern: `cristiano|ronaldo|cr7`},
		{Category: EntityTeam, Name: "PSG", Pattern: `\bpsg\b|paris saint germain`},
		{Category: EntityTeam, Name: "Barcelona", Pattern: `barcelona|barça|barsa|fcb`},
		{Category: EntityTournament, Name: "Champions League", Pattern: `champions league|champions`},
		{Category: EntitySkill, Name: "tiro libre", Pattern: `tiro libre`},
	})
	require.NoError(t, err)

	got := ex.Extract("Leo Messi vs CR7 en la Champions 2009 con el Barça, 3 goles")
	assert.Equal(t, []string{"Lionel Messi", "Cristiano Ronaldo"}, got[EntityPerson])
	assert.Equal(t, []string{"Barcelona"}, got[EntityTeam])
	assert.Equal(t, []string{"Champions League"}, got[EntityTournament])
	assert.Equal(t, []string{"2009"}, got[EntityYear])
	assert.Equal(t, []string{"2009", "3"}, got[EntityNumber])
	assert.True(t, got.Has(EntityPerson, "Lionel Messi"))
	assert.False(t, got.Any(EntitySkill))

	// word boundary keeps psg out of longer words
	assert.False(t, ex.Extract("psgx").Any(EntityTeam))
	assert.True(t, ex.Extract("goles en el PSG").Has(EntityTeam, "PSG"))

	// ids look like years: documented behaviour
	assert.Equal(t, []string{"2015"}, ex.Extract("pedido 2015")[EntityYear])
}

func TestParseEntityCategory(t *testing.T) {
	c, err := ParseEntityCategory(" Team ")
	require.NoError(t, err)
	assert.Equal(t, EntityTeam, c)

	_, err = ParseEntityCategory("planet")
	assert.Error(t, err)
}

func TestNewEntityExtractor_InvalidPattern(t *testing.T) {
	_, err := NewEntityExtractor([]EntityRule{{Category: EntityTeam, Name: "bad", Pattern: "("}})
	assert.ErrorContains(t, err, "bad")
}

func TestSentimentAnalyzer_Analyze(t *testing.T) {
	s := NewSentimentAnalyzer(testTokenizer(), []string{"mejor", "genio", "increíble"}, []string{"peor", "fraude"})

	assert.Equal(t, SentimentPositive, s.Analyze("Messi es el mejor, un genio"))
	assert.Equal(t, SentimentPositive, s.Analyze("increible"))
	assert.Equal(t, SentimentNegative, s.Analyze("el peor fraude"))
	assert.Equal(t, SentimentNeutral, s.Analyze("el mejor o el peor"))
	assert.Equal(t, SentimentNeutral, s.Analyze(""))
}
