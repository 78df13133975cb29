package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumiadrian30/techdivulga/internal/nlp"
)

func TestLoadBase(t *testing.T) {
	b, err := LoadBase()
	require.NoError(t, err)

	assert.Equal(t, "Lionel Andrés Messi Cuccittini", b.Entidad.NombreCompleto)
	assert.Equal(t, 1987, b.BirthYear())
	assert.Equal(t, 8, b.Premios.BalonesOro.Cantidad)
	assert.Len(t, b.Premios.BalonesOro.Detalle, 8)
	assert.Equal(t, 672, b.Carrera.Barcelona.Estadisticas.Goles)
	assert.Equal(t, []int{2006, 2009, 2011, 2015}, b.Carrera.Barcelona.Titulos.ChampionsLeague.Anios)
	assert.Len(t, b.Carrera.PSG.Temporadas, 2)
	assert.Equal(t, "2021-22", b.Carrera.PSG.Temporadas[0].Temporada)
	assert.True(t, b.Carrera.InterMiami.LeaguesCup.MVP)
	assert.Len(t, b.Carrera.SeleccionArgentina.Records, 8)
	assert.NotEmpty(t, b.Carrera.SeleccionArgentina.MomentosHistoricos)
	assert.Equal(t, "10/10", b.Habilidades.Tecnicas.Regate.Nivel)
	assert.Len(t, b.VidaPersonal.Hijos, 3)
	assert.Len(t, b.Curiosidades, 20)
}

func TestParseBase_MissingProfile(t *testing.T) {
	_, err := ParseBase([]byte("curiosidades: [a]"))
	assert.Error(t, err)

	_, err = ParseBase([]byte("entidad: ["))
	assert.Error(t, err)
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	names := c.Names()
	require.Len(t, names, 23)
	assert.Equal(t, "biografia_general", names[0])
	assert.Equal(t, "evolucion_temporal", names[22])
	assert.NotContains(t, names, IntentUnknown)
	assert.NotContains(t, names, IntentNotMessi)

	bal, ok := c.Intent("balones_oro")
	require.True(t, ok)
	assert.Equal(t, 0.8, bal.Threshold)
	assert.Contains(t, bal.EntityBonus, nlp.EntityAward)
	assert.True(t, bal.Patterns[0].MatchString("¿CUÁNTOS balones de oro?"))

	_, ok = c.Intent("nope")
	assert.False(t, ok)

	assert.Equal(t, 0.95, c.SpecificConfidence)
	assert.Contains(t, c.OffTopicTerms, "dolar")
	assert.Contains(t, c.SubjectAliases, "messi")
}

func TestCatalog_IntentsAreComplete(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	for _, in := range c.Intents {
		assert.NotEmpty(t, in.Patterns, in.Name)
		assert.NotEmpty(t, in.Keywords, in.Name)
		assert.NotEmpty(t, in.Examples, in.Name)
		assert.Greater(t, in.Threshold, 0.0, in.Name)
		assert.LessOrEqual(t, in.Threshold, 1.0, in.Name)
		for _, k := range in.Keywords {
			assert.Equal(t, nlp.Normalize(k), k, "keyword %q of %s is not normalized", k, in.Name)
		}
	}
}

func TestCatalog_BuildsNLPComponents(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	tok := c.Tokenizer()
	assert.Equal(t, []string{"cuantos", "balones", "oro", "tiene"}, tok.Tokenize("cuántos balones de oro tiene"))
	assert.Equal(t, 10.0, tok.Weight("messi"))
	// accented weight keys are reachable through normalized tokens
	assert.Equal(t, 8.0, tok.Weight("anos"))
	assert.Contains(t, tok.ExpandSynonyms([]string{"barcelona"}), "barca")

	ex, err := c.EntityExtractor()
	require.NoError(t, err)
	ents := ex.Extract("Messi vs Cristiano en la Champions con el Barça")
	assert.True(t, ents.Has(nlp.EntityPerson, "Lionel Messi"))
	assert.True(t, ents.Has(nlp.EntityPerson, "Cristiano Ronaldo"))
	assert.True(t, ents.Has(nlp.EntityTeam, "Barcelona"))
	assert.True(t, ents.Has(nlp.EntityTournament, "Champions League"))
	assert.False(t, ex.Extract("ronaldinho").Has(nlp.EntityPerson, "Cristiano Ronaldo"))

	s := c.SentimentAnalyzer(tok)
	assert.Equal(t, nlp.SentimentPositive, s.Analyze("Messi es un genio increíble"))
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "intents: ["},
		{"reserved name", "intents: [{name: desconocida, patterns: [x]}]"},
		{"duplicate", "intents: [{name: a}, {name: a}]"},
		{"bad pattern", "intents: [{name: a, patterns: ['(']}]"},
		{"bad bonus", "intents: [{name: a, entity_bonus: [planet]}]"},
		{"unknown specific target", "specific: {rules: [{intent: zzz, pattern: x}]}"},
		{"bad entity category", "entities: [{category: planet, name: x, pattern: x}]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestParseCatalog_Defaults(t *testing.T) {
	c, err := ParseCatalog([]byte("intents: [{name: a, keywords: ['Récord']}]"))
	require.NoError(t, err)

	a, _ := c.Intent("a")
	assert.Equal(t, 0.5, a.Threshold)
	assert.Equal(t, []string{"record"}, a.Keywords)
	assert.Equal(t, 0.95, c.SpecificConfidence)
}
