// Package response turns a classification result into an answer drawn from
// the knowledge base. Generators return structured data; renderers format
// it as plain text, Markdown, HTML or speakable voice text.
package response

import (
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/rumiadrian30/techdivulga/internal/classifier"
	"github.com/rumiadrian30/techdivulga/internal/knowledge"
)

// Block is one section of a response.
type Block struct {
	Heading string   `json:"heading,omitempty"`
	Text    string   `json:"text,omitempty"`
	Items   []string `json:"items,omitempty"`
	Ordered bool     `json:"ordered,omitempty"`
}

// Response is a generated answer before rendering.
type Response struct {
	Intent  string  `json:"intent"`
	Title   string  `json:"title,omitempty"`
	Intro   string  `json:"intro,omitempty"`
	Blocks  []Block `json:"blocks,omitempty"`
	Closing string  `json:"closing,omitempty"`
}

// IsEmpty reports whether the response carries no text at all.
func (r Response) IsEmpty() bool {
	return r.Title == "" && r.Intro == "" && r.Closing == "" && len(r.Blocks) == 0
}

type templateFunc func(g *Generator, res classifier.Result, query string) Response

// Generator maps intents to response templates. The dispatch table is total:
// intents without a template fall back to the default help.
type Generator struct {
	kb        *knowledge.Base
	now       func() time.Time
	templates map[string]templateFunc

	mu   sync.Mutex
	intn func(n int) int
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the clock used for ages.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithRand sets the random source used to pick greeting variants.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		g.intn = r.IntN
	}
}

// NewGenerator creates a generator over the knowledge base.
func NewGenerator(kb *knowledge.Base, opts ...Option) *Generator {
	g := &Generator{
		kb:   kb,
		now:  time.Now,
		intn: rand.IntN,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.templates = map[string]templateFunc{
		knowledge.IntentNotMessi:     (*Generator).notMessi,
		knowledge.IntentUnknown:      (*Generator).unknown,
		"saludo":                     (*Generator).greeting,
		"despedida":                  (*Generator).farewell,
		"agradecimiento":             (*Generator).thanks,
		"biografia_general":          (*Generator).biografia,
		"edad_nacimiento":            (*Generator).edad,
		"balones_oro":                (*Generator).balonesOro,
		"equipo_actual":              (*Generator).equipoActual,
		"estadisticas_generales":     (*Generator).estadisticasGenerales,
		"barcelona":                  (*Generator).barcelona,
		"psg":                        (*Generator).psg,
		"miami":                      (*Generator).miami,
		"argentina":                  (*Generator).argentina,
		"premios_generales":          (*Generator).premios,
		"titulos":                    (*Generator).titulos,
		"habilidades":                (*Generator).habilidades,
		"comparaciones":              (*Generator).comparaciones,
		"vida_personal":              (*Generator).vidaPersonal,
		"records":                    (*Generator).records,
		"detalles_especificos_messi": (*Generator).detallesEspecificos,
		"estadisticas_por_torneo":    (*Generator).estadisticasPorTorneo,
		"momentos_historicos":        (*Generator).momentosHistoricos,
		"comparaciones_detalladas":   (*Generator).comparacionesDetalladas,
		"evolucion_temporal":         (*Generator).evolucionTemporal,
	}
	return g
}

// Generate builds the response for a classification result. query is the
// text the user typed; some fallbacks look at it directly.
func (g *Generator) Generate(res classifier.Result, query string) Response {
	tmpl, ok := g.templates[res.Intent]
	if !ok {
		tmpl = (*Generator).unknown
	}
	out := tmpl(g, res, query)
	out.Intent = res.Intent
	return out
}

// Intents lists the intents with a dedicated template.
func (g *Generator) Intents() []string {
	names := make([]string, 0, len(g.templates))
	for name := range g.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *Generator) pick(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.intn(n)
}

func (g *Generator) yearsSince(year int) int {
	return g.now().Year() - year
}
