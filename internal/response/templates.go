package response

import (
	"fmt"
	"strings"

	"github.com/rumiadrian30/techdivulga/internal/classifier"
	"github.com/rumiadrian30/techdivulga/internal/format"
	"github.com/rumiadrian30/techdivulga/internal/knowledge"
	"github.com/rumiadrian30/techdivulga/internal/nlp"
)

func list(heading string, items ...string) Block {
	return Block{Heading: heading, Items: items}
}

func text(heading, body string) Block {
	return Block{Heading: heading, Text: body}
}

func first(items []string, n int) []string {
	return items[:min(n, len(items))]
}

func moments(ms []knowledge.Moment) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, fmt.Sprintf("%s: %s. %s", m.Titulo, m.Descripcion, m.Importancia))
	}
	return out
}

func (g *Generator) notMessi(classifier.Result, string) Response {
	return Response{
		Intro: "Soy un asistente especializado exclusivamente en Lionel Messi.",
		Blocks: []Block{list("Puedo ayudarte con",
			"Biografía y trayectoria deportiva",
			"Estadísticas detalladas por equipo",
			"Premios y reconocimientos",
			"Récords y logros históricos",
			"Vida personal y familia",
			"Comparaciones con otros jugadores",
		)},
		Closing: "¿Qué te gustaría saber sobre Leo Messi?",
	}
}

var greetings = []Response{
	{
		Intro:   "Hola, soy tu asistente especializado en Lionel Messi.",
		Blocks:  []Block{{Text: "Puedo responder cualquier pregunta sobre su carrera, estadísticas, premios, récords o vida personal."}},
		Closing: "¿Qué te gustaría saber?",
	},
	{
		Intro:   "Saludos. Soy tu asistente experto en Lionel Messi.",
		Blocks:  []Block{{Text: "Pregúntame sobre su vida, carrera, estadísticas o cualquier curiosidad."}},
		Closing: "¿En qué puedo ayudarte hoy?",
	},
	{
		Intro:   "Hola. Tengo información completa y actualizada sobre Lionel Messi.",
		Closing: "¿Qué quieres descubrir sobre el mejor jugador de todos los tiempos?",
	},
}

// GreetingVariants is the number of greeting texts picked from at random.
var GreetingVariants = len(greetings)

func (g *Generator) greeting(classifier.Result, string) Response {
	return greetings[g.pick(len(greetings))]
}

func (g *Generator) farewell(classifier.Result, string) Response {
	return Response{
		Intro:   "Hasta pronto. Espero haber respondido tus preguntas sobre Lionel Messi.",
		Closing: "Vuelve cuando quieras saber más sobre su carrera y logros.",
	}
}

func (g *Generator) thanks(classifier.Result, string) Response {
	return Response{
		Intro:   "De nada. Es un placer ayudarte con información sobre Messi.",
		Closing: "Si tienes más preguntas, estoy aquí para responder.",
	}
}

func (g *Generator) biografia(classifier.Result, string) Response {
	e := g.kb.Entidad
	c := g.kb.Carrera
	arg := c.SeleccionArgentina

	return Response{
		Title: e.NombreCompleto,
		Blocks: []Block{
			list("Datos personales",
				fmt.Sprintf("Nacimiento: %s (%d años)", format.ShortDate(e.FechaNacimiento), g.yearsSince(g.kb.BirthYear())),
				"Lugar: "+e.LugarNacimiento,
				fmt.Sprintf("Altura: %s m", format.Decimal(e.Altura)),
				"Posición: "+e.Posicion,
				fmt.Sprintf("Dorsal: #%d", e.NumeroDorsalActual),
			),
			text("Trayectoria", g.kb.Biografia.Infancia.Texto),
			{Text: g.kb.Biografia.LlegadaBarcelona.Texto},
			list("Carrera profesional",
				fmt.Sprintf("Barcelona (%s): %d goles en %d partidos", c.Barcelona.Periodo, c.Barcelona.Estadisticas.Goles, c.Barcelona.Estadisticas.PartidosOficiales),
				fmt.Sprintf("PSG (%s): %d goles en %d partidos", c.PSG.Periodo, c.PSG.Estadisticas.Goles, c.PSG.Estadisticas.PartidosOficiales),
				fmt.Sprintf("Inter Miami (%s): %d goles en %d partidos", c.InterMiami.Periodo, c.InterMiami.Total.Goles, c.InterMiami.Total.Partidos),
			),
			list("Selección Argentina",
				fmt.Sprintf("%d partidos (récord)", arg.Estadisticas.Partidos),
				fmt.Sprintf("%d goles (récord)", arg.Estadisticas.Goles),
				fmt.Sprintf("Campeón del Mundo %d", arg.Mundial.Anio),
				fmt.Sprintf("%dx Campeón Copa América (%s)", arg.CopaAmerica.Cantidad, format.Ints(arg.CopaAmerica.Anios)),
			),
			list("Premios principales",
				fmt.Sprintf("%d Balones de Oro (récord)", g.kb.Premios.BalonesOro.Cantidad),
				fmt.Sprintf("%d Botas de Oro (récord)", g.kb.Premios.BotasOro.Cantidad),
			),
		},
		Closing: "Considerado por muchos como el mejor futbolista de todos los tiempos.",
	}
}

func (g *Generator) edad(classifier.Result, string) Response {
	e := g.kb.Entidad
	return Response{
		Title: "Edad de Lionel Messi",
		Blocks: []Block{
			list("",
				"Fecha de nacimiento: "+format.FormatDate(e.FechaNacimiento),
				"Lugar: "+e.LugarNacimiento,
				fmt.Sprintf("Edad actual: %d años", g.yearsSince(g.kb.BirthYear())),
			),
			text("Dato curioso", g.kb.Biografia.CrisisMedica.Texto),
		},
		Closing: fmt.Sprintf("Durante su tratamiento, creció de 1.33m a su altura actual de %sm.", format.Decimal(e.Altura)),
	}
}

func (g *Generator) balonesOro(classifier.Result, string) Response {
	b := g.kb.Premios.BalonesOro

	years := make([]string, 0, len(b.Detalle))
	for _, d := range b.Detalle {
		years = append(years, fmt.Sprintf("%d: %s", d.Anio, d.Texto))
	}
	rivals := make([]string, 0, len(b.Rivales))
	for _, r := range b.Rivales {
		rivals = append(rivals, fmt.Sprintf("%s: %d", r.Nombre, r.Cantidad))
	}

	return Response{
		Title: "Balones de Oro de Lionel Messi",
		Intro: fmt.Sprintf("Lionel Messi ha ganado %d Balones de Oro, un récord absoluto en la historia del fútbol.", b.Cantidad),
		Blocks: []Block{
			list("Lista por años", years...),
			list("Ningún otro jugador tiene más de 5 Balones de Oro", rivals...),
		},
		Closing: fmt.Sprintf("Messi tiene el récord absoluto con %d Balones de Oro.", b.Cantidad),
	}
}

func seasonItems(s knowledge.Season) []string {
	return []string{
		fmt.Sprintf("Partidos: %d", s.Partidos),
		fmt.Sprintf("Goles: %d", s.Goles),
		fmt.Sprintf("Asistencias: %d", s.Asistencias),
	}
}

func (g *Generator) equipoActual(classifier.Result, string) Response {
	m := g.kb.Carrera.InterMiami

	blocks := []Block{
		{Text: "Club: Inter Miami CF (desde 2023)\nLiga: Major League Soccer (MLS)\nPaís: Estados Unidos"},
		list("Estadísticas en Miami", seasonItems(m.Total)...),
	}
	for _, s := range m.Temporadas {
		items := seasonItems(s)
		if s.Temporada == fmt.Sprint(m.LeaguesCup.Anio) {
			items = append(items, fmt.Sprintf("Leagues Cup %d (primer título del club)", m.LeaguesCup.Anio))
		}
		blocks = append(blocks, list("Temporada "+s.Temporada, items...))
	}
	blocks = append(blocks, list("Compañeros destacados", m.Companeros...))

	return Response{Title: "Equipo actual de Messi", Blocks: blocks}
}

func (g *Generator) estadisticasGenerales(res classifier.Result, query string) Response {
	switch {
	case res.Entities.Has(nlp.EntityTeam, "Barcelona"):
		return g.barcelona(res, query)
	case res.Entities.Has(nlp.EntityTeam, "PSG"):
		return g.psg(res, query)
	case res.Entities.Has(nlp.EntityTeam, "Inter Miami"):
		return g.miami(res, query)
	case res.Entities.Has(nlp.EntityTeam, "Argentina"):
		return g.argentina(res, query)
	}

	c := g.kb.Carrera
	bcn, psg, mia, arg := c.Barcelona, c.PSG, c.InterMiami, c.SeleccionArgentina
	goles := bcn.Estadisticas.Goles + psg.Estadisticas.Goles + mia.Total.Goles + arg.Estadisticas.Goles
	asistencias := bcn.Estadisticas.Asistencias + psg.Estadisticas.Asistencias + mia.Total.Asistencias + arg.Estadisticas.Asistencias

	return Response{
		Title: "Estadísticas completas de Lionel Messi",
		Blocks: []Block{
			list(fmt.Sprintf("FC BARCELONA (%s)", bcn.Periodo),
				fmt.Sprintf("Partidos: %d", bcn.Estadisticas.PartidosOficiales),
				fmt.Sprintf("Goles: %d", bcn.Estadisticas.Goles),
				fmt.Sprintf("Asistencias: %d", bcn.Estadisticas.Asistencias),
				fmt.Sprintf("Promedio: %s goles/partido", format.Decimal(bcn.Estadisticas.PromedioGol)),
				fmt.Sprintf("Títulos: %d", bcn.Titulos.Total),
			),
			list(fmt.Sprintf("PSG (%s)", psg.Periodo),
				fmt.Sprintf("Partidos: %d", psg.Estadisticas.PartidosOficiales),
				fmt.Sprintf("Goles: %d", psg.Estadisticas.Goles),
				fmt.Sprintf("Asistencias: %d", psg.Estadisticas.Asistencias),
				fmt.Sprintf("Títulos: %d", psg.Titulos.Total),
			),
			list(fmt.Sprintf("INTER MIAMI (%s)", mia.Periodo),
				fmt.Sprintf("Partidos: %d", mia.Total.Partidos),
				fmt.Sprintf("Goles: %d", mia.Total.Goles),
				fmt.Sprintf("Asistencias: %d", mia.Total.Asistencias),
				fmt.Sprintf("Títulos: 1 (Leagues Cup %d)", mia.LeaguesCup.Anio),
			),
			list("SELECCIÓN ARGENTINA",
				fmt.Sprintf("Partidos: %d (récord)", arg.Estadisticas.Partidos),
				fmt.Sprintf("Goles: %d (récord)", arg.Estadisticas.Goles),
				fmt.Sprintf("Asistencias: %d", arg.Estadisticas.Asistencias),
				fmt.Sprintf("Títulos: Mundial %d, Copa América %s", arg.Mundial.Anio, format.Ints(arg.CopaAmerica.Anios)),
			),
			list("TOTAL CARRERA",
				fmt.Sprintf("Goles totales: %d+", goles),
				fmt.Sprintf("Asistencias totales: %d+", asistencias),
			),
		},
		Closing: "El jugador más completo de la historia.",
	}
}

func (g *Generator) barcelona(classifier.Result, string) Response {
	b := g.kb.Carrera.Barcelona
	t := b.Titulos

	return Response{
		Title: "Lionel Messi en el FC Barcelona",
		Intro: fmt.Sprintf("Periodo: %s (%d años)", b.Periodo, b.Anios),
		Blocks: []Block{
			list("Estadísticas",
				fmt.Sprintf("Goles: %d", b.Estadisticas.Goles),
				fmt.Sprintf("Asistencias: %d", b.Estadisticas.Asistencias),
				fmt.Sprintf("Partidos: %d", b.Estadisticas.PartidosOficiales),
				fmt.Sprintf("Promedio: %s goles/partido", format.Decimal(b.Estadisticas.PromedioGol)),
				fmt.Sprintf("Hat-tricks: %d", b.Estadisticas.HatTricks),
			),
			list(fmt.Sprintf("Títulos (%d en total)", t.Total),
				fmt.Sprintf("Champions League: %d (%s)", t.ChampionsLeague.Cantidad, format.Ints(t.ChampionsLeague.Anios)),
				fmt.Sprintf("La Liga: %d (%s)", t.Ligas.Cantidad, format.Ints(t.Ligas.Anios)),
				fmt.Sprintf("Copa del Rey: %d", t.CopasDelRey.Cantidad),
				fmt.Sprintf("Mundial de Clubes: %d", t.MundialesClubes.Cantidad),
			),
			list("Récords principales", first(b.Records, 3)...),
		},
		Closing: "Messi es el máximo goleador de la historia del Barcelona y uno de los jugadores más importantes de todos los tiempos.",
	}
}

func (g *Generator) psg(classifier.Result, string) Response {
	p := g.kb.Carrera.PSG

	blocks := []Block{
		list("Estadísticas totales",
			fmt.Sprintf("Goles: %d", p.Estadisticas.Goles),
			fmt.Sprintf("Asistencias: %d", p.Estadisticas.Asistencias),
			fmt.Sprintf("Partidos: %d", p.Estadisticas.PartidosOficiales),
			fmt.Sprintf("Promedio: %s goles/partido", format.Decimal(p.Estadisticas.PromedioGol)),
		),
	}
	for _, s := range p.Temporadas {
		blocks = append(blocks, list("Temporada "+s.Temporada, seasonItems(s)...))
	}
	blocks = append(blocks,
		list(fmt.Sprintf("Títulos (%d)", p.Titulos.Total),
			fmt.Sprintf("Ligue 1: %d (%s)", p.Titulos.Ligue1.Cantidad, format.Ints(p.Titulos.Ligue1.Anios)),
			fmt.Sprintf("Supercopa de Francia: %d", p.Titulos.SupercopaFrancia.Cantidad),
		),
		text("Champions League", p.EliminacionChampions),
		text("Evaluación", p.Evaluacion),
	)

	return Response{
		Title:  "Lionel Messi en el Paris Saint-Germain",
		Intro:  fmt.Sprintf("Periodo: %s (%d años). Razón de llegada: %s", p.Periodo, p.Anios, p.RazonLlegada),
		Blocks: blocks,
	}
}

func (g *Generator) miami(classifier.Result, string) Response {
	m := g.kb.Carrera.InterMiami

	var blocks []Block
	for _, s := range m.Temporadas {
		items := seasonItems(s)
		if s.Temporada == fmt.Sprint(m.LeaguesCup.Anio) {
			items = append(items, fmt.Sprintf("Título: Leagues Cup %d", m.LeaguesCup.Anio))
		}
		blocks = append(blocks, list("Temporada "+s.Temporada, items...))
	}
	blocks = append(blocks,
		list("Totales en Miami", seasonItems(m.Total)...),
		list("Títulos",
			fmt.Sprintf("Leagues Cup %d: Primer título del club", m.LeaguesCup.Anio),
			fmt.Sprintf("Goles de Messi: %d", m.LeaguesCup.GolesMessi),
			"MVP del torneo: "+format.YesNo(m.LeaguesCup.MVP),
		),
		list("Compañeros destacados", m.Companeros...),
	)

	return Response{
		Title:  "Lionel Messi en Inter Miami CF",
		Intro:  fmt.Sprintf("Fecha de presentación: %s. Liga: Major League Soccer (MLS)", format.ShortDate(m.FechaPresentacion)),
		Blocks: blocks,
	}
}

func (g *Generator) argentina(classifier.Result, string) Response {
	a := g.kb.Carrera.SeleccionArgentina
	sub := a.Subcampeonatos

	titulos := []string{fmt.Sprintf("Copa del Mundo FIFA %d (%s)", a.Mundial.Anio, a.Mundial.Sede)}
	for i, y := range a.CopaAmerica.Anios {
		sede := ""
		if i < len(a.CopaAmerica.Sedes) {
			sede = " (" + a.CopaAmerica.Sedes[i] + ")"
		}
		titulos = append(titulos, fmt.Sprintf("Copa América %d%s", y, sede))
	}
	titulos = append(titulos, fmt.Sprintf("Finalissima %d (vs %s %s)", a.Finalissima.Anio, a.Finalissima.Rival, a.Finalissima.Resultado))

	return Response{
		Title: "Lionel Messi con la Selección Argentina",
		Intro: fmt.Sprintf("Debut: %s (%d años)", format.ShortDate(a.Debut), a.EdadDebut),
		Blocks: []Block{
			list("Estadísticas",
				fmt.Sprintf("Partidos: %d (récord absoluto)", a.Estadisticas.Partidos),
				fmt.Sprintf("Goles: %d (máximo goleador histórico)", a.Estadisticas.Goles),
				fmt.Sprintf("Asistencias: %d", a.Estadisticas.Asistencias),
				fmt.Sprintf("Partidos como capitán: %d+", a.Estadisticas.Capitanias),
			),
			list("Títulos mayores", titulos...),
			list("Subcampeonatos",
				fmt.Sprintf("Mundial %d (%s) - %s", sub.Mundial.Anio, sub.Mundial.Sede, sub.Mundial.Premio),
				fmt.Sprintf("Copa América: %d finales (%s)", sub.CopasAmerica.Cantidad, format.Ints(sub.CopasAmerica.Anios)),
			),
			list("Récords internacionales principales", first(a.Records, 5)...),
		},
		Closing: "Messi es considerado el capitán más exitoso en la historia de Argentina.",
	}
}

func (g *Generator) premios(classifier.Result, string) Response {
	p := g.kb.Premios

	oro := make([]int, 0, len(p.BalonesOro.Detalle))
	for _, d := range p.BalonesOro.Detalle {
		oro = append(oro, d.Anio)
	}
	botas := make([]string, 0, len(p.BotasOro.Temporadas))
	for _, s := range p.BotasOro.Temporadas {
		botas = append(botas, s.Temporada)
	}

	return Response{
		Title: "Premios y reconocimientos de Lionel Messi",
		Blocks: []Block{
			text(fmt.Sprintf("Balones de Oro: %d (récord absoluto)", p.BalonesOro.Cantidad), "Años: "+format.Ints(oro)),
			text(fmt.Sprintf("Botas de Oro: %d (récord absoluto)", p.BotasOro.Cantidad), "Temporadas: "+strings.Join(botas, ", ")),
			text(fmt.Sprintf("Pichichis La Liga: %d (récord)", p.Pichichis.Cantidad), "Temporadas: "+strings.Join(p.Pichichis.Temporadas, ", ")),
			text(fmt.Sprintf("FIFA The Best: %d", p.FifaTheBest.Cantidad), "Años: "+format.Ints(p.FifaTheBest.Anios)),
			text(fmt.Sprintf("Balón de Oro Mundial: %d", p.BalonOroMundial.Cantidad), "Años: "+format.Ints(p.BalonOroMundial.Anios)),
			text(fmt.Sprintf("MVP Champions League: %d", p.MVPChampions.Cantidad), p.MVPChampions.Nota),
			text(fmt.Sprintf("Premios Laureus: %d", p.Laureus.Cantidad),
				fmt.Sprintf("Categoría: %s. Años: %s", p.Laureus.Categoria, format.Ints(p.Laureus.Anios))),
			list("Otros premios importantes", first(p.PremiosAdicionales, 3)...),
			list("Récords Guinness", first(p.RecordsGuinness, 3)...),
		},
		Closing: "Total de premios individuales: Más de 80 premios importantes.",
	}
}

func (g *Generator) comparaciones(res classifier.Result, query string) Response {
	switch {
	case res.Entities.Has(nlp.EntityPerson, "Cristiano Ronaldo"):
		return g.cristiano(res, query)
	case res.Entities.Has(nlp.EntityPerson, "Diego Maradona"):
		return g.maradona(res, query)
	}
	return comparacionesGenerales
}

func (g *Generator) vidaPersonal(classifier.Result, string) Response {
	v := g.kb.VidaPersonal

	hijos := make([]string, 0, len(v.Hijos))
	for _, h := range v.Hijos {
		if t, err := format.ParseDate(h.Nacimiento); err == nil {
			hijos = append(hijos, fmt.Sprintf("%s (%d, %d años)", h.Nombre, t.Year(), g.yearsSince(t.Year())))
		} else {
			hijos = append(hijos, h.Nombre)
		}
	}
	hermanos := make([]string, 0, len(v.Hermanos))
	for _, h := range v.Hermanos {
		hermanos = append(hermanos, h.Nombre)
	}

	return Response{
		Title: "Vida personal de Lionel Messi",
		Blocks: []Block{
			list("Familia",
				fmt.Sprintf("Esposa: %s. %s, boda el %s", v.Esposa.Nombre, v.Esposa.Relacion, v.Esposa.Boda),
				"Hijos: "+strings.Join(hijos, ", "),
				"Padre: "+v.Padres.Padre,
				"Madre: "+v.Padres.Madre,
				"Hermanos: "+strings.Join(hermanos, ", "),
			),
			text("Residencia actual", fmt.Sprintf("%s. Anteriores: %s", v.Residencia.Actual, strings.Join(v.Residencia.Anteriores, ", "))),
			list("Patrimonio y finanzas",
				"Valor estimado: "+v.Patrimonio.ValorEstimado,
				"Ingresos anuales: "+v.Patrimonio.IngresosAnuales,
				"Propiedades: "+v.Patrimonio.Propiedades,
			),
			list("Patrocinios principales", first(v.Patrocinios, 5)...),
			list(v.Fundacion.Nombre,
				fmt.Sprintf("Año creación: %d", v.Fundacion.AnioCreacion),
				"Objetivo: "+v.Fundacion.Objetivo,
				"Proyectos: "+strings.Join(v.Fundacion.Proyectos, ", "),
			),
			text("Pasatiempos", strings.Join(v.Pasatiempos, ", ")),
			text("Personalidad", v.Personalidad),
			list("Características",
				"Humilde a pesar del éxito",
				"Familiar, dedica tiempo a su familia",
				"Leal a sus amigos (Suárez, Agüero, etc.)",
				"Respetuoso con rivales y compañeros",
				"Evita la polémica y los medios",
			),
			list("Datos curiosos", first(g.kb.Curiosidades, 3)...),
		},
	}
}

func (g *Generator) records(classifier.Result, string) Response {
	r := recordsStatic
	r.Blocks = append([]Block{
		list("Récords mundiales", first(g.kb.Premios.RecordsGuinness, 5)...),
		list("Récords con Barcelona", first(g.kb.Carrera.Barcelona.Records, 5)...),
		list("Récords con Argentina", first(g.kb.Carrera.SeleccionArgentina.Records, 5)...),
	}, r.Blocks...)
	return r
}

// messiHints are words that suggest a short question is about Messi even
// when it does not name him.
var messiHints = []string{"el", "mejor", "jugador", "futbolista", "argentino", "barcelona", "10"}

// otherTopics redirect to the specialist menu when Messi is not named.
var otherTopics = []string{"cristiano", "ronaldo", "maradona", "neymar", "mbappe", "dolar", "tarjeta", "seguro"}

func (g *Generator) unknown(_ classifier.Result, query string) Response {
	lower := strings.ToLower(query)
	normalized := nlp.Normalize(query)

	if len([]rune(lower)) < 30 && containsAny(lower, messiHints) {
		return impliedMessi
	}
	if containsAny(normalized, otherTopics) && !strings.Contains(normalized, "messi") {
		return g.notMessi(classifier.Result{}, query)
	}
	return generalHelp
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func (g *Generator) detallesEspecificos(res classifier.Result, _ string) Response {
	h := g.kb.Habilidades.Tecnicas
	switch {
	case res.Entities.Has(nlp.EntitySkill, "regate"):
		r := regateDetail
		r.Blocks = append([]Block{list("Estadísticas",
			h.Regate.Estadistica,
			"Tasa de éxito en regates: 60-70%",
			"Récord de 12 regates exitosos en un solo partido",
		)}, r.Blocks...)
		return r
	case res.Entities.Has(nlp.EntitySkill, "visión"):
		return visionDetail
	}

	skills := []struct {
		name  string
		skill knowledge.Skill
	}{
		{"Regate", h.Regate},
		{"Visión", h.VisionJuego},
		{"Definición", h.Definicion},
		{"Tiro libre", h.TiroLibre},
		{"Velocidad", h.Velocidad},
		{"Pierna derecha", h.PiernaDerecha},
	}
	items := make([]string, 0, len(skills))
	for _, s := range skills {
		items = append(items, fmt.Sprintf("%s (%s): %s", s.name, s.skill.Nivel, s.skill.Estadistica))
	}
	return Response{
		Title:   "Habilidades técnicas de Messi",
		Intro:   "Messi combina múltiples habilidades a un nivel histórico.",
		Blocks:  []Block{{Items: items, Ordered: true}},
		Closing: "¿Sobre qué habilidad específica quieres más detalles?",
	}
}

func (g *Generator) estadisticasPorTorneo(res classifier.Result, _ string) Response {
	switch {
	case res.Entities.Has(nlp.EntityTournament, "Champions League"):
		return championsDetail
	case res.Entities.Has(nlp.EntityTournament, "La Liga"):
		return ligaDetail
	}
	return torneosOverview
}

func (g *Generator) momentosHistoricos(classifier.Result, string) Response {
	c := g.kb.Carrera
	return Response{
		Title: "Momentos históricos de Lionel Messi",
		Blocks: []Block{
			list("Con el FC Barcelona", moments(c.Barcelona.MomentosDestacados)...),
			list("Con la Selección Argentina", moments(c.SeleccionArgentina.MomentosHistoricos)...),
		},
		Closing: c.SeleccionArgentina.EstiloLiderazgo + ".",
	}
}

func (g *Generator) comparacionesDetalladas(res classifier.Result, query string) Response {
	switch {
	case res.Entities.Has(nlp.EntityPerson, "Cristiano Ronaldo"):
		return g.cristiano(res, query)
	case res.Entities.Has(nlp.EntityPerson, "Diego Maradona"):
		return g.maradona(res, query)
	case res.Entities.Has(nlp.EntityPerson, "Pelé"):
		return g.pele()
	}

	c := g.kb.Comparaciones
	cr := c.CristianoRonaldo
	return Response{
		Title: "Comparaciones detalladas",
		Blocks: []Block{
			list("Messi vs Cristiano Ronaldo: "+cr.Contexto,
				cr.Diferencias.Estilo,
				cr.Diferencias.Posicion,
				cr.EstadisticasComparadas.BalonesOro,
				cr.EstadisticasComparadas.Mundial,
				cr.Veredicto,
			),
			list("Messi vs Maradona: "+c.Maradona.Contexto,
				"Similitudes: "+c.Maradona.Similitudes,
				"Diferencias: "+c.Maradona.Diferencias,
				c.Maradona.Veredicto,
			),
			list("Messi vs Pelé: "+c.Pele.Contexto,
				"Pelé: "+c.Pele.PeleVentajas,
				"Messi: "+c.Pele.MessiVentajas,
				c.Pele.Veredicto,
			),
		},
		Closing: "Pregunta por un jugador concreto para ver la comparación completa.",
	}
}

func (g *Generator) cristiano(classifier.Result, string) Response {
	cr := g.kb.Comparaciones.CristianoRonaldo
	s := cr.EstadisticasComparadas

	r := cristianoDetail
	r.Blocks = append(append([]Block(nil), r.Blocks[:2]...), append([]Block{
		list("Estadísticas comparadas",
			"Goles carrera: "+s.GolesCarrera,
			"Asistencias: "+s.Asistencias,
			"Balones de Oro: "+s.BalonesOro,
			"Champions: "+s.Champions,
			"Mundial: "+s.Mundial,
		),
	}, r.Blocks[2:]...)...)
	r.Closing = "Veredicto: " + cr.Veredicto + ". Ambos son leyendas, pero Messi es considerado por la mayoría como el más completo."
	return r
}

func (g *Generator) maradona(classifier.Result, string) Response {
	r := maradonaDetail
	r.Closing = "Veredicto: " + g.kb.Comparaciones.Maradona.Veredicto + ". Ambos son los dos mejores jugadores argentinos de la historia."
	return r
}

func (g *Generator) pele() Response {
	p := g.kb.Comparaciones.Pele
	return Response{
		Title: "Messi vs Pelé",
		Intro: p.Contexto + ".",
		Blocks: []Block{
			text("Ventajas de Pelé", p.PeleVentajas),
			text("Ventajas de Messi", p.MessiVentajas),
		},
		Closing: "Veredicto: " + p.Veredicto + ".",
	}
}

func (g *Generator) evolucionTemporal(classifier.Result, string) Response {
	b := g.kb.Biografia
	a := g.kb.Carrera.SeleccionArgentina

	seleccion := make([]string, 0, len(a.EvolucionTemporal))
	for _, e := range a.EvolucionTemporal {
		seleccion = append(seleccion, e.Periodo+": "+e.Descripcion)
	}

	return Response{
		Title: "Evolución de Lionel Messi",
		Blocks: []Block{
			list("Inicios", b.Infancia.EventosClave...),
			text("Debut profesional", fmt.Sprintf("%s, %s, con %d años. Entrenador: %s. Asistencia de %s.",
				format.FormatDate(b.DebutProfesional.Fecha), b.DebutProfesional.Partido, b.DebutProfesional.Edad,
				b.DebutProfesional.Entrenador, b.DebutProfesional.Asistencia)),
			{Heading: "Evolución de su juego", Items: playStyleEvolution, Ordered: true},
			list("Con la Selección Argentina", seleccion...),
		},
		Closing: "De extremo driblador a cerebro del equipo, siempre decisivo.",
	}
}
