package response

import "github.com/rumiadrian30/techdivulga/internal/classifier"

// Fixed answers that do not depend on the knowledge base. Callers that
// extend Blocks must copy first; these values are shared.

func (g *Generator) titulos(classifier.Result, string) Response {
	return titulosStatic
}

func (g *Generator) habilidades(classifier.Result, string) Response {
	return habilidadesStatic
}

var titulosStatic = Response{
	Title: "Títulos de Lionel Messi",
	Intro: "Total de títulos oficiales: 45+ (récord absoluto).",
	Blocks: []Block{
		list("Con el FC Barcelona (35 títulos)",
			"4 UEFA Champions League",
			"10 La Liga",
			"7 Copa del Rey",
			"8 Supercopa de España",
			"3 Mundial de Clubes",
			"3 Supercopa de Europa",
		),
		list("Con el PSG (3 títulos)",
			"2 Ligue 1",
			"1 Supercopa de Francia",
		),
		list("Con Inter Miami (1 título)",
			"1 Leagues Cup",
		),
		list("Con Argentina (4 títulos mayores)",
			"1 Copa del Mundo FIFA (2022)",
			"2 Copa América (2021, 2024)",
			"1 Finalissima (2022)",
			"1 Mundial Sub-20 (2005)",
			"1 Medalla de Oro Olímpica (2008)",
		),
	},
	Closing: "Messi es el jugador con más títulos en la historia del fútbol.",
}

var habilidadesStatic = Response{
	Title: "Habilidades de Lionel Messi",
	Blocks: []Block{
		list("Técnicas",
			"Regate: el mejor de la historia, control del balón pegado al pie",
			"Visión de juego: capacidad única para ver pases imposibles",
			"Definición: precisión letal con ambas piernas",
			"Tiro libre: más de 60 goles de tiro libre en su carrera",
			"Pase: asistente excepcional, récord de asistencias",
			"Control: primer toque perfecto",
		),
		list("Físicas",
			"Aceleración: explosivo en los primeros metros",
			"Agilidad: cambios de dirección imposibles",
			"Equilibrio: centro de gravedad bajo",
			"Resistencia: capaz de jugar 90 minutos al máximo nivel",
		),
		list("Mentales",
			"Inteligencia táctica: lee el juego como nadie",
			"Liderazgo: capitán de Barcelona y Argentina",
			"Presión: rinde en los momentos decisivos",
			"Creatividad: capacidad de improvisar",
		),
		list("Estilo de juego",
			"Posición natural: delantero centro o mediapunta",
			"Puede jugar: extremo derecho, falso 9, mediapunta",
			"Pierna hábil: izquierda (también excelente con la derecha)",
		),
		{
			Heading: "Evolución",
			Items:   playStyleEvolution,
			Ordered: true,
		},
	},
}

var playStyleEvolution = []string{
	"2004-2008: extremo derecho driblador",
	"2009-2012: falso 9 goleador",
	"2013-2017: delantero completo",
	"2018-2021: mediapunta creativo",
	"2022-presente: líder y organizador",
}

var comparacionesGenerales = Response{
	Title: "Comparaciones de Lionel Messi",
	Blocks: []Block{
		list("Messi vs Cristiano Ronaldo",
			"Balones de Oro: 8 vs 5",
			"Mundial: ganado (2022) vs no ganado",
			"Estilo: creador y goleador vs goleador puro",
		),
		list("Messi vs Maradona",
			"Ambos argentinos, zurdos y campeones del mundo",
			"Messi con una carrera más larga y regular",
		),
		list("Messi vs Pelé",
			"Pelé con 3 Mundiales en otra época",
			"Messi con récords individuales sin precedentes",
		),
	},
	Closing: "Pregunta por un jugador concreto para ver la comparación completa.",
}

var cristianoDetail = Response{
	Title: "Messi vs Cristiano Ronaldo",
	Blocks: []Block{
		list("Messi",
			"Estilo: creador, regateador y goleador",
			"Posición: mediapunta o falso 9",
			"Fortalezas: visión, regate, asistencias",
		),
		list("Cristiano",
			"Estilo: goleador atlético",
			"Posición: delantero centro",
			"Fortalezas: remate de cabeza, potencia, físico",
		),
		list("Logros colectivos",
			"Messi: Mundial 2022, 2 Copas América, 4 Champions",
			"Cristiano: Eurocopa 2016, Liga de Naciones, 5 Champions",
		),
	},
}

var maradonaDetail = Response{
	Title: "Messi vs Diego Maradona",
	Blocks: []Block{
		list("Similitudes",
			"Ambos argentinos y zurdos",
			"Regateadores excepcionales",
			"Campeones del mundo como capitanes (1986 y 2022)",
			"Ídolos absolutos en Argentina",
		),
		list("Maradona",
			"Mundial 1986 casi en solitario",
			"Llevó al Napoli a ganar 2 Scudettos",
			"Carrera más corta e irregular",
		),
		list("Messi",
			"8 Balones de Oro",
			"Más de 800 goles oficiales",
			"Regularidad durante casi dos décadas",
		),
	},
}

var recordsStatic = Response{
	Title: "Récords de Lionel Messi",
	Blocks: []Block{
		list("Champions League",
			"Máximo asistente histórico",
			"Jugador con más hat-tricks (8, compartido)",
			"Goles a más equipos diferentes",
		),
		list("La Liga",
			"Máximo goleador histórico (474 goles)",
			"Más goles en una temporada (50 en 2011-12)",
			"Más hat-tricks (36)",
		),
		list("Récords únicos",
			"91 goles en un año natural (2012)",
			"Único jugador con 8 Balones de Oro",
			"Más partidos disputados en Mundiales (26)",
		),
		list("Longevidad",
			"Goleador en más de 18 temporadas consecutivas",
			"Titular en 5 Mundiales (2006-2022)",
		),
		list("Estadísticas",
			"Más de 840 goles oficiales",
			"Más de 370 asistencias oficiales",
			"Más de 45 títulos",
		),
	},
	Closing: "Messi posee más de 100 récords en la historia del fútbol.",
}

var impliedMessi = Response{
	Intro: "Parece que preguntas sobre Lionel Messi.",
	Blocks: []Block{list("Puedo contarte sobre",
		"Su biografía y trayectoria",
		"Sus estadísticas en Barcelona, PSG, Inter Miami y Argentina",
		"Sus premios y récords",
		"Su vida personal",
	)},
	Closing: "¿Qué aspecto específico te interesa?",
}

var generalHelp = Response{
	Intro: "No estoy seguro de haber entendido tu pregunta. Puedes preguntarme, por ejemplo:",
	Blocks: []Block{
		list("📊 Estadísticas concretas",
			"¿Cuántos goles marcó Messi en el Barcelona?",
			"¿Cuántas asistencias tiene con Argentina?",
		),
		list("⚽ Habilidades técnicas",
			"¿Cómo es el regate de Messi?",
			"¿Qué tan buena es su visión de juego?",
		),
		list("🏆 Logros específicos",
			"¿Cuántos Balones de Oro tiene?",
			"¿Qué títulos ganó con Argentina?",
		),
		list("📅 Periodos específicos",
			"¿Cómo le fue en el PSG?",
			"¿Cómo evolucionó su juego con los años?",
		),
	},
	Closing: "¿Qué te gustaría saber sobre Lionel Messi?",
}

var regateDetail = Response{
	Title: "El regate de Lionel Messi",
	Intro: "El regate de Messi está considerado el mejor de la historia del fútbol.",
	Blocks: []Block{
		list("Características",
			"Centro de gravedad bajo",
			"Control del balón pegado al pie",
			"Cambios de ritmo y dirección imposibles",
			"Lectura del defensor antes del contacto",
		),
		list("Regates memorables",
			"Gol contra el Getafe (2007), recorriendo medio campo",
			"Semifinal de Champions contra el Real Madrid (2011)",
			"Gol contra el Athletic en la final de Copa (2015)",
		),
	},
}

var visionDetail = Response{
	Title: "La visión de juego de Lionel Messi",
	Intro: "Messi ve pases que otros jugadores no imaginan.",
	Blocks: []Block{
		list("Características",
			"Lectura del espacio antes de recibir",
			"Pases filtrados entre líneas",
			"Asistencias con ambas piernas",
		),
		list("Estadísticas",
			"Más de 370 asistencias oficiales",
			"Máximo asistente histórico de La Liga",
			"Líder de asistencias en el Mundial 2022",
		),
	},
}

var championsDetail = Response{
	Title: "Messi en la UEFA Champions League",
	Blocks: []Block{
		list("Estadísticas",
			"129 goles (segundo máximo goleador histórico)",
			"4 títulos (2006, 2009, 2011, 2015)",
			"Máximo goleador en 6 ediciones",
		),
		list("Finales",
			"Gol en la final de 2009 contra el Manchester United",
			"Gol en la final de 2011 contra el Manchester United",
		),
	},
}

var ligaDetail = Response{
	Title: "Messi en La Liga",
	Blocks: []Block{
		list("Estadísticas",
			"474 goles en 520 partidos",
			"10 títulos de liga",
			"8 Trofeos Pichichi (récord)",
		),
		list("Récords",
			"Máximo goleador histórico de la competición",
			"50 goles en la temporada 2011-12",
		),
	},
}

var torneosOverview = Response{
	Title: "Messi por torneo",
	Blocks: []Block{list("",
		"Champions League: 129 goles, 4 títulos",
		"La Liga: 474 goles, 10 títulos",
		"Copa del Rey: 56 goles, 7 títulos",
		"Mundiales: 13 goles, campeón en 2022",
		"Copa América: 14 goles, 2 títulos",
	)},
	Closing: "Pregunta por un torneo concreto para ver el detalle.",
}
