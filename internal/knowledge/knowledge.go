// Package knowledge loads the static data the chatbot answers from: the
// knowledge base about Lionel Messi and the intent catalog. Both are YAML
// assets embedded in the binary, decoded once and never mutated.
package knowledge

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var assets embed.FS

// Base is the typed knowledge base.
type Base struct {
	Entidad       Profile      `yaml:"entidad"`
	Biografia     Biography    `yaml:"biografia"`
	Carrera       Career       `yaml:"carrera"`
	Premios       Awards       `yaml:"premios"`
	Habilidades   Skills       `yaml:"habilidades"`
	Comparaciones Comparisons  `yaml:"comparaciones"`
	VidaPersonal  PersonalLife `yaml:"vida_personal"`
	Curiosidades  []string     `yaml:"curiosidades"`
}

type Profile struct {
	NombreCompleto     string   `yaml:"nombre_completo"`
	Apodos             []string `yaml:"apodos"`
	Nacionalidad       string   `yaml:"nacionalidad"`
	FechaNacimiento    string   `yaml:"fecha_nacimiento"`
	LugarNacimiento    string   `yaml:"lugar_nacimiento"`
	Altura             float64  `yaml:"altura"`
	Peso               int      `yaml:"peso"`
	Posicion           string   `yaml:"posicion"`
	PiernaHabil        string   `yaml:"pierna_habil"`
	NumeroDorsalActual int      `yaml:"numero_dorsal_actual"`
}

type Biography struct {
	Infancia struct {
		Texto        string   `yaml:"texto"`
		EventosClave []string `yaml:"eventos_clave"`
	} `yaml:"infancia"`
	CrisisMedica struct {
		Texto        string `yaml:"texto"`
		Tratamiento  string `yaml:"tratamiento"`
		CostoMensual int    `yaml:"costo_mensual"`
		Impacto      string `yaml:"impacto"`
	} `yaml:"crisis_medica"`
	LlegadaBarcelona struct {
		Fecha              string   `yaml:"fecha"`
		Edad               int      `yaml:"edad"`
		Texto              string   `yaml:"texto"`
		AnecdotaServilleta string   `yaml:"anecdota_servilleta"`
		PersonasPresentes  []string `yaml:"personas_presentes"`
	} `yaml:"llegada_barcelona"`
	DebutProfesional struct {
		Fecha      string `yaml:"fecha"`
		Edad       int    `yaml:"edad"`
		Partido    string `yaml:"partido"`
		Entrenador string `yaml:"entrenador"`
		Asistencia string `yaml:"asistencia"`
	} `yaml:"debut_profesional"`
}

// Trophy counts one kind of title, optionally with the years it was won.
type Trophy struct {
	Cantidad int   `yaml:"cantidad"`
	Anios    []int `yaml:"anios"`
}

// Moment is a highlighted match or event.
type Moment struct {
	Titulo      string `yaml:"titulo"`
	Descripcion string `yaml:"descripcion"`
	Importancia string `yaml:"importancia"`
}

// Season is a per-season line of statistics.
type Season struct {
	Temporada   string `yaml:"temporada"`
	Partidos    int    `yaml:"partidos"`
	Goles       int    `yaml:"goles"`
	Asistencias int    `yaml:"asistencias"`
	Nota        string `yaml:"nota"`
}

type ClubStats struct {
	PartidosOficiales int     `yaml:"partidos_oficiales"`
	Goles             int     `yaml:"goles"`
	Asistencias       int     `yaml:"asistencias"`
	PromedioGol       float64 `yaml:"promedio_gol"`
	HatTricks         int     `yaml:"hat_tricks"`
	Poker             int     `yaml:"poker"`
	Manita            int     `yaml:"manita"`
}

type Career struct {
	Barcelona          BarcelonaCareer `yaml:"barcelona"`
	PSG                PSGCareer       `yaml:"psg"`
	InterMiami         MiamiCareer     `yaml:"inter_miami"`
	SeleccionArgentina NationalTeam    `yaml:"seleccion_argentina"`
}

type BarcelonaCareer struct {
	Periodo      string    `yaml:"periodo"`
	Anios        int       `yaml:"anios"`
	Estadisticas ClubStats `yaml:"estadisticas"`
	Titulos      struct {
		Total            int    `yaml:"total"`
		ChampionsLeague  Trophy `yaml:"champions_league"`
		Ligas            Trophy `yaml:"ligas"`
		CopasDelRey      Trophy `yaml:"copas_del_rey"`
		SupercopasEspana Trophy `yaml:"supercopas_espana"`
		MundialesClubes  Trophy `yaml:"mundiales_clubes"`
		SupercopasEuropa Trophy `yaml:"supercopas_europa"`
	} `yaml:"titulos"`
	Records            []string `yaml:"records"`
	MomentosDestacados []Moment `yaml:"momentos_destacados"`
	Finales            struct {
		ChampionsGanadas      int `yaml:"champions_ganadas"`
		ChampionsPerdidas     int `yaml:"champions_perdidas"`
		GolesFinalesChampions int `yaml:"goles_finales_champions"`
	} `yaml:"finales"`
}

type PSGCareer struct {
	Periodo      string    `yaml:"periodo"`
	Anios        int       `yaml:"anios"`
	RazonLlegada string    `yaml:"razon_llegada"`
	Estadisticas ClubStats `yaml:"estadisticas"`
	Titulos      struct {
		Total            int    `yaml:"total"`
		Ligue1           Trophy `yaml:"ligue_1"`
		SupercopaFrancia Trophy `yaml:"supercopa_francia"`
	} `yaml:"titulos"`
	Temporadas           []Season `yaml:"temporadas"`
	CompanerosDestacados []string `yaml:"companeros_destacados"`
	EliminacionChampions string   `yaml:"eliminacion_champions"`
	Evaluacion           string   `yaml:"evaluacion"`
}

type MiamiCareer struct {
	Periodo           string   `yaml:"periodo"`
	FechaPresentacion string   `yaml:"fecha_presentacion"`
	Temporadas        []Season `yaml:"temporadas"`
	Total             Season   `yaml:"total"`
	LeaguesCup        struct {
		Anio       int    `yaml:"anio"`
		Nota       string `yaml:"nota"`
		GolesMessi int    `yaml:"goles_messi"`
		MVP        bool   `yaml:"mvp"`
	} `yaml:"leagues_cup"`
	Impacto struct {
		Economico string `yaml:"economico"`
		Deportivo string `yaml:"deportivo"`
		Comercial string `yaml:"comercial"`
	} `yaml:"impacto"`
	Companeros       []string `yaml:"companeros"`
	RecordsMLS       []string `yaml:"records_mls"`
	ObjetivosFuturos string   `yaml:"objetivos_futuros"`
}

type NationalTeam struct {
	Debut        string `yaml:"debut"`
	EdadDebut    int    `yaml:"edad_debut"`
	Estadisticas struct {
		Partidos    int `yaml:"partidos"`
		Goles       int `yaml:"goles"`
		Asistencias int `yaml:"asistencias"`
		Capitanias  int `yaml:"capitanias"`
	} `yaml:"estadisticas"`
	Mundial struct {
		Cantidad         int    `yaml:"cantidad"`
		Anio             int    `yaml:"anio"`
		Sede             string `yaml:"sede"`
		GolesMessi       int    `yaml:"goles_messi"`
		AsistenciasMessi int    `yaml:"asistencias_messi"`
		MVP              bool   `yaml:"mvp"`
		Nota             string `yaml:"nota"`
	} `yaml:"mundial"`
	CopaAmerica struct {
		Cantidad     int      `yaml:"cantidad"`
		Anios        []int    `yaml:"anios"`
		Sedes        []string `yaml:"sedes"`
		GolesTotales int      `yaml:"goles_totales"`
	} `yaml:"copa_america"`
	Finalissima struct {
		Cantidad  int    `yaml:"cantidad"`
		Anio      int    `yaml:"anio"`
		Rival     string `yaml:"rival"`
		Resultado string `yaml:"resultado"`
	} `yaml:"finalissima"`
	Subcampeonatos struct {
		Mundial struct {
			Anio   int    `yaml:"anio"`
			Sede   string `yaml:"sede"`
			Final  string `yaml:"final"`
			Premio string `yaml:"premio"`
		} `yaml:"mundial"`
		CopasAmerica struct {
			Cantidad int    `yaml:"cantidad"`
			Anios    []int  `yaml:"anios"`
			Nota     string `yaml:"nota"`
		} `yaml:"copas_america"`
	} `yaml:"subcampeonatos"`
	Records           []string `yaml:"records"`
	EvolucionTemporal []struct {
		Periodo     string `yaml:"periodo"`
		Descripcion string `yaml:"descripcion"`
	} `yaml:"evolucion_temporal"`
	MomentosHistoricos []Moment `yaml:"momentos_historicos"`
	EstiloLiderazgo    string   `yaml:"estilo_liderazgo"`
}

type Awards struct {
	BalonesOro struct {
		Cantidad int    `yaml:"cantidad"`
		Record   string `yaml:"record"`
		Detalle  []struct {
			Anio  int    `yaml:"anio"`
			Texto string `yaml:"texto"`
		} `yaml:"detalle"`
		Rivales []struct {
			Nombre   string `yaml:"nombre"`
			Cantidad int    `yaml:"cantidad"`
		} `yaml:"rivales"`
	} `yaml:"balones_oro"`
	BotasOro struct {
		Cantidad   int      `yaml:"cantidad"`
		Record     string   `yaml:"record"`
		Temporadas []Season `yaml:"temporadas"`
	} `yaml:"botas_oro"`
	Pichichis struct {
		Cantidad   int      `yaml:"cantidad"`
		Record     string   `yaml:"record"`
		Temporadas []string `yaml:"temporadas"`
	} `yaml:"pichichis"`
	FifaTheBest     NamedTrophy `yaml:"fifa_the_best"`
	BalonOroMundial NamedTrophy `yaml:"balon_oro_mundial"`
	MVPChampions    NamedTrophy `yaml:"mvp_champions"`
	Laureus         struct {
		Cantidad  int    `yaml:"cantidad"`
		Anios     []int  `yaml:"anios"`
		Categoria string `yaml:"categoria"`
	} `yaml:"laureus"`
	PremiosAdicionales []string `yaml:"premios_adicionales"`
	RecordsGuinness    []string `yaml:"records_guinness"`
}

// NamedTrophy is a Trophy with a note.
type NamedTrophy struct {
	Cantidad int    `yaml:"cantidad"`
	Anios    []int  `yaml:"anios"`
	Nota     string `yaml:"nota"`
}

// Skill is a rated technical ability.
type Skill struct {
	Nivel       string `yaml:"nivel"`
	Descripcion string `yaml:"descripcion"`
	Estadistica string `yaml:"estadistica"`
}

type Skills struct {
	Tecnicas struct {
		Regate        Skill `yaml:"regate"`
		VisionJuego   Skill `yaml:"vision_juego"`
		Definicion    Skill `yaml:"definicion"`
		TiroLibre     Skill `yaml:"tiro_libre"`
		Velocidad     Skill `yaml:"velocidad"`
		Cabezazo      Skill `yaml:"cabezazo"`
		PiernaDerecha Skill `yaml:"pierna_derecha"`
	} `yaml:"tecnicas"`
	Mentales struct {
		InteligenciaTactica string `yaml:"inteligencia_tactica"`
		Resiliencia         string `yaml:"resiliencia"`
		Liderazgo           string `yaml:"liderazgo"`
		Concentracion       string `yaml:"concentracion"`
		Adaptabilidad       string `yaml:"adaptabilidad"`
	} `yaml:"mentales"`
	Fisicas struct {
		CentroGravedad string `yaml:"centro_gravedad"`
		Resistencia    string `yaml:"resistencia"`
		Equilibrio     string `yaml:"equilibrio"`
		Agilidad       string `yaml:"agilidad"`
		Recuperacion   string `yaml:"recuperacion"`
	} `yaml:"fisicas"`
}

type Comparisons struct {
	CristianoRonaldo struct {
		Contexto    string `yaml:"contexto"`
		Diferencias struct {
			Estilo   string `yaml:"estilo"`
			Posicion string `yaml:"posicion"`
			Equipos  string `yaml:"equipos"`
		} `yaml:"diferencias"`
		EstadisticasComparadas struct {
			GolesCarrera string `yaml:"goles_carrera"`
			Asistencias  string `yaml:"asistencias"`
			BalonesOro   string `yaml:"balones_oro"`
			Champions    string `yaml:"champions"`
			Mundial      string `yaml:"mundial"`
		} `yaml:"estadisticas_comparadas"`
		Veredicto string `yaml:"veredicto"`
	} `yaml:"cristiano_ronaldo"`
	Maradona struct {
		Contexto    string `yaml:"contexto"`
		Similitudes string `yaml:"similitudes"`
		Diferencias string `yaml:"diferencias"`
		Veredicto   string `yaml:"veredicto"`
	} `yaml:"maradona"`
	Pele struct {
		Contexto      string `yaml:"contexto"`
		PeleVentajas  string `yaml:"pele_ventajas"`
		MessiVentajas string `yaml:"messi_ventajas"`
		Veredicto     string `yaml:"veredicto"`
	} `yaml:"pele"`
}

// Child is one of Messi's children; Nacimiento is YYYY-MM-DD.
type Child struct {
	Nombre     string `yaml:"nombre"`
	Nacimiento string `yaml:"nacimiento"`
}

type PersonalLife struct {
	Esposa struct {
		Nombre      string `yaml:"nombre"`
		Relacion    string `yaml:"relacion"`
		Boda        string `yaml:"boda"`
		Descripcion string `yaml:"descripcion"`
	} `yaml:"esposa"`
	Hijos  []Child `yaml:"hijos"`
	Padres struct {
		Padre string `yaml:"padre"`
		Madre string `yaml:"madre"`
	} `yaml:"padres"`
	Hermanos []struct {
		Nombre   string `yaml:"nombre"`
		Relacion string `yaml:"relacion"`
	} `yaml:"hermanos"`
	Residencia struct {
		Actual     string   `yaml:"actual"`
		Anteriores []string `yaml:"anteriores"`
	} `yaml:"residencia"`
	Patrimonio struct {
		ValorEstimado   string `yaml:"valor_estimado"`
		IngresosAnuales string `yaml:"ingresos_anuales"`
		Propiedades     string `yaml:"propiedades"`
	} `yaml:"patrimonio"`
	Patrocinios []string `yaml:"patrocinios"`
	Fundacion   struct {
		Nombre       string   `yaml:"nombre"`
		AnioCreacion int      `yaml:"anio_creacion"`
		Objetivo     string   `yaml:"objetivo"`
		Proyectos    []string `yaml:"proyectos"`
	} `yaml:"fundacion"`
	Pasatiempos  []string `yaml:"pasatiempos"`
	Personalidad string   `yaml:"personalidad"`
}

// BirthYear returns the year part of Entidad.FechaNacimiento.
func (b *Base) BirthYear() int {
	var y int
	if _, err := fmt.Sscanf(b.Entidad.FechaNacimiento, "%4d", &y); err != nil {
		return 0
	}
	return y
}

// LoadBase decodes the embedded knowledge base.
func LoadBase() (*Base, error) {
	data, err := assets.ReadFile("data/messi.yaml")
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	return ParseBase(data)
}

// ParseBase decodes a knowledge base document.
func ParseBase(data []byte) (*Base, error) {
	var b Base
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}
	if b.Entidad.NombreCompleto == "" || b.BirthYear() == 0 {
		return nil, fmt.Errorf("knowledge base: entidad.nombre_completo and entidad.fecha_nacimiento are required")
	}
	return &b, nil
}
