package i18n

// Keys are the English UI strings. enUS only lists keys whose English text
// differs from the key itself.

var enUS = map[string]string{
	"characters": "Characters",
	"planets":    "Planets",
	"starships":  "Starships",
	"vehicles":   "Vehicles",
	"species":    "Species",
	"films":      "Films",
	"people":     "People",
	"residents":  "Residents",
	"pilots":     "Pilots",
	"homeworld":  "Homeworld",
}

var nlNL = map[string]string{
	// common
	"Loading...":         "Laden...",
	"No data found":      "Geen gegevens gevonden",
	"Retry":              "Opnieuw proberen",
	"Back to overview":   "Terug naar overzicht",
	"Search":             "Zoeken",
	"Filter":             "Filteren",
	"Language":           "Taal",
	"Recently viewed":    "Recent bekeken",
	"Nothing viewed yet": "Nog niets bekeken",
	"Jump to":            "Ga naar",
	"Page %d of %d":      "Pagina %d van %d",
	"%d results":         "%d resultaten",
	"Invalid %s ID":      "Ongeldig %s-ID",

	// kinds
	"Films":     "Films",
	"People":    "Mensen",
	"Planets":   "Planeten",
	"Species":   "Soorten",
	"Starships": "Ruimteschepen",
	"Vehicles":  "Voertuigen",

	"Search films...":     "Zoek films...",
	"Search people...":    "Zoek mensen...",
	"Search planets...":   "Zoek planeten...",
	"Search species...":   "Zoek soorten...",
	"Search starships...": "Zoek ruimteschepen...",
	"Search vehicles...":  "Zoek voertuigen...",

	// relations
	"characters": "Personages",
	"planets":    "Planeten",
	"starships":  "Ruimteschepen",
	"vehicles":   "Voertuigen",
	"species":    "Soorten",
	"films":      "Films",
	"people":     "Mensen",
	"residents":  "Bewoners",
	"pilots":     "Piloten",
	"homeworld":  "Thuiswereld",

	// fields
	"Title":                  "Titel",
	"Episode":                "Episode",
	"Director":               "Regisseur",
	"Producer":               "Producent",
	"Release date":           "Releasedatum",
	"Opening crawl":          "Openingstekst",
	"Name":                   "Naam",
	"Birth year":             "Geboortejaar",
	"Gender":                 "Geslacht",
	"Height":                 "Lengte",
	"Mass":                   "Gewicht",
	"Eye color":              "Oogkleur",
	"Hair color":             "Haarkleur",
	"Skin color":             "Huidskleur",
	"Climate":                "Klimaat",
	"Terrain":                "Terrein",
	"Population":             "Bevolking",
	"Diameter":               "Diameter",
	"Gravity":                "Zwaartekracht",
	"Rotation period":        "Rotatieperiode",
	"Orbital period":         "Omloopperiode",
	"Surface water":          "Oppervlaktewater",
	"Classification":         "Classificatie",
	"Designation":            "Aanduiding",
	"Average height":         "Gemiddelde lengte",
	"Average lifespan":       "Gemiddelde levensduur",
	"Skin colors":            "Huidskleuren",
	"Hair colors":            "Haarkleuren",
	"Eye colors":             "Oogkleuren",
	"Model":                  "Model",
	"Class":                  "Klasse",
	"Manufacturer":           "Fabrikant",
	"Cost (credits)":         "Kosten (credits)",
	"Length":                 "Lengte",
	"Max atmosphering speed": "Max. atmosferische snelheid",
	"Crew":                   "Bemanning",
	"Passengers":             "Passagiers",
	"Cargo capacity":         "Laadvermogen",
	"Consumables":            "Voorraden",
	"Hyperdrive rating":      "Hyperdrive-classificatie",
}

var esES = map[string]string{
	// common
	"Loading...":         "Cargando...",
	"No data found":      "No se encontraron datos",
	"Retry":              "Reintentar",
	"Back to overview":   "Volver al resumen",
	"Search":             "Buscar",
	"Filter":             "Filtrar",
	"Language":           "Idioma",
	"Recently viewed":    "Vistos recientemente",
	"Nothing viewed yet": "Nada visto todavía",
	"Jump to":            "Ir a",
	"Page %d of %d":      "Página %d de %d",
	"%d results":         "%d resultados",
	"Invalid %s ID":      "ID de %s no válido",

	// kinds
	"Films":     "Películas",
	"People":    "Personas",
	"Planets":   "Planetas",
	"Species":   "Especies",
	"Starships": "Naves Espaciales",
	"Vehicles":  "Vehículos",

	"Search films...":     "Buscar películas...",
	"Search people...":    "Buscar personas...",
	"Search planets...":   "Buscar planetas...",
	"Search species...":   "Buscar especies...",
	"Search starships...": "Buscar naves espaciales...",
	"Search vehicles...":  "Buscar vehículos...",

	// relations
	"characters": "Personajes",
	"planets":    "Planetas",
	"starships":  "Naves Espaciales",
	"vehicles":   "Vehículos",
	"species":    "Especies",
	"films":      "Películas",
	"people":     "Personas",
	"residents":  "Residentes",
	"pilots":     "Pilotos",
	"homeworld":  "Mundo Natal",

	// fields
	"Title":                  "Título",
	"Episode":                "Episodio",
	"Director":               "Director",
	"Producer":               "Productor",
	"Release date":           "Fecha de estreno",
	"Opening crawl":          "Texto de apertura",
	"Name":                   "Nombre",
	"Birth year":             "Año de Nacimiento",
	"Gender":                 "Género",
	"Height":                 "Altura",
	"Mass":                   "Masa",
	"Eye color":              "Color de Ojos",
	"Hair color":             "Color de Cabello",
	"Skin color":             "Color de Piel",
	"Climate":                "Clima",
	"Terrain":                "Terreno",
	"Population":             "Población",
	"Diameter":               "Diámetro",
	"Gravity":                "Gravedad",
	"Rotation period":        "Periodo de rotación",
	"Orbital period":         "Periodo orbital",
	"Surface water":          "Agua superficial",
	"Classification":         "Clasificación",
	"Designation":            "Designación",
	"Average height":         "Altura media",
	"Average lifespan":       "Esperanza de vida media",
	"Skin colors":            "Colores de piel",
	"Hair colors":            "Colores de cabello",
	"Eye colors":             "Colores de ojos",
	"Model":                  "Modelo",
	"Class":                  "Clase",
	"Manufacturer":           "Fabricante",
	"Cost (credits)":         "Coste (créditos)",
	"Length":                 "Longitud",
	"Max atmosphering speed": "Velocidad atmosférica máx.",
	"Crew":                   "Tripulación",
	"Passengers":             "Pasajeros",
	"Cargo capacity":         "Capacidad de carga",
	"Consumables":            "Consumibles",
	"Hyperdrive rating":      "Clasificación de hiperimpulsor",
}
