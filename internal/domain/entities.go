package domain

import "strconv"

// Meta holds the fields every catalog resource carries
type Meta struct {
	URL     string `json:"url"`     // Canonical url, ends in /<id>/
	Created string `json:"created"` // ISO-8601 creation timestamp
	Edited  string `json:"edited"`  // ISO-8601 last edit timestamp
}

// ResourceURL returns the canonical url
func (m Meta) ResourceURL() string { return m.URL }

// Film represents one film of the saga
type Film struct {
	Meta
	Title        string   `json:"title"`
	EpisodeID    int      `json:"episode_id"`
	OpeningCrawl string   `json:"opening_crawl"`
	Director     string   `json:"director"`
	Producer     string   `json:"producer"`
	ReleaseDate  string   `json:"release_date"`
	Characters   []string `json:"characters"`
	Planets      []string `json:"planets"`
	Starships    []string `json:"starships"`
	Vehicles     []string `json:"vehicles"`
	Species      []string `json:"species"`
}

func (f Film) Kind() Kind              { return KindFilms }
func (f Film) DisplayName() string     { return f.Title }
func (f Film) SearchFields() []string  { return []string{f.Title, f.Director, f.Producer} }
func (f Film) Links() []Link           { return nil }

func (f Film) Fields() []Field {
	return []Field{
		{"Title", f.Title},
		{"Episode", strconv.Itoa(f.EpisodeID)},
		{"Director", f.Director},
		{"Producer", f.Producer},
		{"Release date", f.ReleaseDate},
		{"Opening crawl", f.OpeningCrawl},
	}
}

func (f Film) Relations() []Relation {
	return []Relation{
		{Name: "characters", Target: KindPeople, URLs: f.Characters},
		{Name: "planets", Target: KindPlanets, URLs: f.Planets},
		{Name: "starships", Target: KindStarships, URLs: f.Starships},
		{Name: "vehicles", Target: KindVehicles, URLs: f.Vehicles},
		{Name: "species", Target: KindSpecies, URLs: f.Species},
	}
}

// Person represents a character
type Person struct {
	Meta
	Name      string   `json:"name"`
	BirthYear string   `json:"birth_year"`
	EyeColor  string   `json:"eye_color"`
	Gender    string   `json:"gender"`
	HairColor string   `json:"hair_color"`
	Height    string   `json:"height"`
	Mass      string   `json:"mass"`
	SkinColor string   `json:"skin_color"`
	Homeworld string   `json:"homeworld"`
	Films     []string `json:"films"`
	Species   []string `json:"species"`
	Starships []string `json:"starships"`
	Vehicles  []string `json:"vehicles"`
}

func (p Person) Kind() Kind             { return KindPeople }
func (p Person) DisplayName() string    { return p.Name }
func (p Person) SearchFields() []string { return []string{p.Name, p.Gender, p.BirthYear} }

func (p Person) Fields() []Field {
	return []Field{
		{"Name", p.Name},
		{"Birth year", p.BirthYear},
		{"Gender", p.Gender},
		{"Height", p.Height},
		{"Mass", p.Mass},
		{"Eye color", p.EyeColor},
		{"Hair color", p.HairColor},
		{"Skin color", p.SkinColor},
	}
}

func (p Person) Relations() []Relation {
	return []Relation{
		{Name: "films", Target: KindFilms, URLs: p.Films},
		{Name: "species", Target: KindSpecies, URLs: p.Species},
		{Name: "starships", Target: KindStarships, URLs: p.Starships},
		{Name: "vehicles", Target: KindVehicles, URLs: p.Vehicles},
	}
}

func (p Person) Links() []Link {
	if p.Homeworld == "" {
		return nil
	}
	return []Link{{Name: "homeworld", URL: p.Homeworld}}
}

// Planet represents a planet
type Planet struct {
	Meta
	Name           string   `json:"name"`
	Diameter       string   `json:"diameter"`
	RotationPeriod string   `json:"rotation_period"`
	OrbitalPeriod  string   `json:"orbital_period"`
	Gravity        string   `json:"gravity"`
	Population     string   `json:"population"`
	Climate        string   `json:"climate"`
	Terrain        string   `json:"terrain"`
	SurfaceWater   string   `json:"surface_water"`
	Residents      []string `json:"residents"`
	Films          []string `json:"films"`
}

func (p Planet) Kind() Kind             { return KindPlanets }
func (p Planet) DisplayName() string    { return p.Name }
func (p Planet) SearchFields() []string { return []string{p.Name, p.Climate, p.Terrain} }
func (p Planet) Links() []Link          { return nil }

func (p Planet) Fields() []Field {
	return []Field{
		{"Name", p.Name},
		{"Climate", p.Climate},
		{"Terrain", p.Terrain},
		{"Population", p.Population},
		{"Diameter", p.Diameter},
		{"Gravity", p.Gravity},
		{"Rotation period", p.RotationPeriod},
		{"Orbital period", p.OrbitalPeriod},
		{"Surface water", p.SurfaceWater},
	}
}

func (p Planet) Relations() []Relation {
	return []Relation{
		{Name: "residents", Target: KindPeople, URLs: p.Residents},
		{Name: "films", Target: KindFilms, URLs: p.Films},
	}
}

// Species represents a species
type Species struct {
	Meta
	Name            string   `json:"name"`
	Classification  string   `json:"classification"`
	Designation     string   `json:"designation"`
	AverageHeight   string   `json:"average_height"`
	SkinColors      string   `json:"skin_colors"`
	HairColors      string   `json:"hair_colors"`
	EyeColors       string   `json:"eye_colors"`
	AverageLifespan string   `json:"average_lifespan"`
	Homeworld       string   `json:"homeworld"` // null upstream for some species
	Language        string   `json:"language"`
	People          []string `json:"people"`
	Films           []string `json:"films"`
}

func (s Species) Kind() Kind          { return KindSpecies }
func (s Species) DisplayName() string { return s.Name }
func (s Species) SearchFields() []string {
	return []string{s.Name, s.Classification, s.Language}
}

func (s Species) Fields() []Field {
	return []Field{
		{"Name", s.Name},
		{"Classification", s.Classification},
		{"Designation", s.Designation},
		{"Language", s.Language},
		{"Average height", s.AverageHeight},
		{"Average lifespan", s.AverageLifespan},
		{"Skin colors", s.SkinColors},
		{"Hair colors", s.HairColors},
		{"Eye colors", s.EyeColors},
	}
}

func (s Species) Relations() []Relation {
	return []Relation{
		{Name: "people", Target: KindPeople, URLs: s.People},
		{Name: "films", Target: KindFilms, URLs: s.Films},
	}
}

func (s Species) Links() []Link {
	if s.Homeworld == "" {
		return nil
	}
	return []Link{{Name: "homeworld", URL: s.Homeworld}}
}

// Starship represents a hyperdrive-capable craft
type Starship struct {
	Meta
	Name                 string   `json:"name"`
	Model                string   `json:"model"`
	Manufacturer         string   `json:"manufacturer"`
	CostInCredits        string   `json:"cost_in_credits"`
	Length               string   `json:"length"`
	MaxAtmospheringSpeed string   `json:"max_atmosphering_speed"`
	Crew                 string   `json:"crew"`
	Passengers           string   `json:"passengers"`
	CargoCapacity        string   `json:"cargo_capacity"`
	Consumables          string   `json:"consumables"`
	HyperdriveRating     string   `json:"hyperdrive_rating"`
	MGLT                 string   `json:"MGLT"`
	StarshipClass        string   `json:"starship_class"`
	Pilots               []string `json:"pilots"`
	Films                []string `json:"films"`
}

func (s Starship) Kind() Kind          { return KindStarships }
func (s Starship) DisplayName() string { return s.Name }
func (s Starship) Links() []Link       { return nil }
func (s Starship) SearchFields() []string {
	return []string{s.Name, s.Model, s.StarshipClass}
}

func (s Starship) Fields() []Field {
	return []Field{
		{"Name", s.Name},
		{"Model", s.Model},
		{"Class", s.StarshipClass},
		{"Manufacturer", s.Manufacturer},
		{"Cost (credits)", s.CostInCredits},
		{"Length", s.Length},
		{"Max atmosphering speed", s.MaxAtmospheringSpeed},
		{"Crew", s.Crew},
		{"Passengers", s.Passengers},
		{"Cargo capacity", s.CargoCapacity},
		{"Consumables", s.Consumables},
		{"Hyperdrive rating", s.HyperdriveRating},
		{"MGLT", s.MGLT},
	}
}

func (s Starship) Relations() []Relation {
	return []Relation{
		{Name: "pilots", Target: KindPeople, URLs: s.Pilots},
		{Name: "films", Target: KindFilms, URLs: s.Films},
	}
}

// Vehicle represents an atmospheric craft
type Vehicle struct {
	Meta
	Name                 string   `json:"name"`
	Model                string   `json:"model"`
	Manufacturer         string   `json:"manufacturer"`
	CostInCredits        string   `json:"cost_in_credits"`
	Length               string   `json:"length"`
	MaxAtmospheringSpeed string   `json:"max_atmosphering_speed"`
	Crew                 string   `json:"crew"`
	Passengers           string   `json:"passengers"`
	CargoCapacity        string   `json:"cargo_capacity"`
	Consumables          string   `json:"consumables"`
	VehicleClass         string   `json:"vehicle_class"`
	Pilots               []string `json:"pilots"`
	Films                []string `json:"films"`
}

func (v Vehicle) Kind() Kind          { return KindVehicles }
func (v Vehicle) DisplayName() string { return v.Name }
func (v Vehicle) Links() []Link       { return nil }
func (v Vehicle) SearchFields() []string {
	return []string{v.Name, v.Model, v.VehicleClass}
}

func (v Vehicle) Fields() []Field {
	return []Field{
		{"Name", v.Name},
		{"Model", v.Model},
		{"Class", v.VehicleClass},
		{"Manufacturer", v.Manufacturer},
		{"Cost (credits)", v.CostInCredits},
		{"Length", v.Length},
		{"Max atmosphering speed", v.MaxAtmospheringSpeed},
		{"Crew", v.Crew},
		{"Passengers", v.Passengers},
		{"Cargo capacity", v.CargoCapacity},
		{"Consumables", v.Consumables},
	}
}

func (v Vehicle) Relations() []Relation {
	return []Relation{
		{Name: "pilots", Target: KindPeople, URLs: v.Pilots},
		{Name: "films", Target: KindFilms, URLs: v.Films},
	}
}
