package domain

import "fmt"

// Kind identifies a catalog resource type and doubles as its endpoint name.
type Kind string

const (
	KindFilms     Kind = "films"
	KindPeople    Kind = "people"
	KindPlanets   Kind = "planets"
	KindSpecies   Kind = "species"
	KindStarships Kind = "starships"
	KindVehicles  Kind = "vehicles"
)

// Kinds lists every catalog resource type in display order.
var Kinds = []Kind{KindFilms, KindPeople, KindPlanets, KindSpecies, KindStarships, KindVehicles}

// ParseKind validates an endpoint name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Endpoint returns the path segment used by the catalog API.
func (k Kind) Endpoint() string { return string(k) }

// Singular returns the human name of one resource of this kind.
func (k Kind) Singular() string {
	switch k {
	case KindFilms:
		return "film"
	case KindPeople:
		return "person"
	case KindPlanets:
		return "planet"
	case KindSpecies:
		return "species"
	case KindStarships:
		return "starship"
	case KindVehicles:
		return "vehicle"
	default:
		return string(k)
	}
}
