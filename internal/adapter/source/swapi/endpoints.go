package swapi

import (
	"context"

	"github.com/mmcdole/holonet/internal/domain"
)

// Endpoint is the fetch pair for one resource type.
// Implements domain.ResourceRepository[T].
type Endpoint[T domain.Resource] struct {
	client *Client
	kind   domain.Kind
}

// NewEndpoint binds a client to one resource type.
func NewEndpoint[T domain.Resource](c *Client, kind domain.Kind) *Endpoint[T] {
	return &Endpoint[T]{client: c, kind: kind}
}

// Kind returns the endpoint's resource type.
func (e *Endpoint[T]) Kind() domain.Kind { return e.kind }

// FetchMany issues GET <kind>/?page=N[&search=S].
func (e *Endpoint[T]) FetchMany(ctx context.Context, page int, search string) (domain.Page[T], error) {
	return fetchResources[T](ctx, e.client, e.kind, page, search)
}

// FetchOne issues GET <kind>/<id>/.
func (e *Endpoint[T]) FetchOne(ctx context.Context, id int) (T, error) {
	return fetchResourceByID[T](ctx, e.client, e.kind, id)
}

func (c *Client) Films() *Endpoint[domain.Film] {
	return NewEndpoint[domain.Film](c, domain.KindFilms)
}

func (c *Client) People() *Endpoint[domain.Person] {
	return NewEndpoint[domain.Person](c, domain.KindPeople)
}

func (c *Client) Planets() *Endpoint[domain.Planet] {
	return NewEndpoint[domain.Planet](c, domain.KindPlanets)
}

func (c *Client) Species() *Endpoint[domain.Species] {
	return NewEndpoint[domain.Species](c, domain.KindSpecies)
}

func (c *Client) Starships() *Endpoint[domain.Starship] {
	return NewEndpoint[domain.Starship](c, domain.KindStarships)
}

func (c *Client) Vehicles() *Endpoint[domain.Vehicle] {
	return NewEndpoint[domain.Vehicle](c, domain.KindVehicles)
}
