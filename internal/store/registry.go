package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/holonet/internal/domain"
)

// Sources supplies one repository per resource type.
type Sources struct {
	Films     domain.ResourceRepository[domain.Film]
	People    domain.ResourceRepository[domain.Person]
	Planets   domain.ResourceRepository[domain.Planet]
	Species   domain.ResourceRepository[domain.Species]
	Starships domain.ResourceRepository[domain.Starship]
	Vehicles  domain.ResourceRepository[domain.Vehicle]
}

// Options are shared by every store in a Registry.
type Options struct {
	TTL         time.Duration
	RowsPerPage int
	Clock       Clock
	Logger      *slog.Logger
	Observer    Observer
}

// Registry owns the six resource stores. It is built once at start-up and
// handed to the views.
type Registry struct {
	Films     *Store[domain.Film]
	People    *Store[domain.Person]
	Planets   *Store[domain.Planet]
	Species   *Store[domain.Species]
	Starships *Store[domain.Starship]
	Vehicles  *Store[domain.Vehicle]

	handles map[domain.Kind]Handle
}

// NewRegistry builds one store per resource type.
func NewRegistry(src Sources, opts Options) (*Registry, error) {
	r := &Registry{}
	var err error

	if r.Films, err = newStore(domain.KindFilms, src.Films, "Failed to fetch films", "Failed to fetch film", opts); err != nil {
		return nil, err
	}
	if r.People, err = newStore(domain.KindPeople, src.People, "Failed to fetch people", "Failed to fetch person", opts); err != nil {
		return nil, err
	}
	if r.Planets, err = newStore(domain.KindPlanets, src.Planets, "Failed to fetch planets", "Failed to fetch planet", opts); err != nil {
		return nil, err
	}
	if r.Species, err = newStore(domain.KindSpecies, src.Species, "Failed to fetch species", "Failed to fetch species", opts); err != nil {
		return nil, err
	}
	if r.Starships, err = newStore(domain.KindStarships, src.Starships, "Failed to fetch starships", "Failed to fetch starship", opts); err != nil {
		return nil, err
	}
	if r.Vehicles, err = newStore(domain.KindVehicles, src.Vehicles, "Failed to fetch vehicles", "Failed to fetch vehicle", opts); err != nil {
		return nil, err
	}

	r.handles = map[domain.Kind]Handle{
		domain.KindFilms:     Erase(r.Films),
		domain.KindPeople:    Erase(r.People),
		domain.KindPlanets:   Erase(r.Planets),
		domain.KindSpecies:   Erase(r.Species),
		domain.KindStarships: Erase(r.Starships),
		domain.KindVehicles:  Erase(r.Vehicles),
	}
	return r, nil
}

func newStore[T domain.Resource](
	kind domain.Kind,
	repo domain.ResourceRepository[T],
	manyMsg, oneMsg string,
	opts Options,
) (*Store[T], error) {
	if repo == nil {
		return nil, fmt.Errorf("no source for %s", kind)
	}
	return New(Config[T]{
		Kind:          kind,
		FetchMany:     repo.FetchMany,
		FetchOne:      repo.FetchOne,
		ErrorMessages: ErrorMessages{FetchMany: manyMsg, FetchOne: oneMsg},
		TTL:           opts.TTL,
		RowsPerPage:   opts.RowsPerPage,
		Clock:         opts.Clock,
		Logger:        opts.Logger,
		Observer:      opts.Observer,
	})
}

// Handle returns the type-erased store for kind, or nil.
func (r *Registry) Handle(kind domain.Kind) Handle {
	return r.handles[kind]
}

// ClearAll drops the caches of every store.
func (r *Registry) ClearAll() {
	for _, h := range r.handles {
		h.ClearCache()
	}
}

// View is a type-erased State.
type View struct {
	Items         []domain.Resource
	CurrentItem   domain.Resource // nil when none
	IsLoading     bool
	IsLoadingItem bool
	Error         string
	SearchQuery   string
	Pagination    domain.Pagination
}

// Handle is a Store seen through domain.Resource, for code that works
// across resource types (views, the jump index).
type Handle interface {
	Kind() domain.Kind
	Name() string
	View() View
	Catalog() []domain.Resource
	FullyLoaded() bool
	FetchItems(ctx context.Context, page int, search string)
	FetchItemByID(ctx context.Context, id int)
	OnRequest(ctx context.Context, req domain.TableRequest)
	EnsureFullyLoaded(ctx context.Context) (int, error)
	ClearCache()
	ClearError()
	ClearCurrentItem()
	Subscribe(fn func(View)) func()
}

type erased[T domain.Resource] struct {
	*Store[T]
}

// Erase wraps s as a Handle.
func Erase[T domain.Resource](s *Store[T]) Handle {
	return erased[T]{s}
}

func (e erased[T]) View() View {
	return toView(e.Store.State())
}

func (e erased[T]) Catalog() []domain.Resource {
	return toResources(e.Store.Catalog())
}

func (e erased[T]) Subscribe(fn func(View)) func() {
	return e.Store.Subscribe(func(st State[T]) { fn(toView(st)) })
}

func toView[T domain.Resource](st State[T]) View {
	v := View{
		Items:         toResources(st.Items),
		IsLoading:     st.IsLoading,
		IsLoadingItem: st.IsLoadingItem,
		Error:         st.Error,
		SearchQuery:   st.SearchQuery,
		Pagination:    st.Pagination,
	}
	if st.CurrentItem != nil {
		v.CurrentItem = *st.CurrentItem
	}
	return v
}

func toResources[T domain.Resource](items []T) []domain.Resource {
	out := make([]domain.Resource, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
