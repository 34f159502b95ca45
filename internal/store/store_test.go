package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/holonet/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeRepo serves pages and items from memory and counts calls.
type fakeRepo[T domain.Resource] struct {
	mu        sync.Mutex
	pages     map[int]domain.Page[T]
	items     map[int]T
	manyErr   map[int]error
	oneErr    error
	manyCalls int
	oneCalls  int
}

func newFakeRepo[T domain.Resource]() *fakeRepo[T] {
	return &fakeRepo[T]{
		pages:   make(map[int]domain.Page[T]),
		items:   make(map[int]T),
		manyErr: make(map[int]error),
	}
}

func (r *fakeRepo[T]) FetchMany(ctx context.Context, page int, search string) (domain.Page[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manyCalls++
	if err := r.manyErr[page]; err != nil {
		return domain.Page[T]{}, err
	}
	return r.pages[page], nil
}

func (r *fakeRepo[T]) FetchOne(ctx context.Context, id int) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.oneCalls++
	if r.oneErr != nil {
		var zero T
		return zero, r.oneErr
	}
	return r.items[id], nil
}

func (r *fakeRepo[T]) calls() (many, one int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.manyCalls, r.oneCalls
}

func newTestStore[T domain.Resource](t *testing.T, kind domain.Kind, repo *fakeRepo[T], clock *fakeClock) *Store[T] {
	t.Helper()
	s, err := New(Config[T]{
		Kind:          kind,
		FetchMany:     repo.FetchMany,
		FetchOne:      repo.FetchOne,
		ErrorMessages: ErrorMessages{FetchMany: "Failed to fetch " + string(kind), FetchOne: "Failed to fetch " + kind.Singular()},
		Clock:         clock.Now,
	})
	require.NoError(t, err)
	return s
}

func strPtr(s string) *string { return &s }

func meta(kind domain.Kind, id int) domain.Meta {
	return domain.Meta{URL: fmt.Sprintf("https://swapi.test/api/%s/%d/", kind, id)}
}

// assertListCacheHit fetches the same page twice and checks the second call
// is served from cache.
func assertListCacheHit[T domain.Resource](t *testing.T, kind domain.Kind, item T) {
	t.Helper()
	repo := newFakeRepo[T]()
	repo.pages[1] = domain.Page[T]{Count: 1, Results: []T{item}}
	s := newTestStore(t, kind, repo, newFakeClock())
	ctx := context.Background()

	s.FetchItems(ctx, 1, "")
	first := s.State()
	s.FetchItems(ctx, 1, "")
	second := s.State()

	many, _ := repo.calls()
	assert.Equal(t, 1, many, "second fetch should not hit the network")
	assert.Equal(t, first.Items, second.Items)
	assert.Equal(t, 1, second.Pagination.RowsNumber)
	assert.False(t, second.IsLoading)
	assert.Empty(t, second.Error)
}

func TestFetchItemsCacheHitAllKinds(t *testing.T) {
	t.Run("films", func(t *testing.T) {
		assertListCacheHit(t, domain.KindFilms, domain.Film{Meta: meta(domain.KindFilms, 1), Title: "A New Hope"})
	})
	t.Run("people", func(t *testing.T) {
		assertListCacheHit(t, domain.KindPeople, domain.Person{Meta: meta(domain.KindPeople, 1), Name: "Luke Skywalker"})
	})
	t.Run("planets", func(t *testing.T) {
		assertListCacheHit(t, domain.KindPlanets, domain.Planet{Meta: meta(domain.KindPlanets, 1), Name: "Tatooine"})
	})
	t.Run("species", func(t *testing.T) {
		assertListCacheHit(t, domain.KindSpecies, domain.Species{Meta: meta(domain.KindSpecies, 1), Name: "Human"})
	})
	t.Run("starships", func(t *testing.T) {
		assertListCacheHit(t, domain.KindStarships, domain.Starship{Meta: meta(domain.KindStarships, 2), Name: "CR90 corvette"})
	})
	t.Run("vehicles", func(t *testing.T) {
		assertListCacheHit(t, domain.KindVehicles, domain.Vehicle{Meta: meta(domain.KindVehicles, 4), Name: "Sand Crawler"})
	})
}

func TestFetchItemsCacheKeyIncludesSearch(t *testing.T) {
	repo := newFakeRepo[domain.Planet]()
	repo.pages[1] = domain.Page[domain.Planet]{Count: 1, Results: []domain.Planet{{Name: "Tatooine"}}}
	s := newTestStore(t, domain.KindPlanets, repo, newFakeClock())
	ctx := context.Background()

	s.FetchItems(ctx, 1, "")
	s.FetchItems(ctx, 1, "tat")
	s.FetchItems(ctx, 1, "tat")

	many, _ := repo.calls()
	assert.Equal(t, 2, many)
	assert.Equal(t, "tat", s.State().SearchQuery)
}

func TestFetchItemsTTLExpiry(t *testing.T) {
	repo := newFakeRepo[domain.Film]()
	repo.pages[1] = domain.Page[domain.Film]{Count: 1, Results: []domain.Film{{Title: "A New Hope"}}}
	clock := newFakeClock()
	s := newTestStore(t, domain.KindFilms, repo, clock)
	ctx := context.Background()

	s.FetchItems(ctx, 1, "")
	clock.Advance(9 * time.Minute)
	s.FetchItems(ctx, 1, "")
	many, _ := repo.calls()
	assert.Equal(t, 1, many, "entry is still fresh at 9 minutes")

	clock.Advance(time.Minute)
	s.FetchItems(ctx, 1, "")
	many, _ = repo.calls()
	assert.Equal(t, 2, many, "entry expires at exactly the TTL")
}

func TestFetchItemsFailure(t *testing.T) {
	repo := newFakeRepo[domain.Person]()
	repo.pages[1] = domain.Page[domain.Person]{Count: 82, Results: []domain.Person{{Name: "Luke Skywalker"}}}
	repo.manyErr[2] = &domain.FetchError{Code: domain.CodeAPI, Message: "Not found.", Status: 404}
	repo.manyErr[3] = errors.New("")
	s := newTestStore(t, domain.KindPeople, repo, newFakeClock())
	ctx := context.Background()

	s.FetchItems(ctx, 1, "")
	require.Len(t, s.State().Items, 1)

	s.FetchItems(ctx, 2, "")
	st := s.State()
	assert.Equal(t, "Not found.", st.Error)
	assert.Empty(t, st.Items)
	assert.Equal(t, 0, st.Pagination.RowsNumber)
	assert.False(t, st.IsLoading)

	s.FetchItems(ctx, 3, "")
	assert.Equal(t, "Failed to fetch people", s.State().Error)

	// failures are not cached
	s.FetchItems(ctx, 2, "")
	many, _ := repo.calls()
	assert.Equal(t, 4, many)

	s.ClearError()
	assert.Empty(t, s.State().Error)
}

func TestFetchItemByID(t *testing.T) {
	repo := newFakeRepo[domain.Planet]()
	repo.items[1] = domain.Planet{Meta: meta(domain.KindPlanets, 1), Name: "Tatooine"}
	s := newTestStore(t, domain.KindPlanets, repo, newFakeClock())
	ctx := context.Background()

	s.FetchItemByID(ctx, 1)
	st := s.State()
	require.NotNil(t, st.CurrentItem)
	assert.Equal(t, "Tatooine", st.CurrentItem.Name)
	assert.False(t, st.IsLoadingItem)

	s.ClearCurrentItem()
	assert.Nil(t, s.State().CurrentItem)

	s.FetchItemByID(ctx, 1)
	st = s.State()
	require.NotNil(t, st.CurrentItem)
	assert.False(t, st.IsLoadingItem)
	_, one := repo.calls()
	assert.Equal(t, 1, one, "second lookup is a cache hit")
}

func TestFetchItemByIDTTLExpiry(t *testing.T) {
	repo := newFakeRepo[domain.Species]()
	repo.items[3] = domain.Species{Meta: meta(domain.KindSpecies, 3), Name: "Wookie"}
	clock := newFakeClock()
	s := newTestStore(t, domain.KindSpecies, repo, clock)
	ctx := context.Background()

	s.FetchItemByID(ctx, 3)
	clock.Advance(DefaultTTL - time.Second)
	s.FetchItemByID(ctx, 3)
	_, one := repo.calls()
	assert.Equal(t, 1, one, "entry is still fresh just before the TTL")

	clock.Advance(time.Second)
	s.FetchItemByID(ctx, 3)
	_, one = repo.calls()
	assert.Equal(t, 2, one, "expired entry is refetched")

	st := s.State()
	require.NotNil(t, st.CurrentItem)
	assert.Equal(t, "Wookie", st.CurrentItem.Name)
	assert.False(t, st.IsLoadingItem)
}

func TestFetchItemByIDFailure(t *testing.T) {
	repo := newFakeRepo[domain.Starship]()
	repo.oneErr = &domain.FetchError{Code: domain.CodeNetwork, Message: domain.MsgNetwork}
	s := newTestStore(t, domain.KindStarships, repo, newFakeClock())

	s.FetchItemByID(context.Background(), 9)
	st := s.State()
	assert.Nil(t, st.CurrentItem)
	assert.Equal(t, domain.MsgNetwork, st.Error)
	assert.False(t, st.IsLoadingItem)
}

func TestFetchItemByIDPlainErrorText(t *testing.T) {
	repo := newFakeRepo[domain.Vehicle]()
	repo.oneErr = errors.New("connection reset")
	s := newTestStore(t, domain.KindVehicles, repo, newFakeClock())

	s.FetchItemByID(context.Background(), 4)
	assert.Equal(t, "connection reset", s.State().Error)
}

func TestFetchItemByIDInvalid(t *testing.T) {
	repo := newFakeRepo[domain.Person]()
	s := newTestStore(t, domain.KindPeople, repo, newFakeClock())

	s.FetchItemByID(context.Background(), 0)
	st := s.State()
	assert.Equal(t, "Invalid person ID", st.Error)
	assert.Nil(t, st.CurrentItem)
	_, one := repo.calls()
	assert.Equal(t, 0, one)
}

func TestOnRequest(t *testing.T) {
	repo := newFakeRepo[domain.Vehicle]()
	repo.pages[3] = domain.Page[domain.Vehicle]{Count: 39, Results: []domain.Vehicle{{Name: "X-34 landspeeder"}}}
	s := newTestStore(t, domain.KindVehicles, repo, newFakeClock())

	s.OnRequest(context.Background(), domain.TableRequest{
		Pagination: domain.TablePagination{Page: 3, RowsPerPage: 10},
	})

	st := s.State()
	assert.Equal(t, 3, st.Pagination.Page)
	assert.Equal(t, 10, st.Pagination.RowsPerPage)
	assert.Equal(t, 39, st.Pagination.RowsNumber)
	assert.Equal(t, 4, st.Pagination.PageCount())
	require.Len(t, st.Items, 1)
}

func TestClearCacheRefetches(t *testing.T) {
	repo := newFakeRepo[domain.Species]()
	repo.pages[1] = domain.Page[domain.Species]{Count: 2, Results: []domain.Species{{Name: "Human"}, {Name: "Droid"}}}
	s := newTestStore(t, domain.KindSpecies, repo, newFakeClock())
	ctx := context.Background()

	s.FetchItems(ctx, 1, "")
	before := s.State().Items

	s.ClearCache()
	s.ClearCache()
	list, item := s.CacheSize()
	assert.Zero(t, list)
	assert.Zero(t, item)

	s.FetchItems(ctx, 1, "")
	many, _ := repo.calls()
	assert.Equal(t, 2, many)
	assert.Equal(t, before, s.State().Items)
}

func TestDefaults(t *testing.T) {
	s := newTestStore(t, domain.KindFilms, newFakeRepo[domain.Film](), newFakeClock())
	st := s.State()
	assert.Equal(t, 1, st.Pagination.Page)
	assert.Equal(t, DefaultRowsPerPage, st.Pagination.RowsPerPage)
	assert.Equal(t, "films", s.Name())
	assert.Equal(t, domain.KindFilms, s.Kind())

	_, err := New(Config[domain.Film]{Kind: domain.KindFilms})
	assert.Error(t, err)
}

// blockingRepo lets a test hold the first list call open.
type blockingRepo struct {
	started chan struct{}
	release chan struct{}
	mu      sync.Mutex
	calls   int
}

func (r *blockingRepo) FetchMany(ctx context.Context, page int, search string) (domain.Page[domain.Film], error) {
	r.mu.Lock()
	r.calls++
	n := r.calls
	r.mu.Unlock()

	if n == 1 {
		close(r.started)
		<-r.release
		return domain.Page[domain.Film]{Count: 1, Results: []domain.Film{{Title: "stale"}}}, nil
	}
	return domain.Page[domain.Film]{Count: 1, Results: []domain.Film{{Title: "fresh"}}}, nil
}

func (r *blockingRepo) FetchOne(ctx context.Context, id int) (domain.Film, error) {
	return domain.Film{}, nil
}

func TestStaleCompletionDiscarded(t *testing.T) {
	repo := &blockingRepo{started: make(chan struct{}), release: make(chan struct{})}
	s, err := New(Config[domain.Film]{Kind: domain.KindFilms, FetchMany: repo.FetchMany, FetchOne: repo.FetchOne})
	require.NoError(t, err)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		s.FetchItems(ctx, 1, "")
		close(done)
	}()
	<-repo.started

	s.FetchItems(ctx, 2, "")
	close(repo.release)
	<-done

	st := s.State()
	require.Len(t, st.Items, 1)
	assert.Equal(t, "fresh", st.Items[0].Title)
	assert.Equal(t, 2, st.Pagination.Page)
	assert.False(t, st.IsLoading)

	list, _ := s.CacheSize()
	assert.Equal(t, 2, list, "stale response is still cached")
}

func TestSubscribe(t *testing.T) {
	repo := newFakeRepo[domain.Film]()
	repo.pages[1] = domain.Page[domain.Film]{Count: 1, Results: []domain.Film{{Title: "A New Hope"}}}
	s := newTestStore(t, domain.KindFilms, repo, newFakeClock())

	var mu sync.Mutex
	var loading []bool
	unsub := s.Subscribe(func(st State[domain.Film]) {
		mu.Lock()
		loading = append(loading, st.IsLoading)
		mu.Unlock()
	})

	s.FetchItems(context.Background(), 1, "")
	unsub()
	s.FetchItems(context.Background(), 1, "")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, false}, loading)
}

func TestRegistry(t *testing.T) {
	films := newFakeRepo[domain.Film]()
	films.pages[1] = domain.Page[domain.Film]{Count: 1, Results: []domain.Film{{Meta: meta(domain.KindFilms, 1), Title: "A New Hope"}}}

	r, err := NewRegistry(Sources{
		Films:     films,
		People:    newFakeRepo[domain.Person](),
		Planets:   newFakeRepo[domain.Planet](),
		Species:   newFakeRepo[domain.Species](),
		Starships: newFakeRepo[domain.Starship](),
		Vehicles:  newFakeRepo[domain.Vehicle](),
	}, Options{RowsPerPage: 10})
	require.NoError(t, err)

	for _, k := range domain.Kinds {
		h := r.Handle(k)
		require.NotNil(t, h, k)
		assert.Equal(t, k, h.Kind())
	}

	h := r.Handle(domain.KindFilms)
	h.FetchItems(context.Background(), 1, "")
	v := h.View()
	require.Len(t, v.Items, 1)
	assert.Equal(t, "A New Hope", v.Items[0].DisplayName())
	assert.Nil(t, v.CurrentItem)

	r.ClearAll()
	list, _ := r.Films.CacheSize()
	assert.Zero(t, list)

	_, err = NewRegistry(Sources{}, Options{})
	assert.Error(t, err)
}
