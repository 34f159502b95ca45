package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mmcdole/holonet/internal/domain"
)

// DefaultRowsPerPage is the page size of list tables
const DefaultRowsPerPage = 10

// ErrorMessages are the per-store defaults used when a failure carries no
// message of its own.
type ErrorMessages struct {
	FetchMany string
	FetchOne  string
}

// Observer receives cache and failure events (metrics).
type Observer interface {
	CacheHit(store, cache string)
	CacheMiss(store, cache string)
	FetchError(store string, code domain.ErrorCode)
}

// Config is the data that specializes a Store to one resource type.
type Config[T domain.Resource] struct {
	Kind          domain.Kind
	StoreName     string // "people"
	ResourceName  string // cache key prefix, "people"
	ItemName      string // singular, "person"
	FetchMany     domain.FetchManyFunc[T]
	FetchOne      domain.FetchOneFunc[T]
	ErrorMessages ErrorMessages

	TTL         time.Duration // zero means DefaultTTL
	RowsPerPage int           // zero means DefaultRowsPerPage
	Clock       Clock
	Logger      *slog.Logger
	Observer    Observer
}

// State is a snapshot of a store's read model.
type State[T domain.Resource] struct {
	Items         []T
	CurrentItem   *T
	IsLoading     bool
	IsLoadingItem bool
	Error         string
	SearchQuery   string
	Pagination    domain.Pagination
}

// Store is the cache-first fetch engine for one resource type.
// Errors never escape its operations; they land in State.Error.
type Store[T domain.Resource] struct {
	cfg    Config[T]
	logger *slog.Logger
	clock  Clock

	mu        sync.Mutex
	state     State[T]
	listCache *ttlCache[string, domain.Page[T]]
	itemCache *ttlCache[int, T]

	// Completions carrying an older generation are stale and not applied
	listGen uint64
	itemGen uint64

	subs    map[int]func(State[T])
	nextSub int

	preload preloadState[T]
}

// New creates a store from cfg. FetchMany and FetchOne are required.
func New[T domain.Resource](cfg Config[T]) (*Store[T], error) {
	if cfg.FetchMany == nil || cfg.FetchOne == nil {
		return nil, fmt.Errorf("store %q: fetch functions are required", cfg.StoreName)
	}
	if cfg.StoreName == "" {
		cfg.StoreName = string(cfg.Kind)
	}
	if cfg.ResourceName == "" {
		cfg.ResourceName = cfg.StoreName
	}
	if cfg.ItemName == "" {
		cfg.ItemName = cfg.Kind.Singular()
	}
	if cfg.RowsPerPage <= 0 {
		cfg.RowsPerPage = DefaultRowsPerPage
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store[T]{
		cfg:    cfg,
		logger: logger.With("store", cfg.StoreName),
		clock:  cfg.Clock,
		state: State[T]{
			Pagination: domain.Pagination{Page: 1, RowsPerPage: cfg.RowsPerPage},
		},
		listCache: newTTLCache[string, domain.Page[T]](cfg.TTL),
		itemCache: newTTLCache[int, T](cfg.TTL),
		subs:      make(map[int]func(State[T])),
	}, nil
}

// Name returns the store name
func (s *Store[T]) Name() string { return s.cfg.StoreName }

// Kind returns the resource type held by the store
func (s *Store[T]) Kind() domain.Kind { return s.cfg.Kind }

// State returns a copy of the current read model.
func (s *Store[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Items returns a copy of the current list.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Items)
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned func unsubscribes.
func (s *Store[T]) Subscribe(fn func(State[T])) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// FetchItems loads one page of the list, optionally filtered by search.
// A fresh cached page is applied without a network call.
func (s *Store[T]) FetchItems(ctx context.Context, page int, search string) {
	if page <= 0 {
		page = 1
	}
	key := listCacheKey(s.cfg.ResourceName, page, search)

	s.mu.Lock()
	now := s.clock()
	if resp, ok := s.listCache.get(key, now); ok {
		s.listGen++
		s.applyPageLocked(resp)
		s.state.Pagination.Page = page
		s.state.SearchQuery = search
		s.state.IsLoading = false
		s.commit()
		s.logger.Debug("cache hit", "key", key)
		s.observeHit("list")
		return
	}

	s.listGen++
	gen := s.listGen
	s.state.IsLoading = true
	s.state.Error = ""
	s.state.Pagination.Page = page
	s.commit()
	s.observeMiss("list")

	resp, err := s.cfg.FetchMany(ctx, page, search)

	s.mu.Lock()
	if err == nil {
		s.listCache.set(key, resp, now)
	}
	if gen != s.listGen {
		s.mu.Unlock()
		s.logger.Debug("discarding stale list response", "key", key)
		return
	}
	if err != nil {
		s.state.Error = domain.ErrorMessage(err, s.cfg.ErrorMessages.FetchMany)
		s.state.Items = nil
		s.state.Pagination.RowsNumber = 0
	} else {
		s.applyPageLocked(resp)
		s.state.SearchQuery = search
	}
	s.state.IsLoading = false
	s.commit()

	if err != nil {
		s.logger.Error("failed to fetch items", "error", err, "page", page, "search", search)
		s.observeError(err)
	} else {
		s.logger.Debug("fetched items", "count", len(resp.Results), "total", resp.Count, "page", page)
	}
}

// FetchItemByID loads one resource into CurrentItem.
func (s *Store[T]) FetchItemByID(ctx context.Context, id int) {
	if id <= 0 {
		s.mu.Lock()
		s.itemGen++
		s.state.CurrentItem = nil
		s.state.IsLoadingItem = false
		s.state.Error = s.InvalidIDMessage()
		s.commit()
		return
	}

	s.mu.Lock()
	now := s.clock()
	if item, ok := s.itemCache.get(id, now); ok {
		s.itemGen++
		s.state.CurrentItem = &item
		s.state.IsLoadingItem = false
		s.commit()
		s.logger.Debug("cache hit", "id", id)
		s.observeHit("item")
		return
	}

	s.itemGen++
	gen := s.itemGen
	s.state.IsLoadingItem = true
	s.state.Error = ""
	s.commit()
	s.observeMiss("item")

	item, err := s.cfg.FetchOne(ctx, id)

	s.mu.Lock()
	if err == nil {
		s.itemCache.set(id, item, now)
	}
	if gen != s.itemGen {
		s.mu.Unlock()
		s.logger.Debug("discarding stale item response", "id", id)
		return
	}
	if err != nil {
		s.state.Error = domain.ErrorMessage(err, s.cfg.ErrorMessages.FetchOne)
		s.state.CurrentItem = nil
	} else {
		s.state.CurrentItem = &item
	}
	s.state.IsLoadingItem = false
	s.commit()

	if err != nil {
		s.logger.Error("failed to fetch item", "error", err, "id", id)
		s.observeError(err)
	}
}

// OnRequest applies a table's paging request and fetches that page.
func (s *Store[T]) OnRequest(ctx context.Context, req domain.TableRequest) {
	s.mu.Lock()
	if req.Pagination.Page > 0 {
		s.state.Pagination.Page = req.Pagination.Page
	}
	if req.Pagination.RowsPerPage > 0 {
		s.state.Pagination.RowsPerPage = req.Pagination.RowsPerPage
	}
	page := s.state.Pagination.Page
	s.mu.Unlock()

	s.FetchItems(ctx, page, req.Filter)
}

// SetItemsFromResponse replaces Items and RowsNumber with resp.
func (s *Store[T]) SetItemsFromResponse(resp domain.Page[T]) {
	s.mu.Lock()
	s.applyPageLocked(resp)
	s.commit()
}

// ClearCache drops both caches. The preloaded catalog is kept.
func (s *Store[T]) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCache.clear()
	s.itemCache.clear()
}

func (s *Store[T]) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.commit()
}

func (s *Store[T]) ClearCurrentItem() {
	s.mu.Lock()
	s.state.CurrentItem = nil
	s.commit()
}

// InvalidIDMessage is the error shown for ids the catalog never issues.
func (s *Store[T]) InvalidIDMessage() string {
	return fmt.Sprintf("Invalid %s ID", s.cfg.ItemName)
}

// CacheSize returns the number of list and item entries, fresh or not.
func (s *Store[T]) CacheSize() (list, item int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCache.len(), s.itemCache.len()
}

func (s *Store[T]) applyPageLocked(resp domain.Page[T]) {
	s.state.Items = resp.Results
	s.state.Pagination.RowsNumber = resp.Count
}

func (s *Store[T]) snapshotLocked() State[T] {
	st := s.state
	st.Items = slices.Clone(s.state.Items)
	if s.state.CurrentItem != nil {
		item := *s.state.CurrentItem
		st.CurrentItem = &item
	}
	return st
}

// commit snapshots the state, releases the lock and notifies subscribers.
// Must be called with s.mu held.
func (s *Store[T]) commit() {
	snap := s.snapshotLocked()
	subs := make([]func(State[T]), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store[T]) observeHit(cache string) {
	if s.cfg.Observer != nil {
		s.cfg.Observer.CacheHit(s.cfg.StoreName, cache)
	}
}

func (s *Store[T]) observeMiss(cache string) {
	if s.cfg.Observer != nil {
		s.cfg.Observer.CacheMiss(s.cfg.StoreName, cache)
	}
}

func (s *Store[T]) observeError(err error) {
	if s.cfg.Observer == nil {
		return
	}
	code := domain.CodeUnknown
	var fe *domain.FetchError
	if errors.As(err, &fe) {
		code = fe.Code
	}
	s.cfg.Observer.FetchError(s.cfg.StoreName, code)
}
