package store

import (
	"context"
	"slices"
	"sync"

	"github.com/mmcdole/holonet/internal/domain"
)

type preloadState[T domain.Resource] struct {
	mu       sync.Mutex
	done     bool
	inflight chan struct{}
	catalog  []T
}

// EnsureFullyLoaded walks every list page until the last one and installs the
// accumulated set as Items. Once a full pass succeeds, later calls return
// immediately. A failing page ends the walk early: what was loaded so far is
// still installed, the failure is logged, and the next call tries again.
// Concurrent callers share one walk.
//
// The returned error is only ever ctx.Err() of a caller that stopped waiting.
func (s *Store[T]) EnsureFullyLoaded(ctx context.Context) (int, error) {
	p := &s.preload

	p.mu.Lock()
	if p.done {
		n := len(p.catalog)
		p.mu.Unlock()
		return n, nil
	}
	if ch := p.inflight; ch != nil {
		p.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
		p.mu.Lock()
		n := len(p.catalog)
		p.mu.Unlock()
		return n, nil
	}
	ch := make(chan struct{})
	p.inflight = ch
	p.mu.Unlock()

	all, pages, err := fetchAll(ctx, s.cfg.FetchMany)

	p.mu.Lock()
	// a failed pass never shrinks what an earlier pass loaded
	if err == nil || len(all) > len(p.catalog) {
		p.catalog = all
	}
	p.done = err == nil
	p.inflight = nil
	n := len(p.catalog)
	loaded := p.catalog
	p.mu.Unlock()

	if n > 0 {
		s.SetItemsFromResponse(domain.Page[T]{Count: n, Results: slices.Clone(loaded)})
	}
	close(ch)

	if err != nil {
		s.logger.Warn("preload stopped early", "error", err, "pages", pages, "loaded", len(all))
		s.observeError(err)
	} else {
		s.logger.Debug("preloaded catalog", "pages", pages, "count", len(all))
	}
	return n, nil
}

// Catalog returns the preloaded set, in load order, or the current Items
// when no preload has produced anything yet.
func (s *Store[T]) Catalog() []T {
	s.preload.mu.Lock()
	cat := s.preload.catalog
	s.preload.mu.Unlock()
	if cat != nil {
		return slices.Clone(cat)
	}
	return s.Items()
}

// FullyLoaded reports whether a preload pass has completed.
func (s *Store[T]) FullyLoaded() bool {
	s.preload.mu.Lock()
	defer s.preload.mu.Unlock()
	return s.preload.done
}

// fetchAll is a generic pagination helper. On failure it returns the pages
// accumulated before the failing one.
func fetchAll[T any](
	ctx context.Context,
	fetch domain.FetchManyFunc[T],
) ([]T, int, error) {
	var all []T
	page := 1

	for {
		select {
		case <-ctx.Done():
			return all, page - 1, ctx.Err()
		default:
		}

		resp, err := fetch(ctx, page, "")
		if err != nil {
			return all, page - 1, err
		}
		all = append(all, resp.Results...)

		if !resp.HasNext() {
			return all, page, nil
		}
		page++
	}
}
