// Package relation joins a parent resource's url lists against the
// fully loaded catalog of a sibling store.
package relation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmcdole/holonet/internal/domain"
)

// DefaultRowsPerPage is the page size of related tables
const DefaultRowsPerPage = 5

// Source is the slice of a store the resolver needs.
// *store.Store[T] satisfies it.
type Source[T domain.Resource] interface {
	EnsureFullyLoaded(ctx context.Context) (int, error)
	Catalog() []T
}

// Query is a related table's local filter and paging state.
type Query struct {
	Filter      string
	Page        int
	RowsPerPage int
}

// Result is one page of related rows.
type Result[T domain.Resource] struct {
	Rows    []T
	Total   int // rows left after filtering
	Matched int // referenced rows found before filtering
}

// PageCount returns the number of local pages for rowsPerPage.
func (r Result[T]) PageCount(rowsPerPage int) int {
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}
	if r.Total == 0 {
		return 1
	}
	return (r.Total + rowsPerPage - 1) / rowsPerPage
}

// Resolver resolves url lists into resources of one kind.
type Resolver[T domain.Resource] struct {
	source Source[T]
	logger *slog.Logger
}

// NewResolver binds a resolver to a sibling source.
func NewResolver[T domain.Resource](source Source[T], logger *slog.Logger) *Resolver[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver[T]{source: source, logger: logger}
}

// Preload makes sure the sibling's full catalog is loaded.
func (r *Resolver[T]) Preload(ctx context.Context) int {
	n, err := r.source.EnsureFullyLoaded(ctx)
	if err != nil {
		r.logger.Warn("related preload abandoned", "error", err)
	}
	return n
}

// Resolve returns the sibling resources referenced by urls, in the sibling's
// load order, filtered by q.Filter and sliced to q's page.
func (r *Resolver[T]) Resolve(urls []string, q Query) Result[T] {
	matched := Match(r.source.Catalog(), urls)
	filtered := Filter(matched, q.Filter)
	return Result[T]{
		Rows:    Paginate(filtered, q.Page, q.RowsPerPage),
		Total:   len(filtered),
		Matched: len(matched),
	}
}

// Match keeps the items whose id appears in urls. Urls without an id are
// skipped.
func Match[T domain.Resource](items []T, urls []string) []T {
	ids := make(map[int]struct{}, len(urls))
	for _, u := range urls {
		if id, ok := domain.ParseID(u); ok {
			ids[id] = struct{}{}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var out []T
	for _, it := range items {
		id, ok := domain.ParseID(it.ResourceURL())
		if !ok {
			continue
		}
		if _, want := ids[id]; want {
			out = append(out, it)
		}
	}
	return out
}

// Filter keeps the items where any search field contains term,
// case-insensitively. An empty term keeps everything.
func Filter[T domain.Resource](items []T, term string) []T {
	term = strings.ToLower(term)
	if term == "" {
		return items
	}

	var out []T
	for _, it := range items {
		for _, f := range it.SearchFields() {
			if strings.Contains(strings.ToLower(f), term) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Paginate returns items[(page-1)*rows : page*rows], clamped.
func Paginate[T any](items []T, page, rows int) []T {
	if page <= 0 {
		page = 1
	}
	if rows <= 0 {
		rows = DefaultRowsPerPage
	}
	start := (page - 1) * rows
	if start >= len(items) {
		return nil
	}
	end := min(start+rows, len(items))
	return items[start:end]
}
