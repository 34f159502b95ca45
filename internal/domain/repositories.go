package domain

import "context"

// ResourceRepository provides network access to one resource type
// (implemented by the catalog client, one value per Kind)
type ResourceRepository[T Resource] interface {
	// FetchMany returns one page of resources; search is optional
	FetchMany(ctx context.Context, page int, search string) (Page[T], error)

	// FetchOne returns a single resource by id
	FetchOne(ctx context.Context, id int) (T, error)
}

// FetchManyFunc is the function form of ResourceRepository.FetchMany
type FetchManyFunc[T any] func(ctx context.Context, page int, search string) (Page[T], error)

// FetchOneFunc is the function form of ResourceRepository.FetchOne
type FetchOneFunc[T any] func(ctx context.Context, id int) (T, error)
