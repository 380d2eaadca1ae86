package data

import "context"

// Repository is the storage contract for rows that belong to exactly one user.
// Every method is scoped by owner, so a foreign id behaves like a missing one.
type Repository[T interface{}, I interface{}] interface {
	List(ctx context.Context, owner int64, params QueryParams) (QueryResults[T], error)
	Get(ctx context.Context, owner int64, itemId int64) (T, error)
	Create(ctx context.Context, owner int64, input I) (T, error)
	Update(ctx context.Context, owner int64, itemId int64, input I) (T, error)
	Delete(ctx context.Context, owner int64, itemId int64) error
	Count(ctx context.Context, owner int64) (int, error)
}
