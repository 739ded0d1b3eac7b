package beer

import (
	"context"
)

// Repository хранилище записей о пиве
type Repository interface {
	List(ctx context.Context) ([]Record, error)
	ListByOwner(ctx context.Context, owner string) ([]Record, error)
	Get(ctx context.Context, id int) (*Record, error)
	Create(ctx context.Context, rec *Record) (int, error)
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id int) error
}
