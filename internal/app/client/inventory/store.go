package inventory

import (
	"context"

	"beerbasement/internal/domain/beer"
)

// Store удаленное хранилище коллекции (REST бэкенд)
type Store interface {
	List(ctx context.Context) ([]beer.Record, error)
	ListByOwner(ctx context.Context, owner string) ([]beer.Record, error)
	Create(ctx context.Context, rec beer.Record) (beer.Record, error)
	Update(ctx context.Context, id int, rec beer.Record) (beer.Record, error)
	Delete(ctx context.Context, id int) error
}
