package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"beerbasement/internal/domain/beer"
)

type BeerRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewBeerRepository(pool *pgxpool.Pool, log *slog.Logger) *BeerRepository {
	return &BeerRepository{
		pool: pool,
		log:  log.With("component", "beer_repository"),
	}
}

const selectBeers = `
	SELECT id, owner, brewery, name, style, abv, volume, picture_url, quantity
	FROM beers`

func (r *BeerRepository) List(ctx context.Context) ([]beer.Record, error) {
	return r.list(ctx, selectBeers+` ORDER BY id`)
}

func (r *BeerRepository) ListByOwner(ctx context.Context, owner string) ([]beer.Record, error) {
	return r.list(ctx, selectBeers+` WHERE owner = $1 ORDER BY id`, owner)
}

func (r *BeerRepository) Get(ctx context.Context, id int) (*beer.Record, error) {
	row := r.pool.QueryRow(ctx, selectBeers+` WHERE id = $1`, id)

	rec, err := scanBeer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, beer.ErrNotFound
		}
		r.log.Error("failed to get beer", "id", id, "error", err)
		return nil, fmt.Errorf("get beer: %w", err)
	}
	return &rec, nil
}

func (r *BeerRepository) Create(ctx context.Context, rec *beer.Record) (int, error) {
	const query = `
		INSERT INTO beers (owner, brewery, name, style, abv, volume, picture_url, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id int
	err := r.pool.QueryRow(ctx, query,
		rec.Owner, rec.Brewery, rec.Name, rec.Style,
		rec.ABV, rec.Volume, rec.PictureURL, rec.Quantity,
	).Scan(&id)
	if err != nil {
		r.log.Error("failed to create beer", "owner", rec.Owner, "error", err)
		return 0, fmt.Errorf("create beer: %w", err)
	}
	return id, nil
}

func (r *BeerRepository) Update(ctx context.Context, rec *beer.Record) error {
	const query = `
		UPDATE beers
		SET owner = $2, brewery = $3, name = $4, style = $5,
		    abv = $6, volume = $7, picture_url = $8, quantity = $9
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		rec.ID, rec.Owner, rec.Brewery, rec.Name, rec.Style,
		rec.ABV, rec.Volume, rec.PictureURL, rec.Quantity,
	)
	if err != nil {
		r.log.Error("failed to update beer", "id", rec.ID, "error", err)
		return fmt.Errorf("update beer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return beer.ErrNotFound
	}
	return nil
}

func (r *BeerRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM beers WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete beer", "id", id, "error", err)
		return fmt.Errorf("delete beer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return beer.ErrNotFound
	}
	return nil
}

func (r *BeerRepository) list(ctx context.Context, query string, args ...any) ([]beer.Record, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list beers", "error", err)
		return nil, fmt.Errorf("list beers: %w", err)
	}
	defer rows.Close()

	beers := make([]beer.Record, 0)
	for rows.Next() {
		rec, err := scanBeer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan beer: %w", err)
		}
		beers = append(beers, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate beers: %w", err)
	}
	return beers, nil
}

func scanBeer(row pgx.Row) (beer.Record, error) {
	var rec beer.Record
	err := row.Scan(
		&rec.ID, &rec.Owner, &rec.Brewery, &rec.Name, &rec.Style,
		&rec.ABV, &rec.Volume, &rec.PictureURL, &rec.Quantity,
	)
	return rec, err
}
