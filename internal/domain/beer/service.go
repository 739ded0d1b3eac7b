package beer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context) ([]Record, error)
	ListByOwner(ctx context.Context, owner string) ([]Record, error)
	Find(ctx context.Context, id int) (*Record, error)
	Create(ctx context.Context, rec Record) (*Record, error)
	Update(ctx context.Context, id int, rec Record) (*Record, error)
	Delete(ctx context.Context, id int) (*Record, error)
}

// Service business logic for the beer collection
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a new beer service
func NewService(repo Repository, log *slog.Logger) Servicer {
	return &Service{
		repo: repo,
		log:  log.With("component", "beer_service"),
	}
}

// List returns every beer in the store
func (s *Service) List(ctx context.Context) ([]Record, error) {
	beers, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list beers", "error", err)
		return nil, fmt.Errorf("list beers: %w", err)
	}
	return nonNil(beers), nil
}

// ListByOwner returns beers belonging to one user
func (s *Service) ListByOwner(ctx context.Context, owner string) ([]Record, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, ErrOwnerMissing
	}

	beers, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		s.log.Error("failed to list beers by owner", "owner", owner, "error", err)
		return nil, fmt.Errorf("list beers by owner: %w", err)
	}
	return nonNil(beers), nil
}

// Find returns a beer by ID
func (s *Service) Find(ctx context.Context, id int) (*Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to find beer", "id", id, "error", err)
		return nil, fmt.Errorf("find beer: %w", err)
	}
	return rec, nil
}

// Create stores a new beer. Any ID sent by the client is ignored.
func (s *Service) Create(ctx context.Context, rec Record) (*Record, error) {
	if err := s.validate(rec); err != nil {
		return nil, err
	}

	rec = rec.WithoutID()
	id, err := s.repo.Create(ctx, &rec)
	if err != nil {
		s.log.Error("failed to create beer", "owner", rec.Owner, "error", err)
		return nil, fmt.Errorf("create beer: %w", err)
	}
	rec.ID = id

	s.log.Info("beer created", "id", id, "owner", rec.Owner, "brewery", rec.Brewery)
	return &rec, nil
}

// Update replaces the stored beer with the given body
func (s *Service) Update(ctx context.Context, id int, rec Record) (*Record, error) {
	if err := s.validate(rec); err != nil {
		return nil, err
	}

	if _, err := s.Find(ctx, id); err != nil {
		return nil, err
	}

	rec.ID = id
	if err := s.repo.Update(ctx, &rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to update beer", "id", id, "error", err)
		return nil, fmt.Errorf("update beer: %w", err)
	}

	s.log.Info("beer updated", "id", id)
	return &rec, nil
}

// Delete removes a beer and returns what was removed
func (s *Service) Delete(ctx context.Context, id int) (*Record, error) {
	rec, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to delete beer", "id", id, "error", err)
		return nil, fmt.Errorf("delete beer: %w", err)
	}

	s.log.Info("beer deleted", "id", id)
	return rec, nil
}

func (s *Service) validate(rec Record) error {
	if strings.TrimSpace(rec.Owner) == "" {
		return ErrOwnerMissing
	}
	if err := rec.Validate(); err != nil {
		return err
	}
	return nil
}

func nonNil(beers []Record) []Record {
	if beers == nil {
		return []Record{}
	}
	return beers
}
