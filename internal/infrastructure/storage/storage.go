package storage

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"beerbasement/internal/app/server/config"
	"beerbasement/internal/domain/beer"
	"beerbasement/internal/infrastructure/migration"
	"beerbasement/internal/infrastructure/storage/cache"
	"beerbasement/internal/infrastructure/storage/postgres"
	"beerbasement/internal/infrastructure/storage/sqlite"
)

// Storage репозиторий коллекции вместе с проверкой доступности и закрытием
type Storage interface {
	beer.Repository
	Ping(ctx context.Context) error
	Close() error
}

type composite struct {
	beer.Repository
	ping    func(ctx context.Context) error
	closers []func() error
}

func (c *composite) Ping(ctx context.Context) error {
	return c.ping(ctx)
}

func (c *composite) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open выбирает хранилище по конфигурации: Postgres при DATABASE_URI, иначе SQLite.
// При REDIS_ADDR списки кэшируются в Redis.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (Storage, error) {
	var st *composite

	if cfg.UsePostgres() {
		pg, err := postgres.New(ctx, cfg, migration.DefaultEngine, log)
		if err != nil {
			return nil, err
		}
		st = &composite{
			Repository: postgres.NewBeerRepository(pg.Pool(), log),
			ping:       pg.Ping,
			closers:    []func() error{pg.Close},
		}
		log.Info("using postgres storage")
	} else {
		lite, err := sqlite.New(cfg.DB.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		st = &composite{
			Repository: lite,
			ping:       lite.Ping,
			closers:    []func() error{lite.Close},
		}
		log.Info("using sqlite storage", "path", cfg.DB.SQLitePath)
	}

	if cfg.Cache.RedisAddr == "" {
		return st, nil
	}

	client, err := cache.Connect(ctx, cfg.Cache.RedisAddr)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	cached := cache.NewCachedRepository(st.Repository, client, cfg.Cache.TTL, log)
	dbPing := st.ping

	st.Repository = cached
	st.ping = func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return dbPing(ctx)
	}
	st.closers = append(st.closers, client.Close)
	log.Info("list cache enabled", "redis", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)

	return st, nil
}
