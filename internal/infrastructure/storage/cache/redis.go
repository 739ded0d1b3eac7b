package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/exp/slog"

	"beerbasement/internal/domain/beer"
)

const (
	keyAll      = "beers:all"
	keyOwner    = "beers:owner:"
	keyIndex    = "beers:keys"
	keyGen      = "beers:gen"
	pingTimeout = 5 * time.Second
)

// Client команды Redis, которые использует кэш. *redis.Client ему удовлетворяет.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// Connect подключается к Redis и проверяет соединение
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// CachedRepository кэширует списки коллекции поверх другого репозитория.
// Любое изменение увеличивает поколение кэша и сбрасывает все списки.
// Ключ списка включает поколение, поэтому чтение, начатое до изменения,
// пишет результат в ключ, который больше никто не читает.
type CachedRepository struct {
	next   beer.Repository
	client Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewCachedRepository(next beer.Repository, client Client, ttl time.Duration, log *slog.Logger) *CachedRepository {
	return &CachedRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    log.With("component", "redis_cache"),
	}
}

func (r *CachedRepository) List(ctx context.Context) ([]beer.Record, error) {
	return r.cached(ctx, keyAll, r.next.List)
}

func (r *CachedRepository) ListByOwner(ctx context.Context, owner string) ([]beer.Record, error) {
	return r.cached(ctx, keyOwner+owner, func(ctx context.Context) ([]beer.Record, error) {
		return r.next.ListByOwner(ctx, owner)
	})
}

func (r *CachedRepository) Get(ctx context.Context, id int) (*beer.Record, error) {
	return r.next.Get(ctx, id)
}

func (r *CachedRepository) Create(ctx context.Context, rec *beer.Record) (int, error) {
	id, err := r.next.Create(ctx, rec)
	if err == nil {
		r.invalidate(ctx)
	}
	return id, err
}

func (r *CachedRepository) Update(ctx context.Context, rec *beer.Record) error {
	err := r.next.Update(ctx, rec)
	if err == nil {
		r.invalidate(ctx)
	}
	return err
}

func (r *CachedRepository) Delete(ctx context.Context, id int) error {
	err := r.next.Delete(ctx, id)
	if err == nil {
		r.invalidate(ctx)
	}
	return err
}

// cached читает список из Redis, при промахе или ошибке Redis идет в репозиторий
func (r *CachedRepository) cached(ctx context.Context, list string, load func(context.Context) ([]beer.Record, error)) ([]beer.Record, error) {
	gen, err := r.generation(ctx)
	if err != nil {
		r.log.Warn("failed to read cache generation, falling back to storage", "error", err)
		return load(ctx)
	}
	key := versioned(list, gen)

	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var beers []beer.Record
		if err := json.Unmarshal(data, &beers); err == nil {
			r.log.Debug("cache hit", "key", key, "count", len(beers))
			return beers, nil
		}
		r.log.Warn("corrupt cache entry", "key", key)
	case errors.Is(err, redis.Nil):
		r.log.Debug("cache miss", "key", key)
	default:
		r.log.Warn("failed to read cache, falling back to storage", "key", key, "error", err)
	}

	beers, err := load(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, beers)
	return beers, nil
}

func (r *CachedRepository) store(ctx context.Context, key string, beers []beer.Record) {
	data, err := json.Marshal(beers)
	if err != nil {
		r.log.Warn("failed to marshal beers for cache", "error", err)
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.log.Warn("failed to populate cache", "key", key, "error", err)
		return
	}
	if err := r.client.SAdd(ctx, keyIndex, key).Err(); err != nil {
		r.log.Warn("failed to index cache key", "key", key, "error", err)
	}
}

func (r *CachedRepository) generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, keyGen).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func versioned(key string, gen int64) string {
	return fmt.Sprintf("%s@%d", key, gen)
}

func (r *CachedRepository) invalidate(ctx context.Context) {
	// сначала поколение: новые чтения сразу уходят на новые ключи
	if err := r.client.Incr(ctx, keyGen).Err(); err != nil {
		r.log.Warn("failed to bump cache generation", "error", err)
	}

	keys, err := r.client.SMembers(ctx, keyIndex).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		r.log.Warn("failed to list cache keys", "error", err)
	}
	keys = append(keys, keyIndex)
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn("failed to invalidate cache", "error", err)
	}
}

// Ping проверяет Redis и хранилище за ним
func (r *CachedRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	if p, ok := r.next.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
