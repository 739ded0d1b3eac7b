package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"beerbasement/internal/domain/beer"
)

// fakeClient хранит ключи в памяти
type fakeClient struct {
	mu      sync.Mutex
	values  map[string]string
	sets    map[string]map[string]bool
	failGet bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: map[string]string{}, sets: map[string]map[string]bool{}}
}

func (f *fakeClient) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Incr(_ context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, _ := strconv.ParseInt(f.values[key], 10, 64)
	n++
	f.values[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func (f *fakeClient) SAdd(_ context.Context, key string, members ...interface{}) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sets[key] == nil {
		f.sets[key] = map[string]bool{}
	}
	for _, m := range members {
		f.sets[key][m.(string)] = true
	}
	return redis.NewIntResult(int64(len(members)), nil)
}

func (f *fakeClient) SMembers(_ context.Context, key string) *redis.StringSliceCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for m := range f.sets[key] {
		out = append(out, m)
	}
	return redis.NewStringSliceResult(out, nil)
}

func (f *fakeClient) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.values, k)
		delete(f.sets, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func (f *fakeClient) Ping(_ context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

// MockRepository is a mock implementation of the beer.Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]beer.Record, error) {
	args := m.Called(ctx)
	return args.Get(0).([]beer.Record), args.Error(1)
}

func (m *MockRepository) ListByOwner(ctx context.Context, owner string) ([]beer.Record, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).([]beer.Record), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id int) (*beer.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*beer.Record), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, rec *beer.Record) (int, error) {
	args := m.Called(ctx, rec)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, rec *beer.Record) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func TestCachedRepository_ListIsCached(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return([]beer.Record{{ID: 1, Brewery: "Carlsberg"}}, nil).Once()
	repo.On("ListByOwner", mock.Anything, "anna").Return([]beer.Record{}, nil).Once()

	cache := NewCachedRepository(repo, newFakeClient(), time.Minute, slog.Default())

	for i := 0; i < 3; i++ {
		beers, err := cache.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Carlsberg", beers[0].Brewery)

		mine, err := cache.ListByOwner(ctx, "anna")
		require.NoError(t, err)
		assert.Empty(t, mine)
	}

	repo.AssertNumberOfCalls(t, "List", 1)
	repo.AssertNumberOfCalls(t, "ListByOwner", 1)
}

func TestCachedRepository_MutationInvalidates(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return([]beer.Record{}, nil)
	repo.On("ListByOwner", mock.Anything, "anna").Return([]beer.Record{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(7, nil)
	repo.On("Delete", mock.Anything, 7).Return(beer.ErrNotFound)

	client := newFakeClient()
	cache := NewCachedRepository(repo, client, time.Minute, slog.Default())

	_, _ = cache.List(ctx)
	_, _ = cache.ListByOwner(ctx, "anna")
	assert.Len(t, client.values, 2)

	id, err := cache.Create(ctx, &beer.Record{Owner: "anna"})
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.Equal(t, map[string]string{keyGen: "1"}, client.values)

	_, _ = cache.List(ctx)
	repo.AssertNumberOfCalls(t, "List", 2)
	assert.Contains(t, client.values, versioned(keyAll, 1))

	// неуспешное изменение кэш не трогает
	assert.ErrorIs(t, cache.Delete(ctx, 7), beer.ErrNotFound)
	assert.Len(t, client.values, 2)
}

// Чтение, начатое до изменения, не должно оставить старый список в кэше
func TestCachedRepository_ReadRacingMutation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	client := newFakeClient()
	cache := NewCachedRepository(repo, client, time.Minute, slog.Default())

	old := []beer.Record{{ID: 1, Brewery: "Carlsberg"}}
	fresh := []beer.Record{{ID: 1, Brewery: "Carlsberg"}, {ID: 2, Brewery: "Heineken"}}

	// изменение проходит, пока первое чтение ждет хранилище
	repo.On("List", mock.Anything).Return(old, nil).Run(func(mock.Arguments) {
		cache.invalidate(ctx)
	}).Once()
	repo.On("List", mock.Anything).Return(fresh, nil).Once()

	beers, err := cache.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, old, beers)

	beers, err = cache.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, beers)

	// теперь из кэша
	beers, err = cache.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, beers)
	repo.AssertNumberOfCalls(t, "List", 2)
}

func TestCachedRepository_RedisDown(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return([]beer.Record{{ID: 2}}, nil)

	client := newFakeClient()
	client.failGet = true
	cache := NewCachedRepository(repo, client, time.Minute, slog.Default())

	beers, err := cache.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, beers, 1)
}

func TestCachedRepository_StorageError(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything).Return([]beer.Record(nil), errors.New("db down"))

	client := newFakeClient()
	cache := NewCachedRepository(repo, client, time.Minute, slog.Default())

	_, err := cache.List(context.Background())
	assert.Error(t, err)
	assert.Empty(t, client.values)
	require.NoError(t, cache.Ping(context.Background()))
}
