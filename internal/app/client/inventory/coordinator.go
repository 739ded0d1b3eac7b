package inventory

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"beerbasement/internal/domain/beer"
)

// Coordinator синхронизирует кэш коллекции с удаленным хранилищем.
//
// Кэшем владеет одна горутина: все переходы состояния и результаты сетевых
// вызовов применяются в ней по очереди. Каждая операция сразу возвращает канал,
// в который придет ровно один итог (nil или ошибка), после чего канал закрывается.
type Coordinator struct {
	store Store
	owner string
	log   *slog.Logger

	cache *Cache
	// номер последней запущенной загрузки и последней примененной
	seq      uint64
	applied  uint64
	inflight int

	events chan func()
	quit   chan struct{}
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	mu     sync.RWMutex
	state  State
	subs   []chan State
	closed bool
}

// NewCoordinator создает кэш для сессии пользователя owner и запускает его горутину
func NewCoordinator(store Store, owner string, log *slog.Logger) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		store:  store,
		owner:  owner,
		log:    log.With("component", "inventory", "owner", owner),
		cache:  NewCache(),
		events: make(chan func()),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
	c.state = c.cache.State()
	go c.loop()
	return c
}

// Owner пользователь сессии
func (c *Coordinator) Owner() string {
	return c.owner
}

func (c *Coordinator) loop() {
	defer close(c.done)
	for {
		select {
		case fn := <-c.events:
			fn()
		case <-c.quit:
			return
		}
	}
}

// submit передает функцию горутине кэша. false - координатор закрыт.
func (c *Coordinator) submit(fn func()) bool {
	select {
	case c.events <- fn:
		return true
	case <-c.quit:
		return false
	}
}

func (c *Coordinator) run(fn func(done chan<- error)) <-chan error {
	done := make(chan error, 1)
	if !c.submit(func() { fn(done) }) {
		finish(done, ErrClosed)
	}
	return done
}

// Fetch загружает всю коллекцию (GET /beers)
func (c *Coordinator) Fetch() <-chan error {
	return c.run(func(done chan<- error) {
		c.startFetch("fetch", c.store.List, done)
	})
}

// FetchByOwner загружает коллекцию пользователя (GET /beers/{username})
func (c *Coordinator) FetchByOwner(owner string) <-chan error {
	return c.run(func(done chan<- error) {
		c.startFetch("fetch_by_owner", func(ctx context.Context) ([]beer.Record, error) {
			return c.store.ListByOwner(ctx, owner)
		}, done)
	})
}

// Create сохраняет новую запись и после успеха перечитывает коллекцию
func (c *Coordinator) Create(rec beer.Record) <-chan error {
	return c.mutate("create", func() error {
		if !rec.IsNew() {
			return fmt.Errorf("%w: %d", ErrAlreadySaved, rec.ID)
		}
		return rec.Validate()
	}, func(ctx context.Context) error {
		_, err := c.store.Create(ctx, rec)
		return err
	})
}

// Update заменяет запись id и после успеха перечитывает коллекцию
func (c *Coordinator) Update(id int, rec beer.Record) <-chan error {
	return c.mutate("update", func() error {
		if id <= 0 {
			return ErrMissingRecord
		}
		return rec.Validate()
	}, func(ctx context.Context) error {
		_, err := c.store.Update(ctx, id, rec)
		return err
	})
}

// Delete удаляет запись id и после успеха перечитывает коллекцию
func (c *Coordinator) Delete(id int) <-chan error {
	return c.mutate("delete", func() error {
		if id <= 0 {
			return ErrMissingRecord
		}
		return nil
	}, func(ctx context.Context) error {
		return c.store.Delete(ctx, id)
	})
}

// SortBy пересобирает видимый список, сеть не используется
func (c *Coordinator) SortBy(field SortField, ascending bool) <-chan error {
	return c.run(func(done chan<- error) {
		err := c.cache.SortBy(field, ascending)
		if err == nil {
			c.publish()
		}
		finish(done, err)
	})
}

// FilterByTitle фильтрует видимый список по name/brewery.
// Пустая строка сбрасывает фильтр и перечитывает коллекцию владельца.
func (c *Coordinator) FilterByTitle(fragment string) <-chan error {
	return c.run(func(done chan<- error) {
		if fragment == "" {
			c.cache.ClearView()
			c.publish()
			c.startFetch("fetch_by_owner", func(ctx context.Context) ([]beer.Record, error) {
				return c.store.ListByOwner(ctx, c.owner)
			}, done)
			return
		}
		c.cache.Filter(fragment)
		c.publish()
		finish(done, nil)
	})
}

// Reset очищает кэш при выходе. Ответы уже запущенных загрузок будут отброшены.
func (c *Coordinator) Reset() <-chan error {
	return c.run(func(done chan<- error) {
		c.cache.Reset()
		c.applied = c.seq
		c.cache.SetLoading(c.inflight > 0)
		c.publish()
		finish(done, nil)
	})
}

// State возвращает последний опубликованный снимок
func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Subscribe возвращает канал снимков состояния. Буфер на один снимок,
// медленный подписчик получает только самый свежий.
// После Close канал отдает последний снимок и сразу закрыт.
func (c *Coordinator) Subscribe() <-chan State {
	ch := make(chan State, 1)
	c.mu.Lock()
	defer c.mu.Unlock()

	ch <- c.state
	if c.closed {
		close(ch)
		return ch
	}
	c.subs = append(c.subs, ch)
	return ch
}

// Close останавливает горутину кэша. Незавершенные операции получают ErrClosed.
func (c *Coordinator) Close() {
	c.once.Do(func() {
		close(c.quit)
		c.cancel()
		<-c.done
		c.wg.Wait()

		c.mu.Lock()
		for _, ch := range c.subs {
			close(ch)
		}
		c.subs = nil
		c.closed = true
		c.mu.Unlock()
	})
}

// startFetch выполняется в горутине кэша
func (c *Coordinator) startFetch(kind string, call func(context.Context) ([]beer.Record, error), done chan<- error) {
	c.seq++
	seq := c.seq
	c.inflight++
	c.cache.SetLoading(true)
	c.publish()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		beers, err := call(c.ctx)
		if !c.submit(func() { c.finishFetch(kind, seq, beers, err, done) }) {
			finish(done, ErrClosed)
		}
	}()
}

func (c *Coordinator) finishFetch(kind string, seq uint64, beers []beer.Record, err error, done chan<- error) {
	c.inflight--
	c.cache.SetLoading(c.inflight > 0)

	if seq <= c.applied {
		c.log.Debug("stale response dropped", "kind", kind, "seq", seq, "applied", c.applied)
		c.publish()
		finish(done, err)
		return
	}
	c.applied = seq

	if err != nil {
		c.log.Warn("fetch failed", "kind", kind, "error", err)
		c.cache.Fail(err.Error())
	} else {
		if dropped := c.cache.Replace(beers); dropped > 0 {
			c.log.Warn("records without id ignored", "kind", kind, "count", dropped)
		}
		c.log.Info("beers fetched", "kind", kind, "count", len(beers))
	}

	c.publish()
	finish(done, err)
}

// mutate проверяет запись, вызывает хранилище и при успехе запускает полную загрузку.
// Итог операции приходит после завершения этой загрузки.
func (c *Coordinator) mutate(kind string, validate func() error, call func(context.Context) error) <-chan error {
	return c.run(func(done chan<- error) {
		if err := validate(); err != nil {
			c.log.Warn("mutation rejected", "kind", kind, "error", err)
			c.cache.Fail(err.Error())
			c.publish()
			finish(done, err)
			return
		}

		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			err := call(c.ctx)
			ok := c.submit(func() {
				if err != nil {
					c.log.Warn("mutation failed", "kind", kind, "error", err)
					c.cache.Fail(err.Error())
					c.publish()
					finish(done, err)
					return
				}
				c.log.Info("mutation done", "kind", kind)
				c.startFetch("fetch", c.store.List, done)
			})
			if !ok {
				finish(done, ErrClosed)
			}
		}()
	})
}

// publish выполняется в горутине кэша
func (c *Coordinator) publish() {
	s := c.cache.State()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
	for _, ch := range c.subs {
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}

func finish(done chan<- error, err error) {
	done <- err
	close(done)
}
