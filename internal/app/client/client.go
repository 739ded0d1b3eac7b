package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/exp/slog"

	"beerbasement/internal/app/client/config"
	"beerbasement/internal/app/client/extract"
	"beerbasement/internal/app/client/inventory"
	"beerbasement/internal/app/client/remote"
	"beerbasement/internal/app/client/vision"
	"beerbasement/internal/domain/beer"
)

// ErrNoUser пользователь сессии не задан
var ErrNoUser = errors.New("пользователь не задан (BEER_USER)")

type App struct {
	config    *config.Config
	log       *slog.Logger
	annotator vision.Annotator
	extractor *extract.Extractor
	remote    *remote.Client
	inventory *inventory.Coordinator
	once      sync.Once
	wg        sync.WaitGroup
}

// ScanResult итог асинхронного распознавания
type ScanResult struct {
	Draft extract.Draft
	Err   error
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	gazetteer := extract.DefaultGazetteer()
	if cfg.GazetteerPath != "" {
		g, err := extract.LoadGazetteer(cfg.GazetteerPath)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки справочника: %w", err)
		}
		gazetteer = g
	}

	rc, err := remote.NewClient(remote.Config{
		BaseURL: cfg.ServerAddress,
		Token:   cfg.APIToken,
		Timeout: cfg.Timeout(),
	}, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации HTTP клиента: %w", err)
	}

	annotator := vision.NewClient(vision.Config{
		Endpoint: cfg.VisionEndpoint,
		APIKey:   cfg.VisionAPIKey,
		Token:    cfg.VisionToken,
		Timeout:  cfg.Timeout(),
	}, log)

	app := newApp(cfg, log, annotator, extract.New(gazetteer), rc)
	app.remote = rc

	log.Debug("Клиент инициализирован",
		"server", cfg.ServerAddress,
		"user", cfg.User,
		"gazetteer", gazetteer.Version,
	)
	return app, nil
}

func newApp(cfg *config.Config, log *slog.Logger, annotator vision.Annotator, extractor *extract.Extractor, store inventory.Store) *App {
	return &App{
		config:    cfg,
		log:       log.With("component", "app"),
		annotator: annotator,
		extractor: extractor,
		inventory: inventory.NewCoordinator(store, cfg.User, log),
	}
}

// Scan распознает снимок и извлекает из него черновик записи.
// При ошибке распознавания возвращается пустой черновик и ошибка.
func (a *App) Scan(ctx context.Context, image []byte) (extract.Draft, error) {
	bundle, err := a.annotator.Annotate(ctx, image)
	if err != nil {
		a.log.Warn("Ошибка распознавания", "error", err)
		return extract.Draft{}, err
	}

	draft := a.extractor.Extract(bundle)
	a.log.Debug("Черновик извлечен",
		"beverage", draft.IsBeverage,
		"brewery", draft.Brewery.Value,
		"abv", draft.ABV.Value,
	)
	return draft, nil
}

// ScanFile читает файл изображения и распознает его
func (a *App) ScanFile(ctx context.Context, path string) (extract.Draft, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return extract.Draft{}, fmt.Errorf("ошибка чтения изображения: %w", err)
	}
	return a.Scan(ctx, image)
}

// ScanAsync как Scan, результат приходит в канал
func (a *App) ScanAsync(ctx context.Context, image []byte) <-chan ScanResult {
	out := make(chan ScanResult, 1)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer close(out)
		draft, err := a.Scan(ctx, image)
		out <- ScanResult{Draft: draft, Err: err}
	}()
	return out
}

// NewRecord превращает черновик в запись пользователя сессии
func (a *App) NewRecord(d extract.Draft) (beer.Record, error) {
	if a.config.User == "" {
		return beer.Record{}, ErrNoUser
	}
	return d.Record(a.config.User), nil
}

// Inventory координатор коллекции пользователя
func (a *App) Inventory() *inventory.Coordinator {
	return a.inventory
}

// User пользователь сессии
func (a *App) User() string {
	return a.config.User
}

// SetToken меняет токен доступа к хранилищу
func (a *App) SetToken(token string) {
	if a.remote != nil {
		a.remote.SetToken(token)
	}
}

// Logout очищает кэш коллекции
func (a *App) Logout() error {
	a.SetToken("")
	return <-a.inventory.Reset()
}

// Close останавливает координатор и ждет асинхронные распознавания
func (a *App) Close() {
	a.once.Do(func() {
		a.inventory.Close()
		a.wg.Wait()
		a.log.Debug("Клиент остановлен")
	})
}
