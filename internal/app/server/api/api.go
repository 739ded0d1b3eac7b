// GET    /beers             # Все записи
// GET    /beers/{username}  # Записи пользователя
// POST   /beers             # Добавить запись
// PUT    /beers/{id}        # Заменить запись
// DELETE /beers/{id}        # Удалить запись
// GET    /api/v1/health     # Проверка хранилища
// GET    /metrics           # Метрики prometheus

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"

	beerAPI "beerbasement/internal/app/server/api/http/beer"
	healthAPI "beerbasement/internal/app/server/api/http/health"
	"beerbasement/internal/app/server/api/http/middleware"
	"beerbasement/internal/app/server/api/http/middleware/logger"
	"beerbasement/internal/app/server/api/http/middleware/metrics"
	"beerbasement/internal/domain/beer"
	"beerbasement/internal/infrastructure/storage"
)

type Handlers struct {
	Health *healthAPI.Handler
	Beer   *beerAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(st storage.Storage, reg *prometheus.Registry, log *slog.Logger) (*chi.Mux, error) {
	mux := chi.NewMux()

	config := huma.DefaultConfig("BeerBasement API", "1.0.0")
	API := humachi.New(mux, config)

	m, err := metrics.New(reg)
	if err != nil {
		return nil, err
	}

	h := handlers(st, m, log)
	h.Health.SetupRoutes(API)
	h.Beer.SetupRoutes(API)

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return mux, nil
}

func handlers(st storage.Storage, m *metrics.Metrics, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear(), st)

	beerService := beer.NewService(st, log)
	middlewares.Add(m.Middleware())
	middlewares.Add(loggerMW.Middleware())
	beerHandler := beerAPI.NewHandler(beerService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Beer:   beerHandler,
	}
}
