package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log        *slog.Logger
	middleware huma.Middlewares
	storage    Pinger
}

func NewHandler(log *slog.Logger, middleware huma.Middlewares, storage Pinger) *Handler {
	return &Handler{
		log:        log,
		middleware: middleware,
		storage:    storage,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	if h.storage != nil {
		if err := h.storage.Ping(ctx); err != nil {
			h.log.Warn("storage is unavailable", "error", err)
			return nil, huma.Error503ServiceUnavailable("storage is unavailable")
		}
	}

	return &Output{
		Body: Response{
			Status: "OK",
		},
	}, nil
}
