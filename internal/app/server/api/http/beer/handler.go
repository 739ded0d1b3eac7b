package beer

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"beerbasement/internal/domain/beer"
)

type Handler struct {
	service    beer.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service beer.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		service:    service,
		log:        log.With("component", "beer_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.listByOwnerOp(), h.listByOwner)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	beers, err := h.service.List(ctx)
	if err != nil {
		return nil, h.toHTTP(err)
	}
	return &listOutput{Body: beers}, nil
}

func (h *Handler) listByOwner(ctx context.Context, input *listByOwnerInput) (*listOutput, error) {
	beers, err := h.service.ListByOwner(ctx, input.Username)
	if err != nil {
		return nil, h.toHTTP(err)
	}
	return &listOutput{Body: beers}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*output, error) {
	rec, err := h.service.Create(ctx, input.Body.toRecord())
	if err != nil {
		return nil, h.toHTTP(err)
	}
	return &output{Body: *rec}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*output, error) {
	rec, err := h.service.Update(ctx, input.ID, input.Body.toRecord())
	if err != nil {
		return nil, h.toHTTP(err)
	}
	return &output{Body: *rec}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*output, error) {
	rec, err := h.service.Delete(ctx, input.ID)
	if err != nil {
		return nil, h.toHTTP(err)
	}
	return &output{Body: *rec}, nil
}

// toHTTP переводит доменные ошибки в статусы ответа
func (h *Handler) toHTTP(err error) error {
	switch {
	case errors.Is(err, beer.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, beer.ErrInvalidData), errors.Is(err, beer.ErrOwnerMissing):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		h.log.Error("request failed", "error", err)
		return huma.Error500InternalServerError("Internal Server Error")
	}
}
