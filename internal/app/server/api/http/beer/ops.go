package beer

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "beers-list",
		Method:      http.MethodGet,
		Path:        "/beers",
		Summary:     "Все записи коллекции",
		Tags:        []string{"beers"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listByOwnerOp() huma.Operation {
	return huma.Operation{
		OperationID: "beers-list-by-owner",
		Method:      http.MethodGet,
		Path:        "/beers/{username}",
		Summary:     "Записи пользователя",
		Tags:        []string{"beers"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "beers-create",
		Method:        http.MethodPost,
		Path:          "/beers",
		Summary:       "Добавить запись",
		Description:   "id из тела игнорируется, хранилище назначает новый.",
		Tags:          []string{"beers"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "beers-update",
		Method:      http.MethodPut,
		Path:        "/beers/{id}",
		Summary:     "Заменить запись",
		Tags:        []string{"beers"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "beers-delete",
		Method:      http.MethodDelete,
		Path:        "/beers/{id}",
		Summary:     "Удалить запись",
		Tags:        []string{"beers"},
		Middlewares: h.middleware,
	}
}
