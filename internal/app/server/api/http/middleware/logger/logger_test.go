package logger

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestLogger_Middleware(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	api := humatest.Wrap(t, humachi.New(chi.NewMux(), huma.DefaultConfig("test", "1.0.0")))
	huma.Register(api, huma.Operation{
		OperationID: "boom",
		Method:      http.MethodGet,
		Path:        "/boom",
		Middlewares: huma.Middlewares{New(log).Middleware()},
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		return nil, huma.Error500InternalServerError("Internal Server Error")
	})

	api.Get("/boom", "X-Request-ID: abc-123")

	out := buf.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"path":"/boom"`)
	assert.Contains(t, out, `"status":500`)
	assert.Contains(t, out, `"request_id":"abc-123"`)
	assert.Contains(t, out, `"component":"http_logger"`)
}
