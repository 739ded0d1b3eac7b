package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"beerbasement/internal/domain/beer"
)

const defaultTimeout = 30 * time.Second

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client HTTP клиент REST хранилища пива
type Client struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string

	// токен меняется при выходе, пока идут запросы координатора
	mu    sync.RWMutex
	token string
}

func NewClient(cfg Config, log *slog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("неверный адрес сервера %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		log:       log.With("component", "remote_client"),
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		token:     cfg.Token,
		userAgent: "BeerBasement-Client/1.0",
	}, nil
}

// SetToken устанавливает токен аутентификации
func (h *Client) SetToken(token string) {
	h.mu.Lock()
	h.token = token
	h.mu.Unlock()
}

// Token текущий токен аутентификации
func (h *Client) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// List GET /beers
func (h *Client) List(ctx context.Context) ([]beer.Record, error) {
	var beers []beer.Record
	if err := h.call(ctx, http.MethodGet, "/beers", nil, &beers); err != nil {
		return nil, err
	}
	return beers, nil
}

// ListByOwner GET /beers/{username}
func (h *Client) ListByOwner(ctx context.Context, owner string) ([]beer.Record, error) {
	var beers []beer.Record
	if err := h.call(ctx, http.MethodGet, "/beers/"+url.PathEscape(owner), nil, &beers); err != nil {
		return nil, err
	}
	return beers, nil
}

// Create POST /beers, тело без id
func (h *Client) Create(ctx context.Context, rec beer.Record) (beer.Record, error) {
	var created beer.Record
	if err := h.call(ctx, http.MethodPost, "/beers", rec.WithoutID(), &created); err != nil {
		return beer.Record{}, err
	}
	return created, nil
}

// Update PUT /beers/{id}, полное тело записи
func (h *Client) Update(ctx context.Context, id int, rec beer.Record) (beer.Record, error) {
	rec.ID = id
	var updated beer.Record
	if err := h.call(ctx, http.MethodPut, "/beers/"+strconv.Itoa(id), rec, &updated); err != nil {
		return beer.Record{}, err
	}
	return updated, nil
}

// Delete DELETE /beers/{id}
func (h *Client) Delete(ctx context.Context, id int) error {
	return h.call(ctx, http.MethodDelete, "/beers/"+strconv.Itoa(id), nil, nil)
}

func (h *Client) call(ctx context.Context, method, path string, body, result interface{}) error {
	resp, err := h.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, result)
}

func (h *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if token := h.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	h.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
		"request_id", requestID,
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}

	return resp, nil
}

func (h *Client) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	h.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	if resp.StatusCode >= 400 {
		return &SyncError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp, body),
		}
	}

	if result != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return &SyncError{
				Status:  resp.StatusCode,
				Message: "malformed response: " + err.Error(),
				Err:     err,
			}
		}
	}

	return nil
}

// errorMessage берет текст ошибки из тела (error, detail или title), иначе текст статуса
func errorMessage(resp *http.Response, body []byte) string {
	var errResp struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		for _, m := range []string{errResp.Error, errResp.Detail, errResp.Title} {
			if m != "" {
				return m
			}
		}
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return resp.Status
}

func transportError(err error) error {
	var urlErr *url.Error
	msg := err.Error()
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		msg = urlErr.Err.Error()
	}
	if strings.TrimSpace(msg) == "" {
		msg = NoConnection
	}
	return &SyncError{Message: msg, Err: err}
}
