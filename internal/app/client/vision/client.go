package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const (
	DefaultEndpoint   = "https://vision.googleapis.com/v1/images:annotate"
	defaultMaxResults = 10
	defaultTimeout    = 30 * time.Second
)

// Annotator отправляет изображение во внешний сервис распознавания
type Annotator interface {
	Annotate(ctx context.Context, image []byte) (Bundle, error)
}

type Config struct {
	Endpoint   string
	APIKey     string
	Token      string
	MaxResults int
	Timeout    time.Duration
}

// Client адаптер Cloud Vision images:annotate. Повторов не делает:
// одна попытка на вызов, политика повторов остается вызывающему.
type Client struct {
	client     *http.Client
	log        *slog.Logger
	endpoint   string
	apiKey     string
	token      string
	maxResults int
}

func NewClient(cfg Config, log *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	return &Client{
		client:     &http.Client{Timeout: timeout},
		log:        log.With("component", "vision_client"),
		endpoint:   endpoint,
		apiKey:     cfg.APIKey,
		token:      cfg.Token,
		maxResults: maxResults,
	}
}

// Annotate распознает логотипы, текст и метки на изображении
func (c *Client) Annotate(ctx context.Context, image []byte) (Bundle, error) {
	if len(image) == 0 {
		return Bundle{}, &RecognitionError{Kind: KindMalformed, Message: "empty image"}
	}

	body, err := json.Marshal(annotateRequest{
		Requests: []imageRequest{{
			Image: imageContent{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []feature{
				{Type: "LOGO_DETECTION", MaxResults: c.maxResults},
				{Type: "TEXT_DETECTION"},
				{Type: "LABEL_DETECTION", MaxResults: c.maxResults},
			},
		}},
	})
	if err != nil {
		return Bundle{}, &RecognitionError{Kind: KindMalformed, Message: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(), bytes.NewReader(body))
	if err != nil {
		return Bundle{}, &RecognitionError{Kind: KindNetwork, Message: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug("annotate request", "bytes", len(image))

	resp, err := c.client.Do(req)
	if err != nil {
		return Bundle{}, &RecognitionError{Kind: KindNetwork, Message: "send request", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Bundle{}, &RecognitionError{Kind: KindNetwork, Message: "read response", Err: err}
	}

	var decoded annotateResponse
	decodeErr := json.Unmarshal(raw, &decoded)

	if resp.StatusCode >= 400 {
		msg := http.StatusText(resp.StatusCode)
		status := ""
		if decodeErr == nil && decoded.Error != nil {
			msg = decoded.Error.Message
			status = decoded.Error.Status
		}
		return Bundle{}, &RecognitionError{
			Kind:    classify(resp.StatusCode, status),
			Status:  resp.StatusCode,
			Message: msg,
		}
	}

	if decodeErr != nil {
		return Bundle{}, &RecognitionError{Kind: KindMalformed, Message: "decode response", Err: decodeErr}
	}
	if len(decoded.Responses) == 0 {
		return Bundle{}, &RecognitionError{Kind: KindMalformed, Message: "no responses"}
	}

	first := decoded.Responses[0]
	if first.Error != nil {
		return Bundle{}, &RecognitionError{
			Kind:    classify(first.Error.Code, first.Error.Status),
			Message: first.Error.Message,
			Err:     errors.New(first.Error.Status),
		}
	}

	bundle := toBundle(first)
	c.log.Debug("annotate response",
		"logos", len(bundle.Logos),
		"labels", len(bundle.Labels),
		"text_lines", len(bundle.TextLines),
	)
	return bundle, nil
}

func (c *Client) requestURL() string {
	if c.apiKey == "" {
		return c.endpoint
	}
	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}
	return c.endpoint + sep + "key=" + url.QueryEscape(c.apiKey)
}

func toBundle(r imageResponse) Bundle {
	var b Bundle
	for _, a := range r.LogoAnnotations {
		b.Logos = append(b.Logos, Annotation{Text: a.Description, Score: a.Score})
	}
	for _, a := range r.LabelAnnotations {
		b.Labels = append(b.Labels, Annotation{Text: a.Description, Score: a.Score})
	}
	// первая текстовая аннотация содержит весь распознанный текст, остальные - отдельные слова
	if len(r.TextAnnotations) > 0 && r.TextAnnotations[0].Description != "" {
		b.TextLines = []string{r.TextAnnotations[0].Description}
	}
	return b
}

func classify(code int, status string) Kind {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden,
		status == "UNAUTHENTICATED" || status == "PERMISSION_DENIED":
		return KindCredentials
	case code == http.StatusTooManyRequests, status == "RESOURCE_EXHAUSTED":
		return KindQuota
	default:
		return KindService
	}
}

var _ Annotator = (*Client)(nil)
