package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tinyclient/entity"
	"tinyclient/internal/config"
	apierrors "tinyclient/internal/lib/errors"
	"tinyclient/internal/lib/sl"
)

// Param is one query-string pair. Params are kept as an ordered slice
// because the provider documents a fixed append order: token, formato,
// then caller parameters in the order supplied.
type Param struct {
	Key   string
	Value string
}

// requester is the request surface the resource services depend on.
// Keeping it minimal lets tests stub the transport without a network.
type requester interface {
	Get(ctx context.Context, path string, params []Param) (json.RawMessage, error)
	Post(ctx context.Context, path string, fields url.Values) (json.RawMessage, error)
}

// TinyService is the authenticated HTTP transport to the Tiny API.
// One attempt per call: no retry, no caching, no rate limiting. The
// caller owns any throttling policy.
type TinyService struct {
	token      string
	baseURL    string
	log        *slog.Logger
	httpClient *http.Client
}

func NewTinyService(conf *config.Config, log *slog.Logger) (*TinyService, error) {
	if conf.Tiny.Token == "" {
		return nil, apierrors.ErrMissingToken
	}

	timeout := conf.Tiny.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	service := &TinyService{
		token:   conf.Tiny.Token,
		baseURL: strings.TrimRight(conf.Tiny.BaseURL, "/"),
		log:     log.With(sl.Module("tiny")),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}

	service.log.With(
		slog.String("base_url", service.baseURL),
		sl.Secret("token", service.token),
	).Debug("tiny service initialized")

	return service, nil
}

// Get issues an authenticated GET. Caller params are appended to the
// query string after the token and format indicator, preserving order.
func (s *TinyService) Get(ctx context.Context, path string, params []Param) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint(path, params), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return s.do(req)
}

// Post issues an authenticated POST. Authentication still travels on
// the URL; the body is form-url-encoded from fields. Tiny expects the
// JSON-serialized payload as the value of a single named form field,
// not as a JSON request body.
func (s *TinyService) Post(ctx context.Context, path string, fields url.Values) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.endpoint(path, nil),
		strings.NewReader(fields.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

// endpoint builds the request URL by hand: url.Values would sort the
// keys and break the documented parameter order.
func (s *TinyService) endpoint(path string, params []Param) string {
	var b strings.Builder
	b.WriteString(s.baseURL)
	b.WriteByte('/')
	b.WriteString(strings.TrimLeft(path, "/"))
	b.WriteString("?token=")
	b.WriteString(url.QueryEscape(s.token))
	b.WriteString("&formato=json")
	for _, p := range params {
		b.WriteByte('&')
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// do executes the request and normalizes the outcome. Business-failure
// detection is entirely payload-driven: Tiny answers HTTP 200 for most
// failed operations, so the HTTP status is only kept for diagnostics
// on unparsable bodies.
func (s *TinyService) do(req *http.Request) (json.RawMessage, error) {
	log := s.log.With(
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)
	t := time.Now()

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Error("request failed", sl.Err(err))
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var env entity.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		log.Error("unparsable response", slog.Int("http_status", resp.StatusCode), sl.Err(err))
		return nil, &apierrors.ParseError{HTTPStatus: resp.StatusCode, Err: err}
	}
	if len(env.Retorno) == 0 {
		return nil, &apierrors.ParseError{
			HTTPStatus: resp.StatusCode,
			Err:        errors.New("missing retorno envelope"),
		}
	}

	var status entity.ResponseStatus
	if err := json.Unmarshal(env.Retorno, &status); err != nil {
		return nil, &apierrors.ParseError{HTTPStatus: resp.StatusCode, Err: err}
	}

	log = log.With(slog.Duration("duration", time.Since(t)))

	if status.Status != entity.StatusOK {
		apiErr := &apierrors.APIError{
			StatusProcessamento: int(status.StatusProcessamento),
			CodigoErro:          int(status.CodigoErro),
			Erros:               messages(status.Erros),
		}
		log.Debug("api error",
			slog.Int("codigo_erro", apiErr.CodigoErro),
			slog.Int("status_processamento", apiErr.StatusProcessamento),
		)
		return nil, apiErr
	}

	log.Debug("request succeeded")
	return env.Retorno, nil
}

func messages(items []entity.ErrorItem) []string {
	msgs := make([]string, 0, len(items))
	for _, item := range items {
		msgs = append(msgs, item.Erro)
	}
	return msgs
}
