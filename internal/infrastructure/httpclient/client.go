// Package httpclient is the request pipeline every feature client goes
// through. It injects the session token, busts caches on GET, unwraps the
// backend envelope and turns failures into typed errors. Each call is sent
// exactly once.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/secondhand/console/internal/domain/shared"
	"github.com/secondhand/console/internal/infrastructure/logger"
)

// CacheBustParam is appended to every GET.
const CacheBustParam = "_t"

// Doer is what feature clients depend on.
type Doer interface {
	Do(ctx context.Context, req Request) (json.RawMessage, error)
}

// TokenSource supplies the bearer token for outbound calls.
type TokenSource interface {
	Token() (string, bool)
}

// AuthExpiredHandler runs once for every call rejected with a 401.
type AuthExpiredHandler func(ctx context.Context)

// Config configures the pipeline.
type Config struct {
	BaseURL   string
	BasePath  string
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	Transport http.RoundTripper
}

// Client is the pipeline. One instance is shared by all feature clients.
type Client struct {
	httpClient    *http.Client
	base          *url.URL
	headers       map[string]string
	tokens        TokenSource
	onAuthExpired AuthExpiredHandler
	notifier      Notifier
	metrics       *Metrics
	logger        *zap.Logger
	validate      *validator.Validate
	now           func() time.Time
	tracer        trace.Tracer
	propagator    propagation.TextMapPropagator
}

// Option customises a Client.
type Option func(*Client)

// WithTokenSource sets where the bearer token comes from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithAuthExpiredHandler sets the hook run after a 401.
func WithAuthExpiredHandler(h AuthExpiredHandler) Option {
	return func(c *Client) { c.onAuthExpired = h }
}

// WithNotifier sets the sink for user-visible failure messages.
func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithMetrics enables request metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithClock overrides the clock used for the cache-busting parameter.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithTracerProvider sets the provider for client spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer("github.com/secondhand/console/httpclient") }
}

// New creates the pipeline.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/" + strings.Trim(cfg.BasePath, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{
			Transport: cfg.Transport,
			Timeout:   cfg.Timeout,
		},
		base:       base,
		headers:    make(map[string]string),
		notifier:   logNotifier{},
		logger:     zap.NewNop(),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		now:        time.Now,
		tracer:     otel.GetTracerProvider().Tracer("github.com/secondhand/console/httpclient"),
		propagator: propagation.TraceContext{},
	}

	c.headers["Content-Type"] = "application/json;charset=utf-8"
	c.headers["Accept"] = "application/json"
	if cfg.UserAgent != "" {
		c.headers["User-Agent"] = cfg.UserAgent
	}
	for k, v := range cfg.Headers {
		c.headers[k] = v
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Do sends req once and returns the envelope's data on success.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	requestID := uuid.NewString()
	ctx = logger.WithContext(ctx, c.logger)
	ctx = logger.WithRequestID(ctx, requestID)

	ctx, span := c.tracer.Start(ctx, strings.ToUpper(req.Method)+" "+req.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", strings.ToUpper(req.Method)),
			attribute.String("url.path", req.Path),
		),
	)
	defer span.End()

	httpReq, err := c.prepare(ctx, req, requestID)
	if err != nil {
		return nil, c.fail(ctx, span, req, err, 0, false)
	}

	logger.L(ctx).Debug("sending request",
		zap.String("method", httpReq.Method),
		zap.String("url", httpReq.URL.String()),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.fail(ctx, span, req, classifyTransportError(err), time.Since(start), false)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		return nil, c.fail(ctx, span, req, classifyTransportError(err), elapsed, false)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	logger.L(ctx).Debug("received response",
		zap.String("path", req.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed),
	)

	data, err := classify(resp.StatusCode, body)
	if err != nil {
		return nil, c.fail(ctx, span, req, err, elapsed, true)
	}

	c.metrics.observe(strings.ToUpper(req.Method), nil, elapsed, true)
	return data, nil
}

// prepare is the outbound stage. It reads req and never writes to it.
func (c *Client) prepare(ctx context.Context, req Request, requestID string) (*http.Request, error) {
	method := strings.ToUpper(req.Method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
	default:
		return nil, &RequestConfigError{Message: fmt.Sprintf("unsupported method %q", req.Method)}
	}
	if strings.TrimSpace(req.Path) == "" {
		return nil, &RequestConfigError{Message: "request path is required"}
	}
	if strings.ContainsAny(req.Path, "?#") {
		return nil, &RequestConfigError{Message: fmt.Sprintf("request path %q must not carry a query or fragment", req.Path)}
	}

	u := *c.base
	u.Path = strings.TrimSuffix(c.base.Path, "/") + "/" + strings.TrimPrefix(req.Path, "/")

	query := url.Values{}
	for k, v := range req.Params {
		query.Set(k, v)
	}
	if method == http.MethodGet {
		query.Set(CacheBustParam, strconv.FormatInt(c.now().UnixMilli(), 10))
	}
	u.RawQuery = query.Encode()

	var body io.Reader
	if req.Body != nil {
		if err := c.validateBody(req.Body); err != nil {
			return nil, err
		}
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &RequestConfigError{Message: fmt.Sprintf("encoding request body: %v", err), Cause: err}
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, &RequestConfigError{Message: err.Error(), Cause: err}
	}

	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}
	c.propagator.Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	return httpReq, nil
}

// validateBody checks `validate` tags on struct bodies.
func (c *Client) validateBody(body any) error {
	v := reflect.ValueOf(body)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	if err := c.validate.Struct(v.Interface()); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &RequestConfigError{
				Message: fmt.Sprintf("invalid request: field %s failed %q", fe.Field(), fe.Tag()),
				Cause:   err,
			}
		}
		return &RequestConfigError{Message: fmt.Sprintf("invalid request: %v", err), Cause: err}
	}
	return nil
}

// fail applies the failure side effects and returns err unchanged.
func (c *Client) fail(ctx context.Context, span trace.Span, req Request, err error, elapsed time.Duration, responded bool) error {
	c.metrics.observe(strings.ToUpper(req.Method), err, elapsed, responded)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	logger.L(ctx).Warn("request failed",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.String("outcome", outcome(err)),
		zap.Error(err),
	)

	if !shared.IsSilent(ctx) {
		c.notifier.Notify(ctx, err.Error())
	}
	if errors.Is(err, ErrAuthExpired) && c.onAuthExpired != nil {
		c.onAuthExpired(ctx)
	}
	return err
}

// Call sends req through d and decodes the data into T.
func Call[T any](ctx context.Context, d Doer, req Request) (T, error) {
	var out T
	data, err := d.Do(ctx, req)
	if err != nil {
		return out, err
	}
	if len(data) == 0 || string(data) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decoding %s %s response: %w", req.Method, req.Path, err)
	}
	return out, nil
}

// Exec sends req through d and discards the data.
func Exec(ctx context.Context, d Doer, req Request) error {
	_, err := d.Do(ctx, req)
	return err
}
