package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"taskClient/internal/logger"
	"taskClient/internal/models/task"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:3333"
	DefaultTimeout = 10 * time.Second

	slowRequest  = 2 * time.Second
	maxBodyBytes = 4 << 20
)

// Client is a typed facade over the remote task resource. It holds no task
// state and is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A zero Timeout on hc is
// replaced by DefaultTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		cp := *hc
		if cp.Timeout == 0 {
			cp.Timeout = DefaultTimeout
		}
		c.http = &cp
	}
}

// WithTransport swaps the round tripper, e.g. for a fake transport in tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: u,
		http: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: logger.L(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ParseBaseURL accepts absolute http and https URLs only.
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type call struct {
	op     string
	method string
	// id is set when the call addresses a single task; only then is a 404
	// reported as NotFoundError.
	id    string
	write bool
	in    any
	out   any
}

func (cl call) path() []string {
	if cl.id == "" {
		return []string{"tasks"}
	}
	return []string{"tasks", url.PathEscape(cl.id)}
}

type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  []task.FieldError `json:"fields"`
}

func (c *Client) do(ctx context.Context, cl call) error {
	start := time.Now()
	target := c.baseURL.JoinPath(cl.path()...).String()

	var body io.Reader
	if cl.in != nil {
		payload, err := json.Marshal(cl.in)
		if err != nil {
			return c.fail(cl, target, start, fmt.Errorf("%s: encode request: %w", cl.op, err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return c.fail(cl, target, start, fmt.Errorf("%s: build request: %w", cl.op, err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	c.log.Debug("Client: sending request", append(logger.RequestFields(req), zap.String("operation", cl.op))...)

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(cl, target, start, c.networkError(cl, target, start, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return c.fail(cl, target, start, c.networkError(cl, target, start, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(cl, target, start, statusError(cl, target, resp, raw))
	}

	if cl.out != nil {
		if err := json.Unmarshal(raw, cl.out); err != nil {
			return c.fail(cl, target, start, &ServerError{
				Op:         cl.op,
				Method:     cl.method,
				URL:        target,
				StatusCode: resp.StatusCode,
				Status:     statusText(resp),
				Message:    "malformed response body",
				Err:        err,
			})
		}
	}

	elapsed := time.Since(start)
	if elapsed > slowRequest {
		c.log.Warn("Client: slow request",
			zap.String("operation", cl.op),
			zap.String("url", target),
			zap.Duration("ms", elapsed))
	}
	c.log.Debug("Client: request completed",
		zap.String("operation", cl.op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("ms", elapsed))
	return nil
}

func (c *Client) networkError(cl call, target string, start time.Time, err error) *NetworkError {
	var netErr net.Error
	timeout := errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
	return &NetworkError{
		Op:      cl.op,
		Method:  cl.method,
		URL:     target,
		Timeout: timeout,
		Elapsed: time.Since(start),
		Err:     err,
	}
}

func statusError(cl call, target string, resp *http.Response, raw []byte) error {
	var eb errorBody
	_ = json.Unmarshal(raw, &eb)

	serr := &ServerError{
		Op:         cl.op,
		Method:     cl.method,
		URL:        target,
		StatusCode: resp.StatusCode,
		Status:     statusText(resp),
		Message:    eb.Message,
	}
	if serr.Message == "" {
		serr.Message = eb.Error
	}

	switch {
	case resp.StatusCode == http.StatusNotFound && cl.id != "":
		return &NotFoundError{ID: cl.id, Err: serr}
	case cl.write && (resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity):
		fields := eb.Fields
		if len(fields) == 0 {
			msg := serr.Message
			if msg == "" {
				msg = "rejected by server"
			}
			fields = []task.FieldError{{Field: "request", Message: msg}}
		}
		return &task.ValidationError{Fields: fields, Err: serr}
	}
	return serr
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// fail logs err at the client boundary and returns it unchanged.
func (c *Client) fail(cl call, target string, start time.Time, err error) error {
	fields := []zap.Field{
		zap.String("operation", cl.op),
		zap.String("method", cl.method),
		zap.String("url", target),
		zap.Duration("ms", time.Since(start)),
		zap.Error(err),
	}

	var serr *ServerError
	if errors.As(err, &serr) {
		fields = append(fields, zap.Int("http_status", serr.StatusCode))
	}

	var verr *task.ValidationError
	switch {
	case IsNotFound(err):
		c.log.Warn("Client: task not found", append(fields, zap.String("task_id", cl.id))...)
	case errors.As(err, &verr):
		c.log.Warn("Client: request rejected by validation", fields...)
	default:
		c.log.Error("Client: API request failed", fields...)
	}
	return err
}
