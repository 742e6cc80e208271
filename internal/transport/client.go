package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/smarthrm/pkg/logger"
)

// Defaults mirror the browser client the backend was written against.
const (
	DefaultAPIRoot = "/api"
	DefaultTimeout = 10 * time.Second

	// HeaderRequestID carries a per-attempt correlation id.
	HeaderRequestID = "X-Request-ID"

	DefaultMaxReplyBytes = 32 << 20
)

// Client sends request descriptors to the backend: fixed base URL and API root,
// fixed timeout, exactly one attempt per call. It holds no per-call state and is
// safe for concurrent use.
type Client struct {
	baseURL    string
	apiRoot    string
	timeout    time.Duration
	httpClient *http.Client
	headers    http.Header
	maxReply   int64
	logger     logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithAPIRoot sets the path prefix joined between the base URL and request URLs.
func WithAPIRoot(root string) Option {
	return func(c *Client) {
		c.apiRoot = strings.TrimRight(root, "/")
	}
}

// WithTimeout sets the fixed per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithMaxReplyBytes bounds the reply body size; larger replies fail the call.
func WithMaxReplyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxReply = n
		}
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiRoot:    DefaultAPIRoot,
		timeout:    DefaultTimeout,
		httpClient: &http.Client{},
		headers:    make(http.Header),
		maxReply:   DefaultMaxReplyBytes,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout returns the fixed per-call timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Endpoint returns the absolute URL for req, including its query string.
func (c *Client) Endpoint(req Request) string {
	u := c.baseURL + c.apiRoot + req.URL
	if len(req.Params) > 0 {
		u += "?" + req.Params.Encode()
	}
	return u
}

// Do performs a single attempt for req and returns the raw reply of a 2xx
// response. Every failure is a *Error.
func (c *Client) Do(ctx context.Context, req Request) (*Reply, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s %q", err, req.Method, req.URL)
	}

	endpoint := c.Endpoint(req)

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode body: %v", ErrInvalidRequest, err)
		}
		body = bytes.NewReader(payload)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, req.Method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json, text/plain, */*")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	httpReq.Header.Set(HeaderRequestID, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		terr := c.wrapError(req.Method, endpoint, err)
		c.logger.Debug(ctx, "request failed",
			logger.String("method", req.Method),
			logger.String("url", endpoint),
			logger.String("request_id", requestID),
			logger.Bool("timeout", terr.Timeout()),
			logger.Error(err))
		return nil, terr
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxReply+1))
	if err != nil {
		return nil, c.wrapError(req.Method, endpoint, err)
	}
	if int64(len(data)) > c.maxReply {
		c.logger.Warn(ctx, "reply too large",
			logger.String("method", req.Method),
			logger.String("url", endpoint),
			logger.String("request_id", requestID),
			logger.Int("status", resp.StatusCode))
		return nil, tooLargeError(req.Method, endpoint, resp.StatusCode, c.maxReply)
	}

	c.logger.Debug(ctx, "request completed",
		logger.String("method", req.Method),
		logger.String("url", endpoint),
		logger.String("request_id", requestID),
		logger.Int("status", resp.StatusCode),
		logger.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, statusError(req.Method, endpoint, resp.StatusCode, data)
	}

	return &Reply{StatusCode: resp.StatusCode, Header: resp.Header.Clone(), Body: data}, nil
}

func (c *Client) wrapError(method, endpoint string, err error) *Error {
	e := &Error{Method: method, URL: endpoint, Err: err}

	var ne net.Error
	switch {
	case errors.Is(err, context.Canceled):
		e.Message = "canceled"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		e.timeout = true
		e.Message = fmt.Sprintf("timeout of %dms exceeded", c.timeout.Milliseconds())
	default:
		e.Message = "Network Error: " + err.Error()
	}
	return e
}
