package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultBaseURL is the backend address used when no WithBaseURL option is given.
const DefaultBaseURL = "http://127.0.0.1:8000"

const maxErrorBody = 64 << 10

// SessionState is the part of the session the client needs: the bearer token to attach and
// a way to wipe everything on 401.
type SessionState interface {
	AccessToken(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Doer is implemented by Client. Domain packages depend on it so they can be tested
// against fakes.
type Doer interface {
	Do(ctx context.Context, req Request, out any) error
	Download(ctx context.Context, req Request) (*Blob, error)
}

var _ Doer = (*Client)(nil)

// RequestInterceptor may modify an outgoing request. Returning an error aborts the call.
type RequestInterceptor func(ctx context.Context, req *http.Request) error

// ResponseInterceptor sees every response before its status is checked. Returning an error
// aborts the call with that error.
type ResponseInterceptor func(ctx context.Context, resp *http.Response) error

// Client sends requests to the TCMS backend. Every request passes through the request
// interceptors in order, and every response through the response interceptors.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	state      SessionState
	navigator  Navigator
	log        zerolog.Logger

	extraRequest  []RequestInterceptor
	extraResponse []ResponseInterceptor

	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

type Option func(*Client) error

func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		u, err := url.Parse(strings.TrimRight(raw, "/"))
		if err != nil {
			return fmt.Errorf("[WithBaseURL] %q: %w", raw, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("[WithBaseURL] %q: scheme and host are required", raw)
		}
		c.baseURL = u
		return nil
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		c.httpClient = hc
		return nil
	}
}

func WithNavigator(n Navigator) Option {
	return func(c *Client) error {
		c.navigator = n
		return nil
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = log
		return nil
	}
}

// WithRequestInterceptor adds an interceptor that runs after the built-in ones.
func WithRequestInterceptor(i RequestInterceptor) Option {
	return func(c *Client) error {
		c.extraRequest = append(c.extraRequest, i)
		return nil
	}
}

// WithResponseInterceptor adds an interceptor that runs after the built-in ones.
func WithResponseInterceptor(i ResponseInterceptor) Option {
	return func(c *Client) error {
		c.extraResponse = append(c.extraResponse, i)
		return nil
	}
}

func New(state SessionState, opts ...Option) (*Client, error) {
	base, _ := url.Parse(DefaultBaseURL)
	c := &Client{
		baseURL: base,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		state: state,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.navigator == nil {
		c.navigator = LogNavigator(c.log)
	}

	c.requestInterceptors = append([]RequestInterceptor{
		RequestIDInterceptor(),
		BearerInterceptor(c.state),
	}, c.extraRequest...)
	c.responseInterceptors = append([]ResponseInterceptor{
		UnauthorizedInterceptor(c.state, c.navigator, c.log),
	}, c.extraResponse...)
	return c, nil
}

// BaseURL returns the backend address requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do sends req and decodes a JSON response body into out. A nil out discards the body.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	resp, cancel, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	defer cancel()
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("[Client Do] decode %s %s: %w", req.Method, req.Path, err)
	}
	return nil
}

// Download sends req and returns the raw response body.
func (c *Client) Download(ctx context.Context, req Request) (*Blob, error) {
	resp, cancel, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("[Client Download] read %s %s: %w", req.Method, req.Path, err)
	}
	return &Blob{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    FilenameFromDisposition(resp.Header.Get("Content-Disposition")),
	}, nil
}

// send runs the full request pipeline. On success the caller owns resp.Body and must call
// cancel once the body has been consumed.
func (c *Client) send(ctx context.Context, req Request) (*http.Response, context.CancelFunc, error) {
	cancel := context.CancelFunc(func() {})
	if req.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
	}

	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	for _, intercept := range c.requestInterceptors {
		if err := intercept(ctx, httpReq); err != nil {
			cancel()
			return nil, nil, fmt.Errorf("[Client] %s %s: %w", req.Method, req.Path, err)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("[Client] %s %s: %w", req.Method, req.Path, err)
	}
	c.log.Debug().
		Str("method", httpReq.Method).
		Str("path", httpReq.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", httpReq.Header.Get(RequestIDHeader)).
		Msg("api request")

	for _, intercept := range c.responseInterceptors {
		if err := intercept(ctx, resp); err != nil {
			resp.Body.Close()
			cancel()
			return nil, nil, err
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		cancel()
		return nil, nil, &HTTPError{
			Method:     httpReq.Method,
			Path:       httpReq.URL.Path,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}
	return resp, cancel, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target, err := c.resolve(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.Multipart != nil:
		buf, ct, err := req.Multipart.encode()
		if err != nil {
			return nil, fmt.Errorf("[Client] %s %s: %w", method, req.Path, err)
		}
		body, contentType = buf, ct
	case req.Body != nil:
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("[Client] %s %s: marshal body: %w", method, req.Path, err)
		}
		body, contentType = bytes.NewReader(raw), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("[Client] %s %s: %w", method, req.Path, err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json, */*")
	return httpReq, nil
}

// resolve joins path onto the base URL. Absolute URLs are used as given.
func (c *Client) resolve(path string, query url.Values) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("[Client] path %q: %w", path, err)
	}

	target := ref
	if !ref.IsAbs() {
		joined := *c.baseURL
		joined.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
		joined.RawPath = ""
		joined.RawQuery = ref.RawQuery
		target = &joined
	}

	if len(query) > 0 {
		merged := target.Query()
		for k, vs := range query {
			for _, v := range vs {
				merged.Add(k, v)
			}
		}
		target.RawQuery = merged.Encode()
	}
	return target.String(), nil
}
