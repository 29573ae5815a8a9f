package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// Client is the shared network collaborator. A single instance backs every
// fetcher operation; Clone hands out an independently usable handle that
// shares the underlying transport and its connection pool, so concurrent
// requests never synchronize on each other.
type Client struct {
	hc        *http.Client
	userAgent string
}

type Option func(*Client)

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func New(opts ...Option) *Client {
	c := &Client{
		hc:        &http.Client{},
		userAgent: "oro",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clone returns a shallow copy sharing the transport. Cheap by design: the
// fetcher's lock is held only long enough to call this.
func (c *Client) Clone() *Client {
	hc := *c.hc
	return &Client{hc: &hc, userAgent: c.userAgent}
}

// Opts starts a request builder for the given method and URL.
func (c *Client) Opts(method string, u *url.URL) *Request {
	return &Request{
		method: method,
		url:    u,
		header: make(http.Header),
	}
}

// Request is an unsent request under construction.
type Request struct {
	method string
	url    *url.URL
	header http.Header
}

// Header sets a request header and returns the builder.
func (r *Request) Header(key, value string) *Request {
	r.header.Set(key, value)
	return r
}

// Send performs the request. A non-2xx status is not an error here; callers
// inspect the response and decide.
func (c *Client) Send(ctx context.Context, r *Request) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, r.url.String(), nil)
	if err != nil {
		return nil, err
	}
	for key, values := range r.header {
		req.Header[key] = values
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	return &Response{res: res}, nil
}

// Response wraps an HTTP response. The body is read at most once, either
// fully via BodyString or as a stream via Body.
type Response struct {
	res *http.Response
}

func (r *Response) StatusCode() int { return r.res.StatusCode }

func (r *Response) Header(name string) string { return r.res.Header.Get(name) }

func (r *Response) ContentLength() int64 { return r.res.ContentLength }

// BodyString drains and closes the body.
func (r *Response) BodyString() (string, error) {
	defer r.res.Body.Close()
	data, err := io.ReadAll(r.res.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Body hands the stream to the caller, who owns closing it.
func (r *Response) Body() io.ReadCloser { return r.res.Body }
