// Package api is the authenticated HTTP client for the storedesk REST API.
//
// A Client has a fixed base address and an ordered chain of request and
// response middleware. Credentials are attached by BearerToken, which resolves
// the token when each request is dispatched.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// RequestMiddleware transforms an outgoing request. Returning an error aborts the request.
type RequestMiddleware func(req *http.Request) error

// ResponseMiddleware sees every round trip result, including transport errors.
type ResponseMiddleware func(resp *http.Response, err error) (*http.Response, error)

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	requestMW  []RequestMiddleware
	responseMW []ResponseMiddleware
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRequestMiddleware appends request middleware; they run in the order given.
func WithRequestMiddleware(mw ...RequestMiddleware) ClientOption {
	return func(c *Client) {
		c.requestMW = append(c.requestMW, mw...)
	}
}

// WithResponseMiddleware appends response middleware; they run in the order given.
func WithResponseMiddleware(mw ...ResponseMiddleware) ClientOption {
	return func(c *Client) {
		c.responseMW = append(c.responseMW, mw...)
	}
}

func NewClient(baseURL string, options ...ClientOption) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// NewRequest builds a request for path relative to the base address. A non-nil
// body is JSON encoded.
func (c *Client) NewRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Do runs the request middleware, sends the request and passes the result
// through the response middleware. Errors are returned as produced.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	for _, mw := range c.requestMW {
		if err := mw(req); err != nil {
			return nil, err
		}
	}

	resp, err := c.httpClient.Do(req)

	for _, mw := range c.responseMW {
		resp, err = mw(resp, err)
	}
	return resp, err
}

// Get issues a GET and decodes the envelope's data.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	return call[T](ctx, c, http.MethodGet, path, nil)
}

// Post issues a POST with a JSON body and decodes the envelope's data.
func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return call[T](ctx, c, http.MethodPost, path, body)
}

func call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T

	req, err := c.NewRequest(ctx, method, path, body)
	if err != nil {
		return zero, err
	}
	resp, err := c.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	var env Envelope[T]
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)
	failed := resp.StatusCode < 200 || resp.StatusCode > 299

	switch {
	case decodeErr != nil && failed:
		return zero, &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	case decodeErr != nil:
		return zero, fmt.Errorf("decode %s %s: %w", method, path, decodeErr)
	case failed || !env.Success:
		return zero, &Error{Status: resp.StatusCode, Message: env.Message, Errors: env.Errors}
	case env.Data == nil:
		return zero, nil
	}
	return *env.Data, nil
}
