package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/profilespaces/internal/common"
	"github.com/dmitrijs2005/profilespaces/internal/logging"
)

// DefaultTimeout bounds a single request when no http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// RequestOptions describes a JSON request.
type RequestOptions struct {
	Method string
	Body   any
	Token  string
	Query  url.Values
}

// UploadOptions describes a multipart upload. The file is sent under Field.
type UploadOptions struct {
	Method      string
	Field       string
	Filename    string
	ContentType string
	Reader      io.Reader
	Token       string
}

// HTTPClient talks to the profilespaces REST API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     logging.Logger
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithLogger sets the request logger.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// NewHTTPClient returns a client for the API rooted at baseURL
// (e.g. http://localhost:8000/api). apiKey is sent as X-API-Key when set.
func NewHTTPClient(baseURL, apiKey string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ Client = (*HTTPClient)(nil)

// Request sends a JSON request and returns the raw response payload.
func (c *HTTPClient) Request(ctx context.Context, path string, opts RequestOptions) ([]byte, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, opts.Query, body, opts.Token)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// Upload sends a single file as multipart/form-data.
func (c *HTTPClient) Upload(ctx context.Context, path string, opts UploadOptions) ([]byte, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodPost
	}
	if opts.Reader == nil {
		return nil, errors.New("upload: nil reader")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, opts.Field, opts.Filename))
	if opts.ContentType != "" {
		h.Set("Content-Type", opts.ContentType)
	} else {
		h.Set("Content-Type", "application/octet-stream")
	}
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, opts.Reader); err != nil {
		return nil, fmt.Errorf("copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, nil, &buf, opts.Token)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, token string) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.AuthorizationScheme+" "+token)
	}
	if c.apiKey != "" {
		req.Header.Set(common.APIKeyHeaderName, c.apiKey)
	}
	return req, nil
}

func (c *HTTPClient) do(req *http.Request) ([]byte, error) {
	ctx := logging.ContextWith(req.Context(),
		"request_id", req.Header.Get(common.RequestIDHeaderName),
		"method", req.Method,
		"path", req.URL.Path)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "error", err)
		return nil, &Error{Message: ErrUnavailable.Error(), Network: true}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: ErrUnavailable.Error(), Network: true}
	}

	c.log.Debug(ctx, "request done", "status", resp.StatusCode)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return payload, nil
	}
	return nil, newError(resp.StatusCode, payload)
}

func newError(status int, payload []byte) *Error {
	e := &Error{Status: status}

	if err := json.Unmarshal(payload, &e.Data); err != nil {
		e.Data = ErrorData{Detail: strings.TrimSpace(string(payload))}
	}

	switch {
	case e.Data.Detail != "":
		e.Message = e.Data.Detail
	case len(e.Data.Errors) > 0:
		e.Message = "validation failed"
	default:
		e.Message = http.StatusText(status)
	}
	return e
}

func decode[T any](payload []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &v, nil
}
