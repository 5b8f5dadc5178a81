package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
)

const requestIDHeader = "X-Request-ID"

// TokenSource returns the bearer token attached to outgoing requests.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() string { return string(t) }

// Observer receives timing for every upstream call.
type Observer interface {
	ObserveUpstreamRequest(method, path string, status int, duration time.Duration)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Tokens     TokenSource
	HTTPClient *http.Client
	Observer   Observer
	Logger     *zap.Logger
}

// Client performs JSON calls against the academy REST backend.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	tokens   TokenSource
	observer Observer
	logger   *zap.Logger
}

// New builds a Client. The HTTP client timeout is the only timeout applied.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", opts.BaseURL)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  base,
		http:     httpClient,
		tokens:   opts.Tokens,
		observer: opts.Observer,
		logger:   logger,
	}, nil
}

// WithTokens returns a shallow copy of the client using a different token source.
func (c *Client) WithTokens(tokens TokenSource) *Client {
	clone := *c
	clone.tokens = tokens
	return &clone
}

// Do sends a JSON request and returns the raw response body of a 2xx reply. path
// is relative to the base URL and already escaped.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body interface{}) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, path)
}

// File is a multipart file part.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Content     io.Reader
}

// Upload sends a multipart/form-data request with plain fields and a single file.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, file File) (json.RawMessage, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("write multipart field %s: %w", key, err)
		}
	}
	if file.Content != nil {
		field := file.Field
		if field == "" {
			field = "file"
		}
		part, err := createFilePart(writer, field, file)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, fmt.Errorf("copy multipart file: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.send(req, path)
}

func createFilePart(writer *multipart.Writer, field string, file File) (io.Writer, error) {
	if file.ContentType == "" {
		part, err := writer.CreateFormFile(field, file.Filename)
		if err != nil {
			return nil, fmt.Errorf("create multipart file: %w", err)
		}
		return part, nil
	}
	header := make(textproto.MIMEHeader)
	header["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name=%q; filename=%q`, field, file.Filename)}
	header["Content-Type"] = []string{file.ContentType}
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create multipart file: %w", err)
	}
	return part, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := *c.baseURL
	escaped := c.baseURL.EscapedPath() + "/" + strings.TrimLeft(path, "/")
	unescaped, err := url.PathUnescape(escaped)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	target.Path, target.RawPath = unescaped, escaped
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestIDFrom(ctx))
	if token := c.tokenFor(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, path string) (json.RawMessage, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.observe(req.Method, path, 0, duration)
		c.logger.Debug("upstream request failed",
			zap.String("method", req.Method),
			zap.String("path", path),
			zap.Duration("latency", duration),
			zap.Error(err),
		)
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, err.Error())
	}
	defer resp.Body.Close() //nolint:errcheck

	c.observe(req.Method, path, resp.StatusCode, duration)
	c.logger.Debug("upstream request",
		zap.String("method", req.Method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", duration),
		zap.String("request_id", req.Header.Get(requestIDHeader)),
	)

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, appErrors.FromStatus(resp.StatusCode, extractMessage(payload))
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, nil
	}
	return json.RawMessage(payload), nil
}

func (c *Client) observe(method, path string, status int, duration time.Duration) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveUpstreamRequest(method, templatePath(path), status, duration)
}

// templatePath collapses identifiers so metrics keep a bounded label set.
func templatePath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, part := range parts {
		if looksLikeID(part) {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func looksLikeID(part string) bool {
	if part == "" {
		return false
	}
	if _, err := uuid.Parse(part); err == nil {
		return true
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (c *Client) tokenFor(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey{}).(string); ok && token != "" {
		return token
	}
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

type tokenKey struct{}

// ContextWithToken overrides the client's token source for calls made with ctx.
func ContextWithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

type requestIDKey struct{}

// ContextWithRequestID propagates an inbound request id to upstream calls.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
