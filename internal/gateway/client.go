package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkolev/recipe-club/internal/metrics"
)

// TokenSource supplies the current bearer token, or "" when logged out.
// The session store implements this; the client never caches the value.
type TokenSource interface {
	Token() string
}

// Client is the shared HTTP layer behind the per-domain gateways.
type Client struct {
	base   string
	hc     *http.Client
	tokens TokenSource
}

// NewClient builds a Client for the API at baseURL. tokens may be nil for
// an unauthenticated client (e.g. during signup flows in tests).
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", baseURL)
	}
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		hc:     &http.Client{Timeout: timeout},
		tokens: tokens,
	}, nil
}

// Recipes returns the recipe gateway backed by this client.
func (c *Client) Recipes() RecipeGateway { return &recipeClient{c} }

// Articles returns the article gateway backed by this client.
func (c *Client) Articles() ArticleGateway { return &articleClient{c} }

// Users returns the user gateway backed by this client.
func (c *Client) Users() UserGateway { return &userClient{c} }

// Favorites returns the favorites gateway backed by this client.
func (c *Client) Favorites() FavoriteGateway { return &favoriteClient{c} }

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return req, nil
}

// envelope mirrors the API's DataResponse<T> wrapper.
type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// errorBody covers both error shapes the backend emits: a flat
// {message} and a nested {error: {message}}.
type errorBody struct {
	Message string `json:"message"`
	Nested  struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (b errorBody) message() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Nested.Message
}

// do executes req and decodes the success envelope into Result[T].
// Non-2xx responses become a *Error; the body's message is preserved even
// when empty.
func do[T any](c *Client, req *http.Request) (Result[T], error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues("transport_error").Inc()
		return Result[T]{}, fmt.Errorf("api: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.GatewayRequestsTotal.WithLabelValues("api_error").Inc()
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return Result[T]{}, &Error{Status: resp.StatusCode, Message: eb.message()}
	}

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues("decode_error").Inc()
		return Result[T]{}, fmt.Errorf("api: decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	metrics.GatewayRequestsTotal.WithLabelValues("ok").Inc()
	return Result[T]{Data: env.Data, Message: env.Message}, nil
}

func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (Result[T], error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return Result[T]{}, err
	}
	return do[T](c, req)
}

func postJSON[T any](ctx context.Context, c *Client, path string, body any) (Result[T], error) {
	buf := &bytes.Buffer{}
	if body == nil {
		body = struct{}{}
	}
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return Result[T]{}, fmt.Errorf("api: encode body for %s: %w", path, err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, buf)
	if err != nil {
		return Result[T]{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	return do[T](c, req)
}

func del[T any](ctx context.Context, c *Client, path string) (Result[T], error) {
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return Result[T]{}, err
	}
	return do[T](c, req)
}

// postMultipart sends fields and files as multipart/form-data.
func postMultipart[T any](ctx context.Context, c *Client, path string, build func(w *multipart.Writer) error) (Result[T], error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	if err := build(w); err != nil {
		return Result[T]{}, fmt.Errorf("api: build multipart body for %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return Result[T]{}, fmt.Errorf("api: finalize multipart body for %s: %w", path, err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, buf)
	if err != nil {
		return Result[T]{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return do[T](c, req)
}

func writeFilePart(w *multipart.Writer, field string, f File) error {
	part, err := w.CreateFormFile(field, f.Name)
	if err != nil {
		return err
	}
	_, err = part.Write(f.Content)
	return err
}

func writeJSONField(w *multipart.Writer, field string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.WriteField(field, string(b))
}

func asError(err error, target **Error) bool {
	return errors.As(err, target)
}
