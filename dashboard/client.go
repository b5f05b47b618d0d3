// Package dashboard is the admin-side client of the content API: a thin
// HTTP client plus the list and edit-modal state every admin screen shares.
package dashboard

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
	"strconv"
	"strings"
	"time"
)

// APIError is a response with success:false, or a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// NotFound reports whether the server rejected an unknown id.
func (e *APIError) NotFound() bool { return e.Status == http.StatusNotFound }

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// File is an upload attached to a form submission.
type File struct {
	Name string
	Data []byte
}

// Client talks to the content API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type ClientOption func(*Client)

// WithToken sends an admin bearer token on every request.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) endpoint(entity, id string) string {
	u := c.baseURL + "/api/" + url.PathEscape(entity)
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	return u
}

// do sends req and decodes the envelope's data into out. Transport failures
// and success:false responses both come back as errors.
func (c *Client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "unexpected response: " + strings.TrimSpace(string(body))}
	}
	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

// List fetches every entity of one type into out, a pointer to a slice.
func (c *Client) List(ctx context.Context, entity string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(entity, ""), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// Create posts fields (and files, as multipart) and decodes the created entity into out.
func (c *Client) Create(ctx context.Context, entity string, fields map[string]any, files map[string][]File, out any) error {
	req, err := c.formRequest(ctx, http.MethodPost, c.endpoint(entity, ""), fields, files)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// Update sends fields to PUT /api/{entity}/{id}; omitted fields keep their values.
func (c *Client) Update(ctx context.Context, entity, id string, fields map[string]any, files map[string][]File, out any) error {
	req, err := c.formRequest(ctx, http.MethodPut, c.endpoint(entity, id), fields, files)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) Delete(ctx context.Context, entity, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint(entity, id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// formRequest encodes JSON, or multipart/form-data when any file is attached.
func (c *Client) formRequest(ctx context.Context, method, u string, fields map[string]any, files map[string][]File) (*http.Request, error) {
	if len(files) == 0 {
		b, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := writeField(w, k, v); err != nil {
			return nil, err
		}
	}
	for k, fs := range files {
		for _, f := range fs {
			fw, err := w.CreateFormFile(k, f.Name)
			if err != nil {
				return nil, err
			}
			if _, err := fw.Write(f.Data); err != nil {
				return nil, err
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, u, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, nil
}

// writeField writes one form value the way a browser FormData would:
// lists as one part per item, everything else as text.
func writeField(w *multipart.Writer, key string, v any) error {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		for _, item := range t {
			if err := w.WriteField(key, item); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, item := range t {
			if err := writeField(w, key, item); err != nil {
				return err
			}
		}
		return nil
	}
	s, err := fieldText(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return w.WriteField(key, s)
}

func fieldText(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	}
	b, err := json.Marshal(v)
	return string(b), err
}

// IsNotFound reports whether err is an API not-found response.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.NotFound()
}
