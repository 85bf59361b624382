// Package resource talks to the portfolio REST API.
package resource

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

	"github.com/dtroode/portfolio/internal/client/clienterr"
)

// AdminUIDHeader carries the caller's claimed uid on mutations.
const AdminUIDHeader = "X-Admin-Uid"

// TokenSource supplies the bearer token for requests.
type TokenSource interface {
	Token() string
}

// UIDSource supplies the uid sent in AdminUIDHeader.
type UIDSource interface {
	UID() string
}

// File is an attachment sent as one multipart part.
type File struct {
	Field       string
	Name        string
	ContentType string
	Reader      io.Reader
}

// Client issues requests against a base URL. Every request is bounded by the
// client timeout and never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	uids       UIDSource
}

// NewClient creates a Client. tokens and uids may be nil.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, uids UIDSource) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		uids:       uids,
	}
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL resolves path against the base URL.
func (c *Client) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// List fetches a collection endpoint.
func List[T any](ctx context.Context, c *Client, endpoint string) ([]T, error) {
	var items []T
	if _, err := c.do(ctx, http.MethodGet, endpoint, nil, "", &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Create posts fields as JSON, or as multipart form data when file is set.
func Create[T any](ctx context.Context, c *Client, endpoint string, fields map[string]string, file *File) (T, error) {
	var out T

	body, contentType, err := encodeBody(fields, file)
	if err != nil {
		return out, err
	}

	if _, err := c.do(ctx, http.MethodPost, endpoint, body, contentType, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Delete removes the item id under endpoint.
func (c *Client) Delete(ctx context.Context, endpoint, id string) error {
	_, err := c.do(ctx, http.MethodDelete, endpoint+"/"+url.PathEscape(id), nil, "", nil)
	return err
}

// Head reports whether path answers 2xx.
func (c *Client) Head(ctx context.Context, path string) (bool, error) {
	status, err := c.do(ctx, http.MethodHead, path, nil, "", nil)
	var netErr *clienterr.NetworkError
	if errors.As(err, &netErr) && netErr.Status == http.StatusNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return status >= 200 && status < 300, nil
}

func encodeBody(fields map[string]string, file *File) (io.Reader, string, error) {
	if file == nil {
		data, err := json.Marshal(fields)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode request: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Name))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", file.Name, err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	return buf, w.FormDataContentType(), nil
}

type errorBody struct {
	Error string `json:"error"`
}

// do sends one request and decodes a JSON response into out when out is set
// and the response has a body. Non-2xx answers become *clienterr.NetworkError.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) (int, error) {
	op := method + " " + path

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), body)
	if err != nil {
		return 0, fmt.Errorf("failed to build request %s: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
			if c.uids != nil && method != http.MethodGet && method != http.MethodHead {
				if uid := c.uids.UID(); uid != "" {
					req.Header.Set(AdminUIDHeader, uid)
				}
			}
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &clienterr.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &clienterr.NetworkError{Op: op, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := http.StatusText(resp.StatusCode)
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil && eb.Error != "" {
			msg = eb.Error
		}
		return resp.StatusCode, &clienterr.NetworkError{Op: op, Status: resp.StatusCode, Err: errors.New(msg)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, &clienterr.NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("malformed response: %w", err)}
	}
	return resp.StatusCode, nil
}
