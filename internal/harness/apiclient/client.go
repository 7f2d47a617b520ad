// Package apiclient là HTTP client kiểu black-box cho toàn bộ endpoints của catalog.
// Mọi method trả về *Response (status + body thô) kể cả khi status là lỗi;
// error chỉ dành cho lỗi transport.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Book - record trả về bởi /api/books
type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

func (b Book) IDString() string {
	return strconv.FormatInt(b.ID, 10)
}

// Response - kết quả thô của một request
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshal body vào dest
func (r *Response) Decode(dest interface{}) error {
	if err := json.Unmarshal(r.Body, dest); err != nil {
		return fmt.Errorf("decode response (status %d): %w", r.Status, err)
	}
	return nil
}

// Error trả về field "error" ("" nếu không có)
func (r *Response) Error() string {
	return r.stringField("error")
}

// Message trả về field "message"
func (r *Response) Message() string {
	return r.stringField("message")
}

// Errors trả về field "errors" (nil nếu không có)
func (r *Response) Errors() []string {
	var body struct {
		Errors []string `json:"errors"`
	}
	if json.Unmarshal(r.Body, &body) != nil {
		return nil
	}
	return body.Errors
}

func (r *Response) stringField(key string) string {
	var body map[string]interface{}
	if json.Unmarshal(r.Body, &body) != nil {
		return ""
	}
	s, _ := body[key].(string)
	return s
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient thay http.Client (vd. httptest.Server.Client()); jar được giữ nguyên nếu client chưa có
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc.Jar == nil {
			hc.Jar = c.http.Jar
		}
		hc.CheckRedirect = c.http.CheckRedirect
		c.http = hc
	}
}

// New tạo client với cookie jar riêng (session cookie sống theo client).
// Redirect không được follow để assert được 302.
func New(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// ========================================
// AUTH
// ========================================

func (c *Client) Login(ctx context.Context, username, password string) (*Response, error) {
	return c.doJSON(ctx, http.MethodPost, "/login", map[string]string{
		"username": username,
		"password": password,
	})
}

// LoginForm post login form như browser (application/x-www-form-urlencoded)
func (c *Client) LoginForm(ctx context.Context, username, password string) (*Response, error) {
	form := url.Values{"username": {username}, "password": {password}}
	return c.do(ctx, http.MethodPost, "/login", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

func (c *Client) Logout(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/logout", "", nil)
}

// ========================================
// BOOKS
// ========================================

func (c *Client) ListBooks(ctx context.Context) ([]Book, *Response, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/books", "", nil)
	if err != nil {
		return nil, nil, err
	}
	return decodeBooks(resp)
}

// GetBook: id là raw path segment để test được id không hợp lệ ("abc", "-1")
func (c *Client) GetBook(ctx context.Context, id string) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/api/books/"+url.PathEscape(id), "", nil)
}

// SearchBooks: field rỗng thì không gửi param field
func (c *Client) SearchBooks(ctx context.Context, q, field string) ([]Book, *Response, error) {
	params := url.Values{"q": {q}}
	if field != "" {
		params.Set("field", field)
	}
	resp, err := c.do(ctx, http.MethodGet, "/api/books/search?"+params.Encode(), "", nil)
	if err != nil {
		return nil, nil, err
	}
	return decodeBooks(resp)
}

// CreateBook: payload là JSON value bất kỳ (map, struct, raw string qua json.RawMessage)
func (c *Client) CreateBook(ctx context.Context, payload interface{}) (*Response, error) {
	return c.doJSON(ctx, http.MethodPost, "/api/books", payload)
}

func (c *Client) UpdateBook(ctx context.Context, id string, payload interface{}) (*Response, error) {
	return c.doJSON(ctx, http.MethodPut, "/api/books/"+url.PathEscape(id), payload)
}

func (c *Client) DeleteBook(ctx context.Context, id string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, "/api/books/"+url.PathEscape(id), "", nil)
}

// ImportBooks upload file qua multipart field "file"
func (c *Client) ImportBooks(ctx context.Context, filename string, content []byte) (*Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "/api/books/import", w.FormDataContentType(), &buf)
}

// ========================================
// PAGES / HEALTH
// ========================================

func (c *Client) Health(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/health", "", nil)
}

// Raw gửi body nguyên văn với Content-Type application/json (body hỏng, "null", array)
func (c *Client) Raw(ctx context.Context, method, path, body string) (*Response, error) {
	return c.do(ctx, method, path, "application/json", strings.NewReader(body))
}

// Get request thô tới path bất kỳ (pages, routes không tồn tại)
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, "", nil)
}

// ========================================
// HELPERS
// ========================================

// Payload: body là title/author/isbn dạng string
func Payload(title, author, isbn string) map[string]string {
	return map[string]string{"title": title, "author": author, "isbn": isbn}
}

func decodeBooks(resp *Response) ([]Book, *Response, error) {
	if resp.Status != http.StatusOK {
		return nil, resp, nil
	}
	var books []Book
	if err := resp.Decode(&books); err != nil {
		return nil, resp, err
	}
	return books, resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return c.do(ctx, method, path, "application/json", bytes.NewReader(body))
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s %s: %w", method, path, err)
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}
