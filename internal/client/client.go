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
	"net/url"
	"strings"
	"time"

	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/submission"
	"github.com/portoo/portoo-backend/internal/usecase/portfolio"
	"github.com/portoo/portoo-backend/internal/usecase/username"
)

const defaultTimeout = 2 * time.Minute

// APIError is a non-2xx answer. Message is the server's error text, followed by
// the first validation issue when there is one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type errorBody struct {
	Error   string `json:"error"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

// Client talks to the portfolio API
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = NewSession()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) CheckUsername(ctx context.Context, name string) (*username.CheckResult, error) {
	var out username.CheckResult
	err := c.do(ctx, http.MethodGet, "/api/check-username?username="+url.QueryEscape(name), nil, "", &out)
	return &out, err
}

func (c *Client) SuggestUsername(ctx context.Context, name string) (string, error) {
	var out struct {
		Username string `json:"username"`
	}
	err := c.do(ctx, http.MethodGet, "/api/suggest-username?name="+url.QueryEscape(name), nil, "", &out)
	return out.Username, err
}

func (c *Client) CreatePortfolio(ctx context.Context, req *portfolio.CreatePortfolioRequest) (*portfolio.CreateResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	var out portfolio.CreateResult
	if err := c.do(ctx, http.MethodPost, "/api/portfolio", bytes.NewReader(body), "application/json", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePortfolio(ctx context.Context, name string, req *portfolio.UpdatePortfolioRequest) (*domain.PortfolioAggregate, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	var out struct {
		Portfolio *domain.PortfolioAggregate `json:"portfolio"`
	}
	if err := c.do(ctx, http.MethodPatch, "/api/portfolio/"+url.PathEscape(name), bytes.NewReader(body), "application/json", &out); err != nil {
		return nil, err
	}
	if out.Portfolio == nil {
		return nil, fmt.Errorf("update %s: empty response", name)
	}
	return out.Portfolio, nil
}

func (c *Client) GetPortfolio(ctx context.Context, name string) (*domain.PortfolioAggregate, error) {
	var out domain.PortfolioAggregate
	if err := c.do(ctx, http.MethodGet, "/api/portfolio/"+url.PathEscape(name), nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyPortfolios(ctx context.Context) ([]*domain.PortfolioSummary, error) {
	var out struct {
		Portfolios []*domain.PortfolioSummary `json:"portfolios"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/my-portfolios", nil, "", &out); err != nil {
		return nil, err
	}
	return out.Portfolios, nil
}

// Upload sends one file as multipart form data and returns its public URL.
func (c *Client) Upload(ctx context.Context, f *submission.File) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", f.Filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f.Body); err != nil {
		return "", err
	}
	if err := w.WriteField("bucket", string(f.Bucket)); err != nil {
		return "", err
	}
	if err := w.WriteField("path", f.Path); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	var out struct {
		URL  string `json:"url"`
		Path string `json:"path"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/upload", &buf, w.FormDataContentType(), &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", errors.New("upload response has no file url")
	}
	return out.URL, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token := c.session.State().Token; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		snippet := string(raw)
		if len(snippet) > 120 {
			snippet = snippet[:120]
		}
		if snippet == "" {
			snippet = "Expected JSON response."
		}
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("Unexpected response format (%d). %s", resp.StatusCode, snippet)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func decodeError(status int, raw []byte) error {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		return &APIError{Status: status, Message: fmt.Sprintf("Request failed with status %d", status)}
	}
	msg := body.Error
	if len(body.Details) > 0 {
		d := body.Details[0]
		text := d.Message
		if text == "" {
			text = "Invalid input"
		}
		if d.Field != "" {
			msg = fmt.Sprintf("%s (%s: %s)", msg, d.Field, text)
		} else {
			msg = fmt.Sprintf("%s (%s)", msg, text)
		}
	}
	return &APIError{Status: status, Message: msg}
}
