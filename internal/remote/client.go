// Package remote implements persist.Remote over the timetable REST API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/timetabler/internal/persist"
)

// ErrNotFound is returned when the timetable does not exist.
var ErrNotFound = errors.New("timetable not found")

const (
	basePath       = "/api/timetables"
	userAgent      = "Timetabler/1.0"
	requestIDKey   = "X-Request-ID"
	defaultTimeout = 10 * time.Second
)

// Client talks to the timetable service.
type Client struct {
	baseURL    string
	userID     int
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default http client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// New creates a client for baseURL acting on behalf of userID.
func New(baseURL string, userID int, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userID:     userID,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Save posts the timetable to the autosave endpoint, which creates it when
// the request has no timetable id and updates it otherwise.
func (c *Client) Save(ctx context.Context, req persist.SaveRequest) (persist.Response, error) {
	var resp persist.Response
	err := c.do(ctx, http.MethodPost, basePath+"/autosave", req, &resp)
	return resp, err
}

// Load fetches one timetable.
func (c *Client) Load(ctx context.Context, id string) (persist.Response, error) {
	var resp persist.Response
	err := c.do(ctx, http.MethodGet, basePath+"/"+url.PathEscape(id), nil, &resp)
	return resp, err
}

// Delete removes one timetable.
func (c *Client) Delete(ctx context.Context, id string) error {
	var resp persist.Response
	if err := c.do(ctx, http.MethodDelete, basePath+"/"+url.PathEscape(id), nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("delete %s: %s", id, resp.Message)
	}
	return nil
}

type listItem struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	SubjectID int               `json:"subject_id"`
	Slots     []json.RawMessage `json:"slots"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type listResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    []listItem `json:"data"`
	Total   int        `json:"total"`
}

// List returns the user's timetables. A zero subjectID lists every subject.
func (c *Client) List(ctx context.Context, subjectID int) ([]persist.Summary, error) {
	var resp listResponse
	if err := c.do(ctx, http.MethodGet, basePath+"/", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("listing timetables: %s", resp.Message)
	}

	out := make([]persist.Summary, 0, len(resp.Data))
	for _, it := range resp.Data {
		if subjectID != 0 && it.SubjectID != subjectID {
			continue
		}
		out = append(out, persist.Summary{
			ID:        it.ID,
			Name:      it.Name,
			SubjectID: it.SubjectID,
			Slots:     len(it.Slots),
			UpdatedAt: it.UpdatedAt,
		})
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL + path + "?user_id=" + strconv.Itoa(c.userID)
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(requestIDKey, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	case resp.StatusCode >= 300:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s failed (status %d): %s", method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
