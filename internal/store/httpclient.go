package store

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

	"github.com/claude/fittrack/internal/models"
)

// ErrNotFound is returned when the server answers 404.
var ErrNotFound = errors.New("not found")

// HTTPClient implements Store and Identity by calling the fittrack REST API.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time checks.
var (
	_ Store    = (*HTTPClient)(nil)
	_ Identity = (*HTTPClient)(nil)
)

// NewHTTPClient creates an HTTPClient targeting the given base URL. A
// non-empty apiKey is sent as X-API-Key.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, in any) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode %s: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("httpclient: %s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("httpclient: %s %s returned %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(respBody))
	}
	return respBody, nil
}

func decode[T any](body []byte, what string) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("httpclient: decode %s: %w", what, err)
	}
	return v, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/me", nil, nil)
	if err != nil {
		return nil, err
	}
	u, err := decode[models.User](body, "user")
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) CreateSession(ctx context.Context, s models.NewSession) (*models.Session, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/sessions", nil, s)
	if err != nil {
		return nil, err
	}
	sess, err := decode[models.Session](body, "session")
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (c *HTTPClient) InsertExercises(ctx context.Context, sessionID uuid.UUID, _ int, exercises []models.NewExercise) (int64, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/sessions/"+sessionID.String()+"/exercises", nil, exercises)
	if err != nil {
		return 0, err
	}
	resp, err := decode[struct {
		Inserted int64 `json:"inserted"`
	}](body, "insert result")
	if err != nil {
		return 0, err
	}
	return resp.Inserted, nil
}

func (c *HTTPClient) DeleteSession(ctx context.Context, id uuid.UUID, _ int) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/sessions/"+id.String(), nil, nil)
	return err
}

func (c *HTTPClient) ListSessions(ctx context.Context, q models.SessionQuery) ([]models.Session, error) {
	params := url.Values{}
	if !q.Start.IsZero() {
		params.Set("start", q.Start.Format(time.RFC3339))
	}
	if !q.End.IsZero() {
		params.Set("end", q.End.Format(time.RFC3339))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	body, err := c.do(ctx, http.MethodGet, "/api/v1/sessions", params, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]models.Session](body, "sessions")
}

func (c *HTTPClient) ListExercises(ctx context.Context, sessionID uuid.UUID, _ int) ([]models.ExerciseRow, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/sessions/"+sessionID.String()+"/exercises", nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[[]models.ExerciseRow](body, "exercises")
}
