package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openroad/stopfinder/internal/client/models"
)

const defaultTimeout = 15 * time.Second

// HTTPClient implements Client against the JSON API. A bearer token, once
// set, is attached to every request; SetToken/ClearToken are safe for
// concurrent use with in-flight requests.
type HTTPClient struct {
	baseURL string
	client  *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient builds a client for the API at baseURL. A non-positive
// timeout falls back to the default.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) ClearToken() {
	c.SetToken("")
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createReviewRequest struct {
	Rating      int    `json:"rating"`
	Comment     string `json:"comment,omitempty"`
	TruckStopID int64  `json:"truckStopId"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/users/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, "", err
	}
	return &resp.User, resp.Token, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) error {
	// The response body is not consumed.
	return c.doJSON(ctx, http.MethodPost, "/api/users/register", nil, registerRequest{Name: name, Email: email, Password: password}, nil)
}

func (c *HTTPClient) SearchNearby(ctx context.Context, latitude, longitude, radius float64) ([]models.TruckStop, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("radius", strconv.FormatFloat(radius, 'f', -1, 64))

	var stops []models.TruckStop
	if err := c.doJSON(ctx, http.MethodGet, "/api/truck-stops/search", q, nil, &stops); err != nil {
		return nil, err
	}
	return stops, nil
}

func (c *HTTPClient) GetTruckStop(ctx context.Context, id int64) (*models.TruckStop, error) {
	var stop models.TruckStop
	path := fmt.Sprintf("/api/truck-stops/%d", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &stop); err != nil {
		return nil, err
	}
	return &stop, nil
}

func (c *HTTPClient) CreateTruckStop(ctx context.Context, dto models.CreateTruckStopDto) (*models.TruckStop, error) {
	var stop models.TruckStop
	if err := c.doJSON(ctx, http.MethodPost, "/api/truck-stops", nil, dto, &stop); err != nil {
		return nil, err
	}
	return &stop, nil
}

func (c *HTTPClient) CreateReview(ctx context.Context, truckStopID int64, dto models.CreateReviewDto) (*models.Review, error) {
	body := createReviewRequest{Rating: dto.Rating, Comment: dto.Comment, TruckStopID: truckStopID}
	var review models.Review
	path := fmt.Sprintf("/api/truck-stops/%d/reviews", truckStopID)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, body, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// doJSON performs one request/response cycle: marshals body (when not
// nil), sets the standard headers, classifies the status code, and
// decodes the response into out (when not nil).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Drain so the connection can be reused.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: %s %s: status %d: %s",
			c.classify(resp.StatusCode), method, path, resp.StatusCode, bytes.TrimSpace(detail))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) classify(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status >= 500:
		return ErrUnavailable
	default:
		return ErrRejected
	}
}
