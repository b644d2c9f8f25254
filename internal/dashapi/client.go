// Package dashapi is the HTTP client of the dashboard backend's company
// onboarding endpoints.
package dashapi

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
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/metrics"
	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/model"
)

// DefaultTimeout is the fixed request timeout of the client.
const DefaultTimeout = 60 * time.Second

// Client calls the onboarding API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	loads      singleflight.Group
	logger     *zerolog.Logger

	redis    *redis.Client
	cacheTTL time.Duration
}

// Onboarding is the company onboarding record as returned by the API.
type Onboarding struct {
	CompanyID     string                   `json:"company_id"`
	Timezone      string                   `json:"timezone,omitempty"`
	BusinessHours model.WeeklyScheduleWire `json:"business_hours"`
}

type businessHoursUpdate struct {
	BusinessHours model.WeeklyScheduleWire `json:"business_hours"`
}

// APIError is returned for non-2xx responses.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.Status)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Body)
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit limits outgoing requests to r per second with the given burst.
func WithRateLimit(r float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient constructs a client for baseURL authenticating with a bearer token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	nop := zerolog.Nop()
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Inf, 0),
		logger:     &nop,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UseRedisCache configures optional Redis caching for onboarding reads.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// GetOnboarding fetches the onboarding record of a company. Concurrent calls
// for the same company share one request.
func (c *Client) GetOnboarding(ctx context.Context, companyID string) (*Onboarding, error) {
	v, err, _ := c.loads.Do(companyID, func() (interface{}, error) {
		cacheKey := onboardingCacheKey(companyID)
		var resp Onboarding
		if c.readCache(ctx, cacheKey, &resp) {
			return &resp, nil
		}
		if err := c.doJSON(ctx, "get_onboarding", http.MethodGet, c.onboardingURL(companyID), nil, &resp); err != nil {
			return nil, err
		}
		c.writeCache(ctx, cacheKey, resp)
		return &resp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("get onboarding %s: %w", companyID, err)
	}
	onboarding := *v.(*Onboarding)
	return &onboarding, nil
}

// SaveBusinessHours submits the weekly schedule payload verbatim.
func (c *Client) SaveBusinessHours(ctx context.Context, companyID string, hours model.WeeklyScheduleWire) error {
	body := businessHoursUpdate{BusinessHours: hours}
	if err := c.doJSON(ctx, "save_business_hours", http.MethodPatch, c.onboardingURL(companyID), body, nil); err != nil {
		return fmt.Errorf("save business hours %s: %w", companyID, err)
	}
	c.dropCache(ctx, onboardingCacheKey(companyID))
	return nil
}

// HealthCheck checks if the API is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.doJSON(ctx, "healthz", http.MethodGet, c.baseURL+"/healthz", nil, nil)
}

func (c *Client) onboardingURL(companyID string) string {
	return fmt.Sprintf("%s/api/v1/company/%s/onboarding", c.baseURL, url.PathEscape(companyID))
}

func onboardingCacheKey(companyID string) string {
	return "onboarding:" + companyID
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.cacheTTL).Err()
}

func (c *Client) dropCache(ctx context.Context, key string) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, key).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache invalidation failed")
	}
}

func (c *Client) doJSON(ctx context.Context, endpoint, method, target string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncAPIRequest(endpoint, "error")
		return err
	}
	defer resp.Body.Close()

	metrics.IncAPIRequest(endpoint, strconv.Itoa(resp.StatusCode))
	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("dashboard api request")

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
