package books

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"events-api/internal/cache"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout   = 5 * time.Second
	DefaultRateLimit = rate.Limit(10)
	DefaultCacheTTL  = 5 * time.Minute

	cachePrefix = "books:user:"
)

var errRateLimited = errors.New("books rate limiter")

// HTTPClient 實作 Client，查詢結果存在 cache，對外請求受 rate limiter 限制
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	secret     []byte
	limiter    *rate.Limiter
	cache      cache.Cache
	cacheTTL   time.Duration
	logger     zerolog.Logger
	observe    func(op, outcome string)
}

type Option func(*HTTPClient)

func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = client
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit 每秒請求數，<= 0 表示不限制
func WithRateLimit(rps float64) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithCache ttl <= 0 時不使用快取
func WithCache(cc cache.Cache, ttl time.Duration) Option {
	return func(c *HTTPClient) {
		c.cache = cc
		c.cacheTTL = ttl
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *HTTPClient) {
		c.logger = logger
	}
}

// WithObserver 每次對外呼叫結束時回報 op 與結果 (ok, not_found, rejected, error, cache_hit)
func WithObserver(fn func(op, outcome string)) Option {
	return func(c *HTTPClient) {
		c.observe = fn
	}
}

func NewClient(baseURL, secret string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		secret:     []byte(secret),
		limiter:    rate.NewLimiter(DefaultRateLimit, 1),
		cacheTTL:   DefaultCacheTTL,
		logger:     zerolog.Nop(),
		observe:    func(string, string) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) BookURL(bookID int) string {
	return fmt.Sprintf("%s/books/%d/", c.baseURL, bookID)
}

func (c *HTTPClient) UserExists(ctx context.Context, username string) (bool, error) {
	u, err := c.lookup(ctx, username)
	if err != nil {
		return false, err
	}
	return u.Exists, nil
}

func (c *HTTPClient) UserBooks(ctx context.Context, username string) ([]Book, error) {
	u, err := c.lookup(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.Books, nil
}

// lookup 先查快取再呼叫 GET /api/user/<username>；連線失敗記錄後視為不存在且不快取
func (c *HTTPClient) lookup(ctx context.Context, username string) (*remoteUser, error) {
	key := cachePrefix + username
	if c.cache != nil && c.cacheTTL > 0 {
		var cached remoteUser
		err := cache.GetJSON(ctx, c.cache, key, &cached)
		switch {
		case err == nil:
			c.observe("user", "cache_hit")
			return &cached, nil
		case !errors.Is(err, cache.ErrMiss):
			c.logger.Warn().Err(err).Str("username", username).Msg("books cache read failed")
		}
	}

	endpoint := fmt.Sprintf("%s/api/user/%s", c.baseURL, url.PathEscape(username))
	resp, body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, errRateLimited) {
			return nil, err
		}
		c.observe("user", "error")
		c.logger.Warn().Err(err).Str("username", username).Msg("books service unreachable")
		return &remoteUser{}, nil
	}

	var u remoteUser
	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.observe("user", "not_found")
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		c.observe("user", "ok")
		u.Exists = true
		var payload struct {
			Books []Book `json:"books"`
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				return nil, fmt.Errorf("decode books user: %w", err)
			}
		}
		u.Books = payload.Books
	default:
		c.observe("user", "error")
		return nil, fmt.Errorf("books service: unexpected status %d", resp.StatusCode)
	}

	if c.cache != nil && c.cacheTTL > 0 {
		if err := cache.SetJSON(ctx, c.cache, key, u, c.cacheTTL); err != nil {
			c.logger.Warn().Err(err).Str("username", username).Msg("books cache write failed")
		}
	}
	return &u, nil
}

// Federate 將帳密簽成 HS256 JWT 送到 /api/jwt-auth/，回應中的 jwt 以相同 secret 驗證
func (c *HTTPClient) Federate(ctx context.Context, username, password string) (*Profile, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"password": password,
	}).SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("sign federation token: %w", err)
	}

	payload, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return nil, err
	}

	resp, body, err := c.do(ctx, http.MethodPost, c.baseURL+"/api/jwt-auth/", payload)
	if err != nil {
		c.observe("federate", "error")
		return nil, fmt.Errorf("federate: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.observe("federate", "rejected")
		return nil, ErrRejected
	}

	var out struct {
		JWT string `json:"jwt"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.JWT == "" {
		c.observe("federate", "error")
		return nil, fmt.Errorf("federate: malformed response")
	}

	claims := &profileClaims{}
	if _, err := jwt.ParseWithClaims(out.JWT, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})); err != nil {
		c.observe("federate", "error")
		return nil, fmt.Errorf("federate: %w", err)
	}

	c.observe("federate", "ok")
	return &claims.Profile, nil
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, payload []byte) (*http.Response, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errRateLimited, err)
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	return resp, body, nil
}
