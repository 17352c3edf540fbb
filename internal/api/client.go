package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"brawl-tracker/internal/config"
	"brawl-tracker/internal/constants"
	"brawl-tracker/internal/tag"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

var (
	ErrBadRequest       = errors.New("bad request")
	ErrForbidden        = errors.New("access denied")
	ErrNotFound         = errors.New("not found")
	ErrRateLimited      = errors.New("rate limited")
	ErrMaintenance      = errors.New("upstream under maintenance")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// APIError is the error body the game API returns with non-200 responses.
type APIError struct {
	Status  int    `json:"-"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d (%s): %s", e.Status, e.Reason, e.Message)
	}
	return fmt.Sprintf("API error %d", e.Status)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case fasthttp.StatusBadRequest:
		return ErrBadRequest
	case fasthttp.StatusForbidden:
		return ErrForbidden
	case fasthttp.StatusNotFound:
		return ErrNotFound
	case fasthttp.StatusTooManyRequests:
		return ErrRateLimited
	case fasthttp.StatusServiceUnavailable:
		return ErrMaintenance
	}
	return ErrUnexpectedStatus
}

type Client struct {
	apiKey      string
	baseURL     string
	client      *fasthttp.Client
	limiter     *rate.Limiter
	logger      zerolog.Logger
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     int       `json:"reset"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	burst := max(1, int(cfg.APIRatePerSecond))
	return newClient(cfg.APIBaseURL, cfg.APIKey, rate.NewLimiter(rate.Limit(cfg.APIRatePerSecond), burst), logger)
}

func newClient(baseURL, apiKey string, limiter *rate.Limiter, logger zerolog.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		limiter: limiter,
		logger:  logger,
		rateLimit: RateLimitInfo{
			UpdatedAt: time.Now(),
		},
	}
}

// WithDial replaces the network dialer, e.g. with an in-memory listener in tests.
func (c *Client) WithDial(dial func(addr string) (net.Conn, error)) *Client {
	c.client.Dial = dial
	return c
}

func (c *Client) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *Client) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if limit := string(resp.Header.Peek("X-Ratelimit-Limit")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			c.rateLimit.Limit = val
		}
	}
	if remaining := string(resp.Header.Peek("X-Ratelimit-Remaining")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.Remaining = val
		}
	}
	if reset := string(resp.Header.Peek("X-Ratelimit-Reset")); reset != "" {
		if val, err := strconv.Atoi(reset); err == nil {
			c.rateLimit.Reset = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

// Paging selects a window of a list endpoint. Only one of After/Before may be set.
type Paging struct {
	Limit  int
	After  string
	Before string
}

func (p Paging) query() url.Values {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.After != "" {
		q.Set("after", p.After)
	}
	if p.Before != "" {
		q.Set("before", p.Before)
	}
	return q
}

func (c *Client) GetPlayer(ctx context.Context, t tag.Tag) (*PlayerResponse, error) {
	return doRequest[PlayerResponse](ctx, c, "/players/"+t.URLEscaped(), nil)
}

func (c *Client) GetBattleLog(ctx context.Context, t tag.Tag, p Paging) (*BattleLogResponse, error) {
	return doRequest[BattleLogResponse](ctx, c, "/players/"+t.URLEscaped()+"/battlelog", p.query())
}

func (c *Client) GetClub(ctx context.Context, t tag.Tag) (*ClubResponse, error) {
	return doRequest[ClubResponse](ctx, c, "/clubs/"+t.URLEscaped(), nil)
}

func (c *Client) GetClubMembers(ctx context.Context, t tag.Tag, p Paging) (*ClubMembersResponse, error) {
	return doRequest[ClubMembersResponse](ctx, c, "/clubs/"+t.URLEscaped()+"/members", p.query())
}

// GetPlayerRankings lists top players; country is an ISO code or "global".
func (c *Client) GetPlayerRankings(ctx context.Context, country string, p Paging) (*PlayerRankingsResponse, error) {
	return doRequest[PlayerRankingsResponse](ctx, c, "/rankings/"+url.PathEscape(country)+"/players", p.query())
}

func (c *Client) GetClubRankings(ctx context.Context, country string, p Paging) (*ClubRankingsResponse, error) {
	return doRequest[ClubRankingsResponse](ctx, c, "/rankings/"+url.PathEscape(country)+"/clubs", p.query())
}

func (c *Client) GetBrawlerRankings(ctx context.Context, country string, brawlerID int64, p Paging) (*PlayerRankingsResponse, error) {
	path := fmt.Sprintf("/rankings/%s/brawlers/%d", url.PathEscape(country), brawlerID)
	return doRequest[PlayerRankingsResponse](ctx, c, path, p.query())
}

func (c *Client) GetBrawlers(ctx context.Context, p Paging) (*BrawlersResponse, error) {
	return doRequest[BrawlersResponse](ctx, c, "/brawlers", p.query())
}

func (c *Client) GetEventRotation(ctx context.Context) ([]ScheduledEvent, error) {
	events, err := doRequest[[]ScheduledEvent](ctx, c, "/events/rotation", nil)
	if err != nil {
		return nil, err
	}
	return *events, nil
}

func doRequest[T any](ctx context.Context, client *Client, path string, query url.Values) (*T, error) {
	if err := client.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	uri := client.baseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}
	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if client.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+client.apiKey)
	}

	start := time.Now()
	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.DoTimeout(req, resp, constants.ExternalAPITimeout); err != nil {
			return nil, err
		}
	}

	client.updateRateLimit(resp)
	client.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("took", time.Since(start)).
		Msg("upstream request")

	if resp.StatusCode() != fasthttp.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode()}
		// best effort: maintenance pages are not always JSON
		_ = json.Unmarshal(resp.Body(), apiErr)
		return nil, apiErr
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &result, nil
}
