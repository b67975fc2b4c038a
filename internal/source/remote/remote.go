package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"go.uber.org/zap"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/source"
)

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client fetches lead records from a provider's JSON API:
// GET {base}/v1/people and GET {base}/v1/companies, bearer-token
// authenticated, returning an array of record objects.
type Client struct {
	cfg     Config
	hc      *http.Client
	limiter *HostLimiter
	log     *zap.Logger
}

func New(cfg Config, limiter *HostLimiter, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg:     cfg,
		hc:      &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		log:     log,
	}
}

func (c *Client) Name() string { return "remote" }

func (c *Client) FetchPeople(ctx context.Context, q source.Query) ([]domain.RawRecord, error) {
	return c.fetch(ctx, "people", q)
}

func (c *Client) FetchCompanies(ctx context.Context, q source.Query) ([]domain.RawRecord, error) {
	return c.fetch(ctx, "companies", q)
}

func (c *Client) fetch(ctx context.Context, resource string, q source.Query) ([]domain.RawRecord, error) {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: bad base url %q", domain.ErrSourceUnavailable, c.cfg.BaseURL)
	}
	u.Path = path.Join(u.Path, "v1", resource)

	vals := url.Values{}
	vals.Set("q", q.Keywords)
	if q.Location != "" {
		vals.Set("location", q.Location)
	}
	if q.Industry != "" {
		vals.Set("industry", q.Industry)
	}
	if q.Size != "" {
		vals.Set("size", q.Size)
	}
	if q.Limit > 0 {
		vals.Set("limit", strconv.Itoa(q.Limit))
	}
	u.RawQuery = vals.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	req.Header.Set("User-Agent", "LeadScout/1.0 (+local)")
	req.Header.Set("Accept", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, u.String()); err != nil {
			return nil, fmt.Errorf("%w: rate wait: %v", domain.ErrSourceUnavailable, err)
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s get: %v", domain.ErrSourceUnavailable, resource, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %s status %d", domain.ErrSourceUnavailable, resource, res.StatusCode)
	}

	var records []domain.RawRecord
	if err := json.NewDecoder(res.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrSourceUnavailable, resource, err)
	}

	c.log.Debug("remote fetch",
		zap.String("resource", resource),
		zap.String("keywords", q.Keywords),
		zap.Int("records", len(records)))
	return records, nil
}
