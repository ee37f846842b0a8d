package trends

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"trends-exporter/internal/logger"

	"github.com/valyala/fasthttp"
	"golang.org/x/text/language"
)

// GoogleConfig configures the Google Trends RSS client.
type GoogleConfig struct {
	Endpoint  string
	Language  string
	Timeout   time.Duration
	MaxTerms  int
	UserAgent string
}

// GoogleClient fetches the trending RSS feed, one request per region.
type GoogleClient struct {
	cfg    GoogleConfig
	client *fasthttp.Client
	log    logger.Logger
}

type rssFeed struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []struct {
			Title string `xml:"title"`
		} `xml:"item"`
	} `xml:"channel"`
}

func NewGoogleClient(cfg GoogleConfig, log logger.Logger) *GoogleClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &GoogleClient{
		cfg: cfg,
		client: &fasthttp.Client{
			Name:                cfg.UserAgent,
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
			MaxIdleConnDuration: 90 * time.Second,
		},
		log: log,
	}
}

// TrendingSearches implements Provider.
func (c *GoogleClient) TrendingSearches(ctx context.Context, code string) ([]string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, err := language.ParseRegion(code); err != nil || len(code) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRegion, code)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	endpoint := c.requestURL(code)
	req.SetRequestURI(endpoint)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9")
	if c.cfg.UserAgent != "" {
		req.Header.SetUserAgent(c.cfg.UserAgent)
	}

	deadline := time.Now().Add(c.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	start := time.Now()
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("request trends for %s: %w", code, err)
	}

	c.log.Debug("TrendsClient", "provider responded", map[string]interface{}{
		"region":      code,
		"status":      resp.StatusCode(),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusBadRequest || status == fasthttp.StatusNotFound:
		return nil, fmt.Errorf("%w: %s (status %d)", ErrUnsupportedRegion, code, status)
	case status != fasthttp.StatusOK:
		return nil, fmt.Errorf("trends provider returned status %d for %s", status, code)
	}

	return c.parseFeed(code, resp.Body())
}

func (c *GoogleClient) requestURL(code string) string {
	params := url.Values{}
	params.Set("geo", code)
	if c.cfg.Language != "" {
		params.Set("hl", c.cfg.Language)
	}

	sep := "?"
	if strings.Contains(c.cfg.Endpoint, "?") {
		sep = "&"
	}
	return c.cfg.Endpoint + sep + params.Encode()
}

func (c *GoogleClient) parseFeed(code string, body []byte) ([]string, error) {
	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrMalformedResponse, code, err)
	}

	terms := make([]string, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		terms = append(terms, title)
		if c.cfg.MaxTerms > 0 && len(terms) == c.cfg.MaxTerms {
			break
		}
	}
	return terms, nil
}

// Shutdown drops idle provider connections.
func (c *GoogleClient) Shutdown() {
	c.client.CloseIdleConnections()
}
