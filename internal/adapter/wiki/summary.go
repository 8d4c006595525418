package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"topic-quiz/internal/cache"
	"topic-quiz/internal/domain"
	"topic-quiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const maxSummaryBytes = 1 << 20

// SummaryRetriever fetches a page summary from a Wikipedia-style REST API.
// Every failure degrades to "no context".
type SummaryRetriever struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	client    *http.Client
	cache     domain.Cache
	cacheTTL  time.Duration
	group     singleflight.Group
}

type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// Cache is optional.
	Cache    domain.Cache
	CacheTTL time.Duration
	// HTTPClient defaults to a client with Timeout.
	HTTPClient *http.Client
}

func NewSummaryRetriever(opts Options) *SummaryRetriever {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &SummaryRetriever{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		timeout:   opts.Timeout,
		client:    client,
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
	}
}

func (r *SummaryRetriever) Retrieve(ctx context.Context, topic string) *string {
	key := cache.GenerateCacheKey("context", "summary", topic)

	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, key); err == nil && cached != "" {
			return &cached
		} else if err != nil && err != domain.ErrCacheMiss {
			logger.Get().Warn("Context cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, _, _ := r.group.Do(key, func() (interface{}, error) {
		// Waiters share this fetch, so it must outlive any one caller.
		summary, err := r.fetch(context.WithoutCancel(ctx), topic)
		if err != nil {
			logger.Get().Info("No reference context for topic",
				zap.String("topic", topic),
				zap.Error(err),
			)
			return "", nil
		}
		if r.cache != nil {
			if err := r.cache.Set(context.WithoutCancel(ctx), key, summary, r.cacheTTL); err != nil {
				logger.Get().Warn("Context cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return summary, nil
	})

	summary, _ := v.(string)
	if summary == "" {
		return nil
	}
	return &summary
}

func (r *SummaryRetriever) fetch(ctx context.Context, topic string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	endpoint := r.baseURL + "/page/summary/" + url.PathEscape(topic)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("summary lookup returned status %d", resp.StatusCode)
	}

	var page struct {
		Extract string `json:"extract"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxSummaryBytes)).Decode(&page); err != nil {
		return "", fmt.Errorf("decode summary: %w", err)
	}
	extract := strings.TrimSpace(page.Extract)
	if extract == "" {
		return "", fmt.Errorf("summary has no extract")
	}
	return extract, nil
}

// NoopRetriever never returns context.
type NoopRetriever struct{}

func (NoopRetriever) Retrieve(context.Context, string) *string { return nil }

var (
	_ domain.ContextRetriever = (*SummaryRetriever)(nil)
	_ domain.ContextRetriever = NoopRetriever{}
)
