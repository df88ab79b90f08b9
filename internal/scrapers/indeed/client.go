package indeed

import (
	"autorecruiter/internal/components/assert"
	"autorecruiter/internal/components/chrono"
	"autorecruiter/internal/components/telemetry"
	"autorecruiter/internal/jobs"
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	report_client_collect        = "client.collect"
	report_client_collect_stall  = "client.collect-stall"
	report_client_missing_id     = "client.missing-job-id"
	report_client_fetch_detail   = "client.fetch-detail"
	report_client_collected      = "client.collected"
	report_client_detail_skipped = "client.detail-skipped"
)

// maxStalls is how many consecutive pages without a new listing are retried
// before pagination gives up.
const maxStalls = 5

// Client collects listings from indeed's search and enriches them with
// their detail pages. It holds no per-search state and is safe for
// concurrent use.
type Client struct {
	fetcher           Fetcher
	tel               telemetry.API
	time              chrono.TimeAPI
	detailConcurrency int
	details           *expirable.LRU[string, jobs.Detail]
}

type ClientOption func(cfg *clientCfg)

type clientCfg struct {
	fetcher           Fetcher
	tel               telemetry.API
	time              chrono.TimeAPI
	detailConcurrency int
	detailCacheTTL    time.Duration
	fetcherOptions    HttpFetcherOptions
}

func WithFetcher(fetcher Fetcher) ClientOption {
	return func(cfg *clientCfg) {
		cfg.fetcher = fetcher
	}
}

func WithCustomTelemetryAPI(tel telemetry.API) ClientOption {
	return func(cfg *clientCfg) {
		cfg.tel = tel
	}
}

func WithCustomTimeAPI(time chrono.TimeAPI) ClientOption {
	return func(cfg *clientCfg) {
		cfg.time = time
	}
}

// WithDetailConcurrency sets how many detail pages are fetched at once, 1 fetches them one by one.
func WithDetailConcurrency(n int) ClientOption {
	return func(cfg *clientCfg) {
		cfg.detailConcurrency = n
	}
}

// WithDetailCacheTTL sets how long a parsed detail page is reused for listings
// that show up under several searches, 0 disables the cache.
func WithDetailCacheTTL(ttl time.Duration) ClientOption {
	return func(cfg *clientCfg) {
		cfg.detailCacheTTL = ttl
	}
}

// WithHttpFetcherOptions configures the default fetcher, it is ignored when WithFetcher is given.
func WithHttpFetcherOptions(opts HttpFetcherOptions) ClientOption {
	return func(cfg *clientCfg) {
		cfg.fetcherOptions = opts
	}
}

func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := clientCfg{
		detailConcurrency: 4,
		detailCacheTTL:    time.Hour,
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.tel == nil {
		cfg.tel = telemetry.SlogAPI{}
	}
	if cfg.time == nil {
		cfg.time = chrono.NewStandardTime()
	}
	if cfg.detailConcurrency < 1 {
		cfg.detailConcurrency = 1
	}

	tel := telemetry.NewScopedAPI("indeed", cfg.tel)

	if cfg.fetcher == nil {
		fetcher, err := NewHttpFetcher(tel, cfg.fetcherOptions)
		if err != nil {
			return nil, err
		}
		cfg.fetcher = fetcher
	}
	assert.NotNil(cfg.fetcher)

	c := &Client{
		fetcher:           cfg.fetcher,
		tel:               tel,
		time:              cfg.time,
		detailConcurrency: cfg.detailConcurrency,
	}
	if cfg.detailCacheTTL > 0 {
		c.details = expirable.NewLRU[string, jobs.Detail](4096, nil, cfg.detailCacheTTL)
	}
	return c, nil
}

// Collect pages through the search results for the criteria until at least
// `target` unique listings are found or pagination stalls, then fetches the
// detail page of every listing. Cancelling ctx returns what was found so far.
func (c *Client) Collect(ctx context.Context, criteria jobs.Criteria, target int) jobs.Collection {
	summaries := c.paginate(ctx, criteria, target)
	collection := c.enrich(ctx, criteria, summaries)
	c.tel.ReportCount(report_client_collected, int64(len(collection)))
	return collection
}

// paginate fetches search pages keeping the offset equal to the number of
// unique listings collected so far. A page that adds nothing is a stall, the
// same offset is retried up to maxStalls times before giving up.
func (c *Client) paginate(ctx context.Context, criteria jobs.Criteria, target int) map[string]jobs.Summary {
	found := map[string]jobs.Summary{}
	stalls := 0

	for len(found) < target {
		if ctx.Err() != nil {
			c.tel.ReportWarning(report_client_collect, ctx.Err(), len(found))
			break
		}

		criteria.Offset = len(found)
		url := SearchUrl(criteria)
		c.tel.ReportDebug("fetching search page", url)

		before := len(found)
		body, ok := c.fetcher.Fetch(ctx, url)
		if ok {
			for _, summary := range ParseListings(body) {
				if summary.JobId == nil {
					c.tel.ReportWarning(report_client_missing_id, url, jobs.Deref(summary.Title))
					continue
				}
				found[*summary.JobId] = summary
			}
		}

		if len(found) > before {
			stalls = 0
			continue
		}
		if stalls >= maxStalls {
			c.tel.ReportWarning(report_client_collect_stall, criteria.Keywords, len(found), target)
			break
		}
		stalls++
	}

	return found
}

func (c *Client) enrich(ctx context.Context, criteria jobs.Criteria, summaries map[string]jobs.Summary) jobs.Collection {
	out := jobs.NewSyncCollection(len(summaries))
	jobType := criteria.JobType.Label()

	sem := make(chan struct{}, c.detailConcurrency)
	wg := sync.WaitGroup{}
	for _, summary := range summaries {
		listing := jobs.Listing{
			Summary:    summary,
			Detail:     jobs.EmptyDetail(),
			JobType:    jobType,
			DetailsUrl: DetailsUrl(summary.Company, summary.Title, summary.JobId),
		}
		if listing.DetailsUrl == nil {
			c.tel.ReportWarning(report_client_detail_skipped, jobs.Deref(summary.JobId))
			out.Put(listing)
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(listing jobs.Listing) {
			defer wg.Done()
			defer func() { <-sem }()

			listing.Detail = c.detail(ctx, *listing.DetailsUrl)
			out.Put(listing)
		}(listing)
	}
	wg.Wait()

	return out.Collection()
}

// detail fetches and parses a detail page, a failed fetch yields the empty detail.
func (c *Client) detail(ctx context.Context, url string) jobs.Detail {
	key := cacheKey(url)
	if c.details != nil {
		cached, ok := c.details.Get(key)
		if ok {
			return cached
		}
	}

	if ctx.Err() != nil {
		return jobs.EmptyDetail()
	}
	body, ok := c.fetcher.Fetch(ctx, url)
	if !ok {
		c.tel.ReportWarning(report_client_fetch_detail, url)
		return jobs.EmptyDetail()
	}

	detail := ParseDetail(body, c.time.Now())
	if c.details != nil {
		c.details.Add(key, detail)
	}
	return detail
}
