package indeed

import (
	"autorecruiter/internal/components/chrono"
	"autorecruiter/internal/components/telemetry"
	"autorecruiter/internal/jobs"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeFetcher serves search pages from `page` and detail pages from `detail`,
// recording every url it was asked for.
type fakeFetcher struct {
	lock   sync.Mutex
	search []string
	detail []string

	page       func(call int) string
	detailPage func(url string) (string, bool)
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, bool) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if strings.HasPrefix(url, "https://www.indeed.com/jobs?") {
		f.search = append(f.search, url)
		return f.page(len(f.search) - 1), true
	}
	f.detail = append(f.detail, url)
	if f.detailPage == nil {
		return "", false
	}
	return f.detailPage(url)
}

func card(company, title, id string) string {
	return fmt.Sprintf(`<div class="jobsearch-SerpJobCard">
		<div class="title">%s</div>
		<div class="sjcl"><span class="company">%s</span><div class="recJobLoc" id="recJobLoc_%s"></div></div>
	</div>`, title, company, id)
}

var criteria = jobs.Criteria{
	Keywords:  "data analyst",
	ZipCode:   "08096",
	Radius:    15,
	JobType:   jobs.FULL_TIME,
	SalaryMin: "$40,000",
}

func newTestClient(t testing.TB, fetcher Fetcher, opts ...ClientOption) (*Client, *telemetry.RecorderAPI) {
	rec := telemetry.NewRecorderAPI()
	opts = append(
		[]ClientOption{
			WithFetcher(fetcher),
			WithCustomTelemetryAPI(rec),
			WithCustomTimeAPI(chrono.FixedTime{At: now}),
		},
		opts...,
	)
	client, err := NewClient(opts...)
	require.NoError(t, err)
	return client, rec
}

func TestCollectStall(t *testing.T) {
	fetcher := &fakeFetcher{
		page: func(int) string {
			return card("Acme", "Data Analyst", "same")
		},
	}
	client, rec := newTestClient(t, fetcher)

	collection := client.Collect(context.Background(), criteria, 10)

	require.Len(t, collection, 1)
	// one page that grows the collection, 5 retried stalls, then the stall that stops it:
	// the stall check runs after the fetch, as in the pagination loop of generate_job_report.py
	require.Len(t, fetcher.search, 7)
	for _, url := range fetcher.search[1:] {
		require.Contains(t, url, "&start=1")
	}
	require.Len(t, rec.Reports(telemetry.REPORT_WARNING, report_client_collect_stall), 1)
}

func TestCollectTarget(t *testing.T) {
	testCases := []struct {
		perPage       int
		target        int
		expectedCalls int
	}{
		{perPage: 3, target: 10, expectedCalls: 4},
		{perPage: 5, target: 10, expectedCalls: 2},
		{perPage: 1, target: 3, expectedCalls: 3},
		{perPage: 10, target: 1, expectedCalls: 1},
	}

	for _, test := range testCases {
		t.Run(fmt.Sprintf("%d per page, target %d", test.perPage, test.target), func(t *testing.T) {
			fetcher := &fakeFetcher{
				page: func(call int) string {
					var out strings.Builder
					for i := 0; i < test.perPage; i++ {
						out.WriteString(card("Acme", "Data Analyst", fmt.Sprintf("id%d_%d", call, i)))
					}
					return out.String()
				},
			}
			client, _ := newTestClient(t, fetcher)

			collection := client.Collect(context.Background(), criteria, test.target)
			require.Len(t, fetcher.search, test.expectedCalls)
			require.Len(t, collection, test.expectedCalls*test.perPage)
			require.GreaterOrEqual(t, len(collection), test.target)

			// the offset follows the number of unique listings collected
			for call, url := range fetcher.search {
				require.True(t, strings.HasSuffix(url, fmt.Sprintf("&start=%d", call*test.perPage)), url)
			}
		})
	}
}

func TestCollectEnrichment(t *testing.T) {
	fetcher := &fakeFetcher{
		page: func(int) string {
			return card("Acme Corp", "Data Analyst", "good") +
				card("Broken Inc", "Office Admin", "broken") +
				`<div class="jobsearch-SerpJobCard"><div class="title">No Company</div>
					<div class="sjcl"><div class="recJobLoc" id="recJobLoc_nocompany"></div></div></div>` +
				`<div class="jobsearch-SerpJobCard"><div class="title">No Id</div></div>`
		},
		detailPage: func(url string) (string, bool) {
			if strings.Contains(url, "Broken-Inc") {
				return "", false
			}
			return detailPage, true
		},
	}
	client, rec := newTestClient(t, fetcher, WithDetailConcurrency(2))

	collection := client.Collect(context.Background(), criteria, 3)
	require.Len(t, collection, 3)

	good := collection["good"]
	require.Equal(t, "Full Time", good.JobType)
	require.Equal(t, "https://www.indeed.com/cmp/Acme-Corp/jobs/Data-Analyst-good", *good.DetailsUrl)
	require.Equal(t, "Trenton", *good.City)
	require.Equal(t, jobs.DEGREE_BACHELORS, good.CollegeDegree)

	broken := collection["broken"]
	require.Equal(t, "Office Admin", *broken.Title)
	require.Equal(t, jobs.EmptyDetail(), broken.Detail)
	require.NotNil(t, broken.DetailsUrl)

	noCompany := collection["nocompany"]
	require.Nil(t, noCompany.DetailsUrl)
	require.Equal(t, jobs.EmptyDetail(), noCompany.Detail)

	require.Len(t, fetcher.detail, 2)
	require.NotEmpty(t, rec.Reports(telemetry.REPORT_WARNING, report_client_missing_id))
	require.Len(t, rec.Reports(telemetry.REPORT_WARNING, report_client_fetch_detail), 1)
}

func TestCollectDetailCache(t *testing.T) {
	fetcher := &fakeFetcher{
		page: func(int) string {
			return card("Acme Corp", "Data Analyst", "cached")
		},
		detailPage: func(string) (string, bool) {
			return detailPage, true
		},
	}
	client, _ := newTestClient(t, fetcher)

	first := client.Collect(context.Background(), criteria, 1)
	second := client.Collect(context.Background(), criteria.WithKeywords("analyst"), 1)

	require.Len(t, fetcher.detail, 1)
	require.Equal(t, first["cached"].Detail, second["cached"].Detail)
}

func TestCollectCancelled(t *testing.T) {
	fetcher := &fakeFetcher{
		page: func(call int) string {
			return card("Acme", "Data Analyst", fmt.Sprint(call))
		},
	}
	client, _ := newTestClient(t, fetcher)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	collection := client.Collect(ctx, criteria, 100)
	require.Empty(t, collection)
	require.Empty(t, fetcher.search)
}

func TestCollectFetchFailure(t *testing.T) {
	failing := fetcherFunc(func(context.Context, string) (string, bool) {
		return "", false
	})
	client, _ := newTestClient(t, failing)

	require.Empty(t, client.Collect(context.Background(), criteria, 10))
}

type fetcherFunc func(ctx context.Context, url string) (string, bool)

func (f fetcherFunc) Fetch(ctx context.Context, url string) (string, bool) {
	return f(ctx, url)
}
