package indeed

import (
	"autorecruiter/internal/components/assert"
	"autorecruiter/internal/components/telemetry"
	"autorecruiter/pkg/restyutil"
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/andybalholm/brotli"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	report_fetcher_fetch  = "fetcher.fetch"
	report_fetcher_decode = "fetcher.decode"
)

// browserHeaders are sent with every request, indeed blocks or alters
// responses for clients that do not look like a browser.
var browserHeaders = map[string]string{
	"accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"accept-encoding":           "gzip, deflate, sdch, br",
	"accept-language":           "en-US,en;q=0.9",
	"cache-control":             "no-cache",
	"pragma":                    "no-cache",
	"referer":                   "https://www.indeed.com/",
	"upgrade-insecure-requests": "1",
	"user-agent":                "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_14_3) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/73.0.3683.86 Safari/537.36",
}

// Fetcher retrieves a page, ok is true only if the page responded with 200.
// Failures are reported by the implementation and never returned.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (body string, ok bool)
}

type HttpFetcherOptions struct {
	// RequestsPerSecond defaults to 2.
	RequestsPerSecond float64
	// Timeout defaults to 30 seconds.
	Timeout time.Duration
	// DumpDir, when set, receives a copy of every request and response.
	DumpDir string
}

type HttpFetcher struct {
	http *resty.Client
	tel  telemetry.API
}

func NewHttpFetcher(tel telemetry.API, opts HttpFetcherOptions) (*HttpFetcher, error) {
	assert.NotNil(tel)

	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 30
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeaders(browserHeaders)
	client.SetTimeout(opts.Timeout)

	// burst >= 1 so that no requests are dropped
	rateLimiter := rate.NewLimiter(
		rate.Limit(opts.RequestsPerSecond),
		int(math.Max(1, math.Ceil(opts.RequestsPerSecond))),
	)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(client, tel)

	if opts.DumpDir != "" {
		out, err := restyutil.NewDirOutput(opts.DumpDir)
		if err != nil {
			return nil, fmt.Errorf("http dump dir: %w", err)
		}
		restyutil.DumpMessages(client, out)
	}

	return &HttpFetcher{http: client, tel: tel}, nil
}

func (f *HttpFetcher) Fetch(ctx context.Context, url string) (string, bool) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		f.tel.ReportBroken(report_fetcher_fetch, fmt.Errorf("get: %w", err), url)
		return "", false
	}
	if res.StatusCode() != http.StatusOK {
		f.tel.ReportBroken(
			report_fetcher_fetch,
			fmt.Errorf("unexpected status code %d", res.StatusCode()),
			url,
		)
		return "", false
	}

	body, err := decodeBody(res.Header().Get("content-encoding"), res.Body())
	if err != nil {
		f.tel.ReportBroken(report_fetcher_decode, err, url)
		return "", false
	}
	return string(body), true
}

var gzipMagic = []byte{0x1f, 0x8b}

// decodeBody undoes the content-encoding of a response, setting accept-encoding
// by hand turns off net/http's transparent decompression.
func decodeBody(encoding string, body []byte) ([]byte, error) {
	var reader io.Reader
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "gzip":
		// resty may have already decompressed it
		if !bytes.HasPrefix(body, gzipMagic) {
			return body, nil
		}
		gz, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		zr, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			// some servers send raw deflate without the zlib wrapper
			fr := flate.NewReader(bytes.NewReader(body))
			defer fr.Close()
			reader = fr
			break
		}
		defer zr.Close()
		reader = zr
	case "br":
		reader = brotli.NewReader(bytes.NewReader(body))
	default:
		return body, nil
	}

	decoded, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decode %s body: %w", encoding, err)
	}
	return decoded, nil
}
