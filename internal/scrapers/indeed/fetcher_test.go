package indeed

import (
	"autorecruiter/internal/components/telemetry"
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(t testing.TB) (*HttpFetcher, *telemetry.RecorderAPI) {
	rec := telemetry.NewRecorderAPI()
	fetcher, err := NewHttpFetcher(rec, HttpFetcherOptions{RequestsPerSecond: 100})
	require.NoError(t, err)
	return fetcher, rec
}

func TestFetchHeaders(t *testing.T) {
	var received http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Clone()
		w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	fetcher, _ := newTestFetcher(t)
	body, ok := fetcher.Fetch(context.Background(), server.URL)
	require.True(t, ok)
	require.Equal(t, "<html>ok</html>", body)

	for key, value := range browserHeaders {
		require.Equal(t, value, received.Get(key), key)
	}
}

func TestFetchNonOk(t *testing.T) {
	statuses := []int{
		http.StatusNotFound,
		http.StatusForbidden,
		http.StatusInternalServerError,
		http.StatusNoContent,
	}
	for _, status := range statuses {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		fetcher, rec := newTestFetcher(t)
		body, ok := fetcher.Fetch(context.Background(), server.URL)
		require.False(t, ok)
		require.Empty(t, body)
		require.Len(t, rec.Reports(telemetry.REPORT_BROKEN, report_fetcher_fetch), 1)

		server.Close()
	}
}

func TestFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	fetcher, rec := newTestFetcher(t)
	_, ok := fetcher.Fetch(context.Background(), url)
	require.False(t, ok)
	require.NotEmpty(t, rec.Reports(telemetry.REPORT_BROKEN, report_fetcher_fetch))
}

func TestFetchEncodings(t *testing.T) {
	const page = "<html><body>compressed listing page</body></html>"

	encoders := map[string]func(w *bytes.Buffer){
		"gzip": func(w *bytes.Buffer) {
			gz := gzip.NewWriter(w)
			gz.Write([]byte(page))
			gz.Close()
		},
		"deflate": func(w *bytes.Buffer) {
			zw := zlib.NewWriter(w)
			zw.Write([]byte(page))
			zw.Close()
		},
		"br": func(w *bytes.Buffer) {
			bw := brotli.NewWriter(w)
			bw.Write([]byte(page))
			bw.Close()
		},
	}

	for encoding, encode := range encoders {
		t.Run(encoding, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var buf bytes.Buffer
				encode(&buf)
				w.Header().Set("content-encoding", encoding)
				w.Write(buf.Bytes())
			}))
			defer server.Close()

			fetcher, _ := newTestFetcher(t)
			body, ok := fetcher.Fetch(context.Background(), server.URL)
			require.True(t, ok)
			require.Equal(t, page, body)
		})
	}
}

func TestFetchDumpDir(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>dumped</html>"))
	}))
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "http")
	fetcher, err := NewHttpFetcher(telemetry.NewRecorderAPI(), HttpFetcherOptions{
		RequestsPerSecond: 100,
		DumpDir:           dir,
	})
	require.NoError(t, err)

	_, ok := fetcher.Fetch(context.Background(), server.URL)
	require.True(t, ok)

	contents, err := os.ReadFile(filepath.Join(dir, "0001.txt"))
	require.NoError(t, err)
	require.Contains(t, string(contents), "<html>dumped</html>")
}
