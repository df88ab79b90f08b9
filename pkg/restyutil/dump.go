package restyutil

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// Output receives one formatted request/response exchange per call.
type Output interface {
	Write(name string, contents string)
}

type DirOutput struct {
	dir string
}

// NewDirOutput creates dir if it is missing, existing dumps are kept.
func NewDirOutput(dir string) (DirOutput, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return DirOutput{}, err
	}
	return DirOutput{dir: dir}, nil
}

func (o DirOutput) Write(name string, contents string) {
	err := os.WriteFile(filepath.Join(o.dir, name), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write http dump", "name", name, "err", err)
	}
}

// DumpMessages writes every completed exchange made by client to output.
func DumpMessages(client *resty.Client, output Output) {
	var counter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := atomic.AddUint64(&counter, 1)
		output.Write(fmt.Sprintf("%04d.txt", id), FormatMessage(res))
		return nil
	})
}

func formatHeaders(headers http.Header) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out strings.Builder
	for _, k := range keys {
		for _, v := range headers[k] {
			out.WriteString(k)
			out.WriteString(": ")
			out.WriteString(v)
			out.WriteString("\n")
		}
	}
	return strings.TrimSuffix(out.String(), "\n")
}

const messageTemplate = `---- REQUEST ----

%s %s

%s

---- RESPONSE ----

%d %s

%s

%s`

// FormatMessage renders the request line and headers followed by the
// response status, headers and body.
func FormatMessage(res *resty.Response) string {
	var reqHeaders http.Header
	if res.Request.RawRequest != nil {
		reqHeaders = res.Request.RawRequest.Header
	} else {
		reqHeaders = res.Request.Header
	}

	return fmt.Sprintf(
		messageTemplate,
		res.Request.Method, res.Request.URL,
		formatHeaders(reqHeaders),
		res.StatusCode(), res.Status(),
		formatHeaders(res.Header()),
		res.String(),
	)
}
