package telemetry

import (
	"strings"
	"sync"
)

type ReportKind int

const (
	REPORT_BROKEN ReportKind = iota
	REPORT_WARNING
	REPORT_DEBUG
	REPORT_COUNT
)

type Report struct {
	Kind   ReportKind
	Id     string
	Params []any
	Count  int64
}

// RecorderAPI is an API that keeps every report in memory so tests can assert on them.
// It is safe for concurrent use.
type RecorderAPI struct {
	lock    sync.Mutex
	reports []Report
}

func NewRecorderAPI() *RecorderAPI {
	return &RecorderAPI{}
}

func (r *RecorderAPI) record(report Report) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.reports = append(r.reports, report)
}

func (r *RecorderAPI) ReportBroken(id string, params ...any) {
	r.record(Report{Kind: REPORT_BROKEN, Id: id, Params: params})
}

func (r *RecorderAPI) ReportWarning(id string, params ...any) {
	r.record(Report{Kind: REPORT_WARNING, Id: id, Params: params})
}

func (r *RecorderAPI) ReportDebug(msg string, params ...any) {
	r.record(Report{Kind: REPORT_DEBUG, Id: msg, Params: params})
}

func (r *RecorderAPI) ReportCount(id string, count int64) {
	r.record(Report{Kind: REPORT_COUNT, Id: id, Count: count})
}

// Reports returns the reports of the given kind whose id contains `idPart`,
// an empty `idPart` matches everything.
func (r *RecorderAPI) Reports(kind ReportKind, idPart string) []Report {
	r.lock.Lock()
	defer r.lock.Unlock()

	var out []Report
	for _, report := range r.reports {
		if report.Kind != kind {
			continue
		}
		if idPart != "" && !strings.Contains(report.Id, idPart) {
			continue
		}
		out = append(out, report)
	}
	return out
}
