package telemetry

import "fmt"

// API is how components report what happened to them. Components receive it
// as a dependency so tests can swap in a RecorderAPI and assert on reports.
type API interface {
	// ReportBroken reports a failure someone should look at, like a search
	// page that stopped returning 200 or an email that could not be sent.
	//
	// `id` names the component and operation, for example `client.fetch-detail`,
	// in lowercase with dashes inside an operation name. Urls, status codes and
	// errors go into params, not into the id.
	ReportBroken(id string, params ...any)

	// ReportWarning reports something unexpected that the pipeline recovered
	// from, like a listing card without a job id. Ids follow ReportBroken.
	ReportWarning(id string, params ...any)

	// ReportDebug reports progress that only matters while debugging.
	ReportDebug(msg string, params ...any)

	// ReportCount reports a measurement taken now, like the number of listings
	// a search collected. Successive counts are samples, not increments.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with a namespace, packages wrap the API they
// receive so reports from "indeed" and "report" stay apart.
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) scoped(id string) string {
	return fmt.Sprintf("%s: %s", s.namespace, id)
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.scoped(id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.scoped(id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.scoped(msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.scoped(id), count)
}
