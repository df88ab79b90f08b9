package chrono

import (
	"autorecruiter/internal/components/telemetry"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	report_cron_event = "cron.event"
	report_cron_job   = "cron.job"
)

// CronAPI runs callbacks on cron specs evaluated in America/New_York.
type CronAPI interface {
	// Cron registers callback to run on spec, a malformed spec is returned as an error.
	Cron(spec string, callback func()) error
	// Next is the earliest upcoming run over all callbacks, zero when none are registered.
	Next() time.Time
	Stop()
}

// StandardCron is the CronAPI backed by `github.com/robfig/cron/v3`.
type StandardCron struct {
	runner *cron.Cron
}

func NewStandardCron(tel telemetry.API) StandardCron {
	runner := cron.New(
		cron.WithLogger(cronReporter{tel: tel}),
		cron.WithLocation(eastern),
	)
	runner.Start()
	return StandardCron{runner: runner}
}

func (s StandardCron) Cron(spec string, callback func()) error {
	_, err := s.runner.AddFunc(spec, callback)
	if err != nil {
		return fmt.Errorf("cron spec %q: %w", spec, err)
	}
	return nil
}

func (s StandardCron) Next() time.Time {
	var next time.Time
	for _, entry := range s.runner.Entries() {
		if next.IsZero() || entry.Next.Before(next) {
			next = entry.Next
		}
	}
	return next
}

// Stop stops scheduling new runs and waits for a running job to finish.
func (s StandardCron) Stop() {
	<-s.runner.Stop().Done()
}

// cronReporter forwards the cron runner's log lines to telemetry.
type cronReporter struct {
	tel telemetry.API
}

func pairs(keysAndValues []any) []any {
	out := make([]any, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		out = append(out, fmt.Sprintf("%v=%v", keysAndValues[i], keysAndValues[i+1]))
	}
	return out
}

func (r cronReporter) Info(msg string, keysAndValues ...any) {
	r.tel.ReportDebug(report_cron_event, append([]any{msg}, pairs(keysAndValues)...)...)
}

func (r cronReporter) Error(err error, msg string, keysAndValues ...any) {
	r.tel.ReportBroken(report_cron_job, append([]any{err, msg}, pairs(keysAndValues)...)...)
}
