package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
)

var perfMeter = otel.Meter("autorecruiter.perf_stats")

// InstrumentPerfStats records process stats every interval until ctx is done.
// The gauges are created lazily so that they bind to the provider installed by Setup.
func InstrumentPerfStats(ctx context.Context, interval time.Duration) {
	cpuGauge, _ := perfMeter.Float64Gauge("cpu_usage")
	memoryGauge, _ := perfMeter.Int64Gauge("allocated_mb")
	goroutineGauge, _ := perfMeter.Int64Gauge("goroutine_count")

	go func() {
		var memStats runtime.MemStats
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				runtime.ReadMemStats(&memStats)

				cpuUsage, err := cpu.PercentWithContext(ctx, 0, false)
				if err == nil && len(cpuUsage) > 0 {
					cpuGauge.Record(ctx, cpuUsage[0])
				} else if err != nil {
					slog.Debug("failed to read cpu usage", "err", err)
				}

				memoryGauge.Record(ctx, int64(memStats.Alloc/1_000_000))
				goroutineGauge.Record(ctx, int64(runtime.NumGoroutine()))
			case <-ctx.Done():
				return
			}
		}
	}()
}
