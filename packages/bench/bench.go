// Package bench measures client-side latency of a storage endpoint by
// issuing a paced sequence of GET requests and aggregating the results
// into an HDR histogram.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"golang.org/x/time/rate"

	"github.com/objkit/objkit/packages/transport"
)

// Config describes one bench run.
type Config struct {
	URL      string
	Headers  map[string]string
	Requests int
	// Rate caps requests per second; 0 means unpaced.
	Rate float64
}

// Report aggregates a finished run.
type Report struct {
	Total   int
	Success int
	Errors  int
	Elapsed time.Duration
	RPS     float64
	Min     time.Duration
	Mean    time.Duration
	P50     time.Duration
	P95     time.Duration
	P99     time.Duration
	Max     time.Duration
}

// Runner drives bench runs through a shared executor.
type Runner struct {
	exec *transport.Executor
}

func New(exec *transport.Executor) *Runner {
	return &Runner{exec: exec}
}

// Run issues cfg.Requests GET requests sequentially, pacing them with a
// token bucket when cfg.Rate is set. The first context error aborts the
// run.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.Requests <= 0 {
		return nil, fmt.Errorf("bench needs at least one request, got %d", cfg.Requests)
	}

	var limiter *rate.Limiter
	if cfg.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Rate), 1)
	}

	// 1us to 60s range, 3 significant digits.
	histogram := hdrhistogram.New(1, 60_000_000, 3)
	report := &Report{}
	opts := &transport.FetchOptions{Headers: cfg.Headers, NoResolveJSON: true}

	started := time.Now()
	for i := 0; i < cfg.Requests; i++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		} else if err := ctx.Err(); err != nil {
			return nil, err
		}

		begin := time.Now()
		res := r.exec.Get(ctx, cfg.URL, opts)
		elapsed := time.Since(begin)

		report.Total++
		if res.HasError() {
			report.Errors++
		} else {
			report.Success++
		}

		latencyUs := elapsed.Microseconds()
		if latencyUs < 1 {
			latencyUs = 1
		}
		if latencyUs > 60_000_000 {
			latencyUs = 60_000_000
		}
		_ = histogram.RecordValue(latencyUs)
	}
	report.Elapsed = time.Since(started)

	if report.Elapsed > 0 {
		report.RPS = float64(report.Total) / report.Elapsed.Seconds()
	}
	report.Min = time.Duration(histogram.Min()) * time.Microsecond
	report.Mean = time.Duration(histogram.Mean()) * time.Microsecond
	report.P50 = time.Duration(histogram.ValueAtQuantile(50)) * time.Microsecond
	report.P95 = time.Duration(histogram.ValueAtQuantile(95)) * time.Microsecond
	report.P99 = time.Duration(histogram.ValueAtQuantile(99)) * time.Microsecond
	report.Max = time.Duration(histogram.Max()) * time.Microsecond

	return report, nil
}
