package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/objkit/objkit/packages/bench"
	"github.com/objkit/objkit/packages/history"
	"github.com/objkit/objkit/packages/schema"
	"github.com/objkit/objkit/packages/transport"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(verbose bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = verbose
	}
}

func WithNoColor(noColor bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = noColor
	}
}

// FormatResult renders one call result: a colored status line, then the
// response data or the normalized error.
func (f *ConsoleFormatter) FormatResult(method, url string, res *transport.Result, duration time.Duration) {
	if res.HasError() {
		fail := color.New(color.FgRed, color.Bold)
		_, _ = fail.Fprint(f.writer, "ERR")
		fmt.Fprintf(f.writer, " %s %s (%s)\n", method, url, duration.Round(time.Millisecond))
		f.formatError(res.Err)
		return
	}

	ok := color.New(color.FgGreen, color.Bold)
	_, _ = ok.Fprint(f.writer, "OK")
	fmt.Fprintf(f.writer, " %s %s (%s)\n", method, url, duration.Round(time.Millisecond))
	f.formatData(res.Data)
}

func (f *ConsoleFormatter) formatData(data any) {
	switch v := data.(type) {
	case nil:
		fmt.Fprintln(f.writer, "null")
	case []byte:
		if f.verbose {
			_, _ = f.writer.Write(v)
			fmt.Fprintln(f.writer)
		} else {
			fmt.Fprintf(f.writer, "[%d bytes]\n", len(v))
		}
	default:
		pretty, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			fmt.Fprintf(f.writer, "%v\n", v)
			return
		}
		fmt.Fprintf(f.writer, "%s\n", pretty)
	}
}

func (f *ConsoleFormatter) formatError(storageErr *transport.StorageError) {
	fmt.Fprintf(f.writer, "  message: %s\n", storageErr.Message)
	if storageErr.ErrorCode != "" {
		fmt.Fprintf(f.writer, "  error: %s\n", storageErr.ErrorCode)
	}
	if storageErr.StatusCode != "" {
		fmt.Fprintf(f.writer, "  statusCode: %s\n", storageErr.StatusCode)
	}
}

// FormatError renders a CLI-level failure (bad flags, unreadable files).
func (f *ConsoleFormatter) FormatError(err error) {
	fail := color.New(color.FgRed)
	_, _ = fail.Fprintf(f.writer, "error: %v\n", err)
}

// FormatSchemaReport renders a schema validation outcome.
func (f *ConsoleFormatter) FormatSchemaReport(report *schema.Report) {
	if report.Valid {
		ok := color.New(color.FgGreen)
		_, _ = ok.Fprintln(f.writer, "schema: valid")
		return
	}

	fail := color.New(color.FgRed)
	_, _ = fail.Fprintln(f.writer, "schema: invalid")
	for _, msg := range report.Errors {
		fmt.Fprintf(f.writer, "  - %s\n", msg)
	}
}

// FormatBenchReport renders a bench run summary.
func (f *ConsoleFormatter) FormatBenchReport(report *bench.Report) {
	fmt.Fprintf(f.writer, "requests: %d (%d ok, %d failed) in %s (%.1f rps)\n",
		report.Total, report.Success, report.Errors, report.Elapsed.Round(time.Millisecond), report.RPS)
	fmt.Fprintf(f.writer, "latency: min %s  mean %s  p50 %s  p95 %s  p99 %s  max %s\n",
		report.Min.Round(time.Microsecond), report.Mean.Round(time.Microsecond),
		report.P50.Round(time.Microsecond), report.P95.Round(time.Microsecond),
		report.P99.Round(time.Microsecond), report.Max.Round(time.Microsecond))
}

// FormatHistory renders recorded requests, newest first.
func (f *ConsoleFormatter) FormatHistory(entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(f.writer, "no recorded requests")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(f.writer, "%s  %-6s %s  %s (%s)\n",
			e.Time.Format(time.RFC3339), e.Method, e.URL, e.Status, e.Duration.Round(time.Millisecond))
	}
}
