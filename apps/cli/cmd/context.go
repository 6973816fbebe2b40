package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/objkit/objkit/packages/core/config"
	"github.com/objkit/objkit/packages/core/env"
	"github.com/objkit/objkit/packages/history"
	"github.com/objkit/objkit/packages/httpclient"
	"github.com/objkit/objkit/packages/output"
	"github.com/objkit/objkit/packages/transport"
)

// runContext wires config, executor, formatter, and the optional history
// log for one command invocation.
type runContext struct {
	cfg  *config.Config
	exec *transport.Executor
	out  *output.ConsoleFormatter
	hist *history.Log
}

func newRunContext(noColor, verbose bool) (*runContext, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	if err := env.LoadDotenv(cwd); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}

	clientOpts := []httpclient.ClientOption{
		httpclient.WithFollowRedirects(cfg.GetFollowRedirects()),
		httpclient.WithValidateSSL(cfg.GetValidateSSL()),
		httpclient.WithRequestIDs(cfg.GetRequestIDs()),
	}
	if cfg.TimeoutMs > 0 {
		clientOpts = append(clientOpts, httpclient.WithTimeout(time.Duration(cfg.TimeoutMs)*time.Millisecond))
	}
	if cfg.MaxRedirects > 0 {
		clientOpts = append(clientOpts, httpclient.WithMaxRedirects(cfg.MaxRedirects))
	}
	if cfg.Proxy != "" {
		clientOpts = append(clientOpts, httpclient.WithProxy(cfg.Proxy))
	}
	if len(cfg.Headers) > 0 {
		clientOpts = append(clientOpts, httpclient.WithDefaultHeaders(cfg.Headers))
	}

	rc := &runContext{
		cfg:  cfg,
		exec: transport.New(transport.WithTransport(httpclient.NewClient(clientOpts...))),
		out: output.NewConsoleFormatter(
			output.WithNoColor(noColor || cfg.GetNoColor()),
			output.WithVerbose(verbose || cfg.GetVerbose()),
		),
	}

	if cfg.HistoryPath != "" {
		rc.hist, err = history.Open(cfg.HistoryPath)
		if err != nil {
			return nil, err
		}
	}

	return rc, nil
}

func (rc *runContext) close() {
	if rc.hist != nil {
		_ = rc.hist.Close()
	}
}

// resolveURL joins a path-only argument onto the configured service URL.
func (rc *runContext) resolveURL(arg string) string {
	if strings.HasPrefix(arg, "/") && rc.cfg.ServiceURL != "" {
		return strings.TrimSuffix(rc.cfg.ServiceURL, "/") + arg
	}
	return arg
}

func (rc *runContext) record(method, url string, res *transport.Result, duration time.Duration) {
	if rc.hist == nil {
		return
	}
	status := "ok"
	if res.HasError() {
		status = res.Err.Message
	}
	if err := rc.hist.Record(history.Entry{
		Time:     time.Now(),
		Method:   method,
		URL:      url,
		Status:   status,
		Duration: duration,
	}); err != nil {
		rc.out.FormatError(err)
	}
}

// parseHeaders converts repeated "Key: Value" flags into a header map.
func parseHeaders(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(flags))
	for _, flag := range flags {
		key, value, ok := strings.Cut(flag, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid header %q, expected \"Key: Value\"", flag)
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return headers, nil
}
