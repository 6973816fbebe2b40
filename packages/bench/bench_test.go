package bench

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objkit/objkit/packages/transport"
)

func TestRunner_Run(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if hits.Load()%4 == 0 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	runner := New(transport.New())
	report, err := runner.Run(context.Background(), Config{
		URL:      server.URL,
		Requests: 8,
	})

	require.NoError(t, err)
	assert.Equal(t, 8, report.Total)
	assert.Equal(t, 6, report.Success)
	assert.Equal(t, 2, report.Errors)
	assert.Equal(t, int64(8), hits.Load())
	assert.Greater(t, report.P95, time.Duration(0))
	assert.GreaterOrEqual(t, report.Max, report.Min)
}

func TestRunner_RatePacing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	runner := New(transport.New())
	started := time.Now()
	report, err := runner.Run(context.Background(), Config{
		URL:      server.URL,
		Requests: 3,
		Rate:     50, // 20ms apart
	})

	require.NoError(t, err)
	assert.Equal(t, 3, report.Success)
	// Two pacing gaps at 20ms each.
	assert.GreaterOrEqual(t, time.Since(started), 40*time.Millisecond)
}

func TestRunner_RejectsZeroRequests(t *testing.T) {
	_, err := New(transport.New()).Run(context.Background(), Config{URL: "http://example.com"})
	assert.Error(t, err)
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(transport.New()).Run(ctx, Config{URL: "http://example.com", Requests: 5, Rate: 1})
	assert.Error(t, err)
}
