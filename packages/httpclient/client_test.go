package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/objects", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	client := NewClient()
	resp, err := client.Do(context.Background(), NewRequest("GET", server.URL+"/objects"))

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, resp.IsSuccess())
	assert.True(t, resp.IsJSON())
	assert.Equal(t, `{"items":[]}`, resp.BodyString())
}

func TestClient_SendsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	req := NewRequest("PUT", server.URL).
		SetHeader("Content-Type", "application/json").
		SetBody([]byte(`{"name":"bucket"}`))

	resp, err := NewClient().Do(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(WithTimeout(50 * time.Millisecond))
	_, err := client.Do(context.Background(), NewRequest("GET", server.URL))

	assert.Error(t, err)
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient().Do(ctx, NewRequest("GET", server.URL))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_DefaultHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "objkit", r.Header.Get("User-Agent"))
	}))
	defer server.Close()

	client := NewClient(WithDefaultHeaders(map[string]string{
		"Authorization": "service-key",
		"User-Agent":    "objkit",
	}))
	resp, err := client.Do(context.Background(), NewRequest("GET", server.URL))

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestClient_RequestHeadersOverrideDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "caller-key", r.Header.Get("Authorization"))
	}))
	defer server.Close()

	client := NewClient(WithDefaultHeader("Authorization", "default-key"))
	req := NewRequest("GET", server.URL).SetHeader("Authorization", "caller-key")

	_, err := client.Do(context.Background(), req)
	require.NoError(t, err)
}

func TestClient_RequestIDs(t *testing.T) {
	seen := make(map[string]bool)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "request id reused: %s", id)
		seen[id] = true
	}))
	defer server.Close()

	client := NewClient(WithRequestIDs(true))
	for i := 0; i < 3; i++ {
		_, err := client.Do(context.Background(), NewRequest("GET", server.URL))
		require.NoError(t, err)
	}
}

func TestClient_NoFollowRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	}))
	defer server.Close()

	client := NewClient(WithFollowRedirects(false))
	resp, err := client.Do(context.Background(), NewRequest("GET", server.URL+"/redirect"))

	require.NoError(t, err)
	assert.Equal(t, 302, resp.StatusCode)
}

func TestClient_MaxRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/redirect", http.StatusFound)
	}))
	defer server.Close()

	client := NewClient(WithMaxRedirects(3))
	resp, err := client.Do(context.Background(), NewRequest("GET", server.URL+"/redirect"))

	require.NoError(t, err)
	assert.Equal(t, 302, resp.StatusCode)
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
		errMsg  string
	}{
		{name: "valid http URL", url: "http://example.com/path"},
		{name: "valid https URL", url: "https://example.com/path"},
		{name: "invalid scheme", url: "ftp://example.com", wantErr: true, errMsg: "unsupported URL scheme"},
		{name: "missing scheme", url: "example.com/path", wantErr: true, errMsg: "unsupported URL scheme"},
		{name: "missing host", url: "http:///path", wantErr: true, errMsg: "URL must have a host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResponse_Header(t *testing.T) {
	resp := &Response{Headers: map[string]string{"Content-Type": "text/plain"}}
	assert.Equal(t, "text/plain", resp.Header("content-type"))
	assert.Empty(t, resp.Header("X-Missing"))
}

func TestResponse_IsSuccess(t *testing.T) {
	tests := []struct {
		statusCode int
		expected   bool
	}{
		{200, true},
		{201, true},
		{204, true},
		{299, true},
		{300, false},
		{404, false},
		{500, false},
	}

	for _, tt := range tests {
		resp := &Response{StatusCode: tt.statusCode}
		assert.Equal(t, tt.expected, resp.IsSuccess(), "StatusCode: %d", tt.statusCode)
	}
}

func TestRequest_WithQuery(t *testing.T) {
	req := NewRequest("GET", "http://example.com/list?limit=10")
	assert.Equal(t, "http://example.com/list?limit=10&offset=20", req.WithQuery(map[string]string{"offset": "20"}))
	assert.Equal(t, req.URL, req.WithQuery(nil))
}
