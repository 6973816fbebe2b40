package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strconv"

	"github.com/objkit/objkit/packages/httpclient"
	"github.com/objkit/objkit/packages/mimescan"
)

// Transport sends a fully built request and returns the aggregated
// response. *httpclient.Client satisfies this interface; tests inject
// doubles.
type Transport interface {
	Do(ctx context.Context, req *httpclient.Request) (*httpclient.Response, error)
}

// Executor issues storage-service requests. It is stateless and safe for
// concurrent use; construct one per transport/detector pair and share it.
type Executor struct {
	transport Transport
	detect    mimescan.Detector
}

type Option func(*Executor)

// WithTransport injects the HTTP transport.
func WithTransport(t Transport) Option {
	return func(e *Executor) {
		e.transport = t
	}
}

// WithDetector injects the MIME lookup used for uploads.
func WithDetector(d mimescan.Detector) Option {
	return func(e *Executor) {
		e.detect = d
	}
}

func New(opts ...Option) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.transport == nil {
		e.transport = httpclient.NewClient()
	}
	if e.detect == nil {
		e.detect = mimescan.New()
	}
	return e
}

// Get issues a GET request. No body is sent and no Content-Type is forced.
func (e *Executor) Get(ctx context.Context, url string, opts *FetchOptions) *Result {
	return e.send(ctx, http.MethodGet, url, nil, opts)
}

// Post issues a POST request with a JSON-encoded body. A nil body encodes
// as {}.
func (e *Executor) Post(ctx context.Context, url string, body any, opts *FetchOptions) *Result {
	return e.send(ctx, http.MethodPost, url, body, opts)
}

// Put issues a PUT request with a JSON-encoded body.
func (e *Executor) Put(ctx context.Context, url string, body any, opts *FetchOptions) *Result {
	return e.send(ctx, http.MethodPut, url, body, opts)
}

// Delete issues a DELETE request with a JSON-encoded body.
func (e *Executor) Delete(ctx context.Context, url string, body any, opts *FetchOptions) *Result {
	return e.send(ctx, http.MethodDelete, url, body, opts)
}

// PostFile uploads a file as a multipart POST. The file is read fully into
// memory; its content type comes from the file path, its multipart filename
// is the file's path.
func (e *Executor) PostFile(ctx context.Context, url string, file *os.File, fileOpts FileOptions, opts *FetchOptions) *Result {
	return e.sendFile(ctx, http.MethodPost, url, file, fileOpts, opts)
}

// PutFile uploads a file as a multipart PUT.
func (e *Executor) PutFile(ctx context.Context, url string, file *os.File, fileOpts FileOptions, opts *FetchOptions) *Result {
	return e.sendFile(ctx, http.MethodPut, url, file, fileOpts, opts)
}

// PostBinary uploads raw bytes as a multipart POST. Bytes carry no path, so
// the content type is guessed from the target URL's extension, falling back
// to content sniffing; the multipart filename is empty.
func (e *Executor) PostBinary(ctx context.Context, url string, data []byte, fileOpts FileOptions, opts *FetchOptions) *Result {
	return e.sendBinary(ctx, http.MethodPost, url, data, fileOpts, opts)
}

// PutBinary uploads raw bytes as a multipart PUT.
func (e *Executor) PutBinary(ctx context.Context, url string, data []byte, fileOpts FileOptions, opts *FetchOptions) *Result {
	return e.sendBinary(ctx, http.MethodPut, url, data, fileOpts, opts)
}

func (e *Executor) send(ctx context.Context, method, url string, body any, opts *FetchOptions) *Result {
	req := httpclient.NewRequest(method, url)
	applyHeaders(req, opts)

	if method != http.MethodGet {
		payload := body
		if payload == nil {
			payload = map[string]any{}
		}
		encoded, err := json.Marshal(payload)
		if err != nil {
			return errorResult(genericFailure(fmt.Errorf("encoding request body: %w", err)))
		}
		req.SetBody(encoded)
		// Forced after merging so a caller-supplied Content-Type never
		// leaks into a JSON request.
		req.SetHeader("Content-Type", "application/json")
	}

	return e.roundTrip(ctx, req, opts)
}

func (e *Executor) sendFile(ctx context.Context, method, url string, file *os.File, fileOpts FileOptions, opts *FetchOptions) *Result {
	data, err := io.ReadAll(file)
	if err != nil {
		return errorResult(genericFailure(fmt.Errorf("reading %s: %w", file.Name(), err)))
	}

	contentType, err := e.detect.FromPath(file.Name())
	if err != nil {
		return errorResult(genericFailure(err))
	}

	return e.sendMultipart(ctx, method, url, data, file.Name(), contentType, fileOpts, opts)
}

func (e *Executor) sendBinary(ctx context.Context, method, url string, data []byte, fileOpts FileOptions, opts *FetchOptions) *Result {
	contentType, err := e.detect.FromURL(url)
	if err != nil {
		return errorResult(genericFailure(err))
	}
	if contentType == mimescan.DefaultContentType {
		contentType = e.detect.FromBytes(data)
	}

	return e.sendMultipart(ctx, method, url, data, "", contentType, fileOpts, opts)
}

func (e *Executor) sendMultipart(ctx context.Context, method, url string, data []byte, filename, contentType string, fileOpts FileOptions, opts *FetchOptions) *Result {
	body, formContentType, err := buildMultipartBody(data, filename, contentType, fileOpts)
	if err != nil {
		return errorResult(genericFailure(err))
	}

	req := httpclient.NewRequest(method, url)
	applyHeaders(req, opts)
	req.SetHeader("Content-Type", formContentType)
	req.SetHeader("x-upsert", strconv.FormatBool(fileOpts.Upsert))
	req.SetBody(body)

	return e.roundTrip(ctx, req, opts)
}

// roundTrip sends the request and maps the outcome into a Result. This is
// the single funnel every operation goes through.
func (e *Executor) roundTrip(ctx context.Context, req *httpclient.Request, opts *FetchOptions) *Result {
	resp, err := e.transport.Do(ctx, req)
	if err != nil {
		return errorResult(genericFailure(err))
	}

	if !resp.IsSuccess() {
		return errorResult(responseFailure(resp))
	}

	if opts != nil && opts.NoResolveJSON {
		return dataResult(resp.Body)
	}

	var decoded any
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		// A malformed body on a 2xx status is normalized like any other
		// local failure; the message is the decoder's description.
		return errorResult(genericFailure(err))
	}
	return dataResult(decoded)
}

func applyHeaders(req *httpclient.Request, opts *FetchOptions) {
	if opts == nil {
		return
	}
	for k, v := range opts.Headers {
		req.SetHeader(k, v)
	}
}

// buildMultipartBody encodes a single file part plus the cacheControl text
// field. The part's form-field name is empty and its filename is the source
// path (or "" for raw bytes), matching the storage server's wire contract.
func buildMultipartBody(data []byte, filename, contentType string, fileOpts FileOptions) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("cacheControl", fileOpts.CacheControl); err != nil {
		return nil, "", fmt.Errorf("writing cacheControl field: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=""; filename=%q`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("creating file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("writing file part: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}
