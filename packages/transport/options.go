package transport

// FetchOptions adjusts a single call. The zero value is valid; a nil
// *FetchOptions is treated as the zero value. Options are read-only for the
// duration of the call.
type FetchOptions struct {
	// Headers augments the transport's default headers. For non-GET JSON
	// calls a caller-supplied Content-Type is overwritten with
	// application/json after merging.
	Headers map[string]string

	// NoResolveJSON returns the raw response body bytes as Result.Data
	// instead of decoding the body as JSON.
	NoResolveJSON bool
}

// FileOptions carries upload metadata for file and binary uploads.
type FileOptions struct {
	// CacheControl is sent as the multipart text field "cacheControl".
	CacheControl string

	// Upsert selects create-or-replace semantics, sent as the x-upsert
	// header ("true" or "false").
	Upsert bool
}
