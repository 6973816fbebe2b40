package transport

// Result is the sole return shape of every executor operation: exactly one
// of Data/Err is populated. Data holds the JSON-decoded response body, or
// the raw body bytes when FetchOptions.NoResolveJSON is set.
type Result struct {
	Data any
	Err  *StorageError
}

// HasError reports whether the call failed.
func (r *Result) HasError() bool {
	return r.Err != nil
}

func dataResult(data any) *Result {
	return &Result{Data: data}
}

func errorResult(f failure) *Result {
	return &Result{Err: normalize(f)}
}
