// Package transport turns storage-service HTTP calls into uniform results.
//
// Every operation returns a *Result holding either decoded response data or
// a *StorageError — never both, and never a panic or a plain error. Callers
// branch once on HasError instead of handling errors per failure mode:
//
//	res := exec.Post(ctx, url, payload, nil)
//	if res.HasError() {
//	    return res.Err
//	}
//
// The executor performs no retries and no caching; a single failed attempt
// yields a single error result. Timeouts and cancellation belong to the
// injected Transport and the caller's context.
package transport
