// Package httpclient provides the default HTTP transport used by the
// transport package.
//
// It wraps the standard library's http package with:
//   - Configurable timeouts and redirect handling
//   - Optional SSL validation and proxy support
//   - Default headers and per-request X-Request-Id generation
//   - Aggregated responses (full body read before inspection)
package httpclient
