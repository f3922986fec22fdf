// Package clientip resolves the originating client IP of an HTTP request.
//
// GetIP checks CF-Connecting-IP, DO-Connecting-IP, X-Forwarded-For (first
// valid entry) and X-Real-IP, then falls back to RemoteAddr. Values are
// validated and normalized; invalid entries are skipped. Only deploy behind
// proxies that overwrite these headers, since clients can set them freely.
package clientip
