// Package proxy relays browser requests to the remote backend while
// keeping the browser's cookie store in sync with the backend's
// session lifecycle.
//
// The proxy accepts any method and sub-path under a prefix, rewrites
// the target to the configured backend origin with sub-path and query
// preserved verbatim, forwards the inbound Cookie header byte-for-byte
// and relays the backend's status, JSON body, and Set-Cookie headers
// back unchanged. The session cookie is an opaque credential: the
// proxy never inspects, parses, or mutates its value.
//
// Transport failures, unparseable backend bodies, and a missing
// backend origin all surface as a structured 502 payload. The proxy
// never retries and never forwards a cookie on an error path it
// constructed itself.
package proxy
