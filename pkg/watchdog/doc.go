// Package watchdog is the interception point for every outgoing call
// the application makes.
//
// It wraps an http.Client's transport and classifies each response as
// "session still valid" or "session invalidated". On an invalidation
// it writes a human-readable message into the session-state store and
// nothing else: it never redirects and never renders. Consumers of
// the store react on their own.
//
// Install is idempotent, so wiring code can call it defensively
// without ever producing duplicate classification passes for the same
// response.
package watchdog
