// Package sessionstate holds the process-wide session-error slot.
//
// The store is a single read/write slot: nil means no session
// invalidation has been observed since the last reset, a non-nil
// Message means the watchdog saw at least one session-invalid signal
// that has not been acknowledged yet. The watchdog is the only writer
// of Set by convention; a successful re-authentication calls Clear.
//
// Consumers read the slot directly or subscribe to change
// notifications. The store is handed to request handlers through the
// context; reading it from a context without a provider is a
// programming error and panics.
package sessionstate
