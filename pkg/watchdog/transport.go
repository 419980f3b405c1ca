package watchdog

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/sessionstate"
)

// DefaultMessage is written into the store when the backend rejects a
// call because the session is no longer valid.
const DefaultMessage = "La sesión ha expirado, vuelva a iniciar sesión"

// Transport decorates a base http.RoundTripper with session-invalidation
// detection. It is safe for concurrent use: the store holds a single
// message, so concurrent invalidation writes are last-write-wins and
// idempotent in content.
type Transport struct {
	base          http.RoundTripper
	store         *sessionstate.Store
	message       string
	exempt        map[string]struct{}
	logger        *slog.Logger
	invalidations prometheus.Counter
}

// Option configures the watchdog transport.
type Option func(*Transport)

// WithMessage overrides the message written on invalidation.
func WithMessage(msg string) Option {
	return func(t *Transport) {
		if msg != "" {
			t.message = msg
		}
	}
}

// WithExemptPaths marks request paths whose 401 responses are
// authentication failures rather than session invalidations. The login
// endpoint and the session check are the canonical cases: a rejected
// credential must surface at the form, and a visitor who never signed
// in is not an expired session.
func WithExemptPaths(paths ...string) Option {
	return func(t *Transport) {
		for _, p := range paths {
			t.exempt[p] = struct{}{}
		}
	}
}

// WithLogger supplies a logger for invalidation events.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transport) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithInvalidationCounter records every detected invalidation on the
// given counter.
func WithInvalidationCounter(c prometheus.Counter) Option {
	return func(t *Transport) {
		t.invalidations = c
	}
}

// Install wraps the client's transport with a watchdog writing to
// store. Installing twice is a no-op: an already wrapped transport is
// returned unchanged, so a response is never classified twice.
func Install(client *http.Client, store *sessionstate.Store, opts ...Option) *Transport {
	if t, ok := client.Transport.(*Transport); ok {
		return t
	}

	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	t := &Transport{
		base:    base,
		store:   store,
		message: DefaultMessage,
		exempt:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}

	client.Transport = t
	return t
}

// RoundTrip executes the request and classifies the response before
// handing it back unchanged. Transport-level failures pass through to
// the caller; they say nothing about session validity.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if Classify(resp.StatusCode) == ResultSessionInvalid {
		if _, skip := t.exempt[req.URL.Path]; !skip {
			t.store.Set(t.message)
			if t.invalidations != nil {
				t.invalidations.Inc()
			}
			if t.logger != nil {
				t.logger.Warn("session invalidated by backend",
					slog.String("method", req.Method),
					slog.String("path", req.URL.Path),
				)
			}
		}
	}

	return resp, nil
}
