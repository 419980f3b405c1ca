package proxy

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Proxy is the same-origin relay in front of the remote backend.
type Proxy struct {
	cfg     Config
	client  *http.Client
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures the proxy.
type Option func(*Proxy)

// WithLogger supplies a logger for relay failures.
func WithLogger(l *slog.Logger) Option {
	return func(p *Proxy) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithHTTPClient overrides the outbound client. The client must not
// follow redirects on the proxy's behalf; redirect responses belong to
// the browser.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Proxy) {
		if c != nil {
			p.client = c
		}
	}
}

// WithMetrics records relay outcomes on the given metrics set.
func WithMetrics(m *Metrics) Option {
	return func(p *Proxy) {
		p.metrics = m
	}
}

// New returns a relay for the given configuration. A missing backend
// origin is not rejected here: it surfaces on every relay as a failed
// call, which is the contract for a misdeployed instance.
func New(cfg Config, opts ...Option) *Proxy {
	p := &Proxy{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.client == nil {
		p.client = &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}
	return p
}

// ServeHTTP relays one inbound request. Every request is handled
// independently; the proxy never retries and gives no ordering
// guarantee across distinct calls.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	target, err := RewriteURL(p.cfg.BackendOrigin, p.cfg.Prefix, r.URL.EscapedPath(), r.URL.RawQuery)
	if err != nil {
		httpErr := ErrMissingOrigin
		var he HTTPError
		if errors.As(err, &he) {
			httpErr = he
		}
		p.fail(w, r, httpErr, err)
		return
	}

	body, httpErr := p.readInboundBody(r)
	if httpErr != nil {
		writeError(w, *httpErr)
		return
	}

	out, err := http.NewRequestWithContext(r.Context(), r.Method, target, bytes.NewReader(body))
	if err != nil {
		p.fail(w, r, ErrBackendUnreachable, err)
		return
	}

	// The session cookie is opaque: relay the header values untouched.
	for _, c := range r.Header.Values("Cookie") {
		out.Header.Add("Cookie", c)
	}
	if len(body) > 0 {
		ct := r.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/json"
		}
		out.Header.Set("Content-Type", ct)
	}
	if accept := r.Header.Get("Accept"); accept != "" {
		out.Header.Set("Accept", accept)
	}

	resp, err := p.client.Do(out)
	if err != nil {
		p.fail(w, r, ErrBackendUnreachable, err)
		return
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		p.fail(w, r, ErrBackendUnreachable, err)
		return
	}
	if isJSON(resp.Header.Get("Content-Type")) && len(respBody) > 0 && !json.Valid(respBody) {
		p.fail(w, r, ErrInvalidBackendBody, ErrInvalidBackendBody)
		return
	}

	// Only backend-originated cookies reach the browser, verbatim and
	// in order.
	for _, sc := range resp.Header.Values("Set-Cookie") {
		w.Header().Add("Set-Cookie", sc)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(respBody)

	p.metrics.observeRelay(r.Method, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())
}

// readInboundBody drains and validates the request body for methods
// that carry one. Bodies are relayed without transformation: a body
// that is not JSON never leaves the proxy, and one over the cap is
// rejected whole rather than relayed truncated.
func (p *Proxy) readInboundBody(r *http.Request) ([]byte, *HTTPError) {
	if r.Body == nil || r.Method == http.MethodGet || r.Method == http.MethodHead {
		return nil, nil
	}

	limit := p.cfg.MaxBodyBytes
	if limit <= 0 {
		limit = 10 << 20
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, &ErrInvalidRequestBody
	}
	if int64(len(body)) > limit {
		return nil, &ErrRequestBodyTooBig
	}
	if len(body) > 0 && !json.Valid(body) {
		return nil, &ErrInvalidRequestBody
	}
	return body, nil
}

func (p *Proxy) fail(w http.ResponseWriter, r *http.Request, httpErr HTTPError, cause error) {
	p.logger.Error("relay failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("reason", httpErr.Key),
		slog.Any("error", cause),
	)
	p.metrics.observeFailure(httpErr.Key)
	writeError(w, httpErr)
}

func isJSON(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}
