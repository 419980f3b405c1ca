package guard

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/authclient"
)

// Protect returns middleware gating an HTTP subtree with the same
// transition function the render guard uses. The lookup runs per
// request and carries the visitor's own cookies, so it is always the
// visitor's identity being judged, never the process's, and never a
// stale one.
func Protect(cfg Config, resolver RequestResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.CheckSessionWithCookies(r.Context(), r.Header.Values("Cookie"))
			if err != nil && !errors.Is(err, authclient.ErrNoSession) {
				logger.Error("user resolution failed",
					slog.String("path", r.URL.Path),
					slog.Any("error", err),
				)
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}

			switch d := Evaluate(Input{Loading: false, User: user}, cfg); d.State {
			case StateRedirecting:
				http.Redirect(w, r, d.Redirect, http.StatusTemporaryRedirect)
			case StateRendering:
				next.ServeHTTP(w, r)
			default:
				// Evaluate with Loading false never yields Checking.
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		})
	}
}
