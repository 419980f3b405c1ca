package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/logger"
)

// HealthCheckHandler serves liveness and readiness probes.
//
// Without dependency checks it answers 200 "ALIVE". With checks it
// runs each one and answers 200 "READY" when all pass, otherwise 500
// "NOT_READY". The backend-reachability probe is the usual check for
// this service.
func HealthCheckHandler(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ALIVE"))
			return
		}

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	}
}
