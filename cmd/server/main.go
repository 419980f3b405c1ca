package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/authclient"
	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/config"
	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/guard"
	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/httpserver"
	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/logger"
	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/proxy"
	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/requestid"
	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/sessionevents"
	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/sessionstate"
	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/watchdog"
)

type appConfig struct {
	Server httpserver.Config
	Proxy  proxy.Config
	Log    logger.Config

	GuardConfigPath string `env:"GUARD_CONFIG"`              // optional YAML exclusion list
	WebRoot         string `env:"WEB_ROOT" envDefault:"web"` // static dashboard assets
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(cfg.Log, logger.WithAttr(slog.String("service", "gesneu-web")))
	slog.SetDefault(log)

	if cfg.Proxy.BackendOrigin == "" {
		// Not fatal: every relay reports the misconfiguration instead.
		log.Warn("BACKEND_ORIGIN is not set, all relays will fail")
	}

	store := sessionstate.NewStore()

	relayMetrics := proxy.NewMetrics(prometheus.DefaultRegisterer)
	invalidations := promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gesneu",
		Subsystem: "watchdog",
		Name:      "session_invalidations_total",
		Help:      "Session invalidations detected on outgoing calls",
	})

	// Every outgoing call the application makes passes through this
	// client, and therefore through the watchdog. Login and the session
	// check are exempt: a 401 there means "wrong credentials" or "no
	// session yet", not that an established session just died.
	outbound := &http.Client{}
	watchdog.Install(outbound, store,
		watchdog.WithExemptPaths(
			cfg.Proxy.Prefix+"/login",
			cfg.Proxy.Prefix+"/session",
		),
		watchdog.WithLogger(log),
		watchdog.WithInvalidationCounter(invalidations),
	)

	auth, err := authclient.New(localOrigin(cfg.Server.Addr)+cfg.Proxy.Prefix,
		authclient.WithHTTPClient(outbound),
		authclient.WithSessionStore(store),
		authclient.WithLogger(log),
	)
	if err != nil {
		return err
	}

	relay := proxy.New(cfg.Proxy,
		proxy.WithLogger(log),
		proxy.WithMetrics(relayMetrics),
	)

	router := chi.NewRouter()
	router.Use(chimiddleware.RealIP)
	router.Use(requestid.Middleware)
	router.Use(chimiddleware.Recoverer)
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(sessionstate.WithStore(r.Context(), store)))
		})
	})

	router.Get("/healthz", httpserver.HealthCheckHandler(log))
	router.Get("/readyz", httpserver.HealthCheckHandler(log, backendCheck(cfg.Proxy.BackendOrigin)))
	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/events/session", sessionevents.NewHub(store, sessionevents.WithLogger(log)))
	router.Handle(cfg.Proxy.Prefix+"/*", relay)

	assets := http.FileServer(http.Dir(cfg.WebRoot))
	if cfg.GuardConfigPath != "" {
		guardCfg, err := guard.LoadConfig(cfg.GuardConfigPath)
		if err != nil {
			return err
		}
		router.With(guard.Protect(guardCfg, auth, log)).Handle("/*", assets)
	} else {
		router.Handle("/*", assets)
	}

	srv := httpserver.New(cfg.Server, httpserver.WithLogger(log))
	return srv.Run(context.Background(), router)
}

// localOrigin derives the loopback origin auth operations call, so
// they go through the same-origin proxy like every browser call does.
func localOrigin(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

// backendCheck reports whether the remote backend answers at all.
func backendCheck(origin string) func(context.Context) error {
	return func(ctx context.Context) error {
		if origin == "" {
			return fmt.Errorf("BACKEND_ORIGIN is not configured")
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin, nil)
		if err != nil {
			return err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		return resp.Body.Close()
	}
}
