package proxy

import "time"

// Config holds the relay settings. BackendOrigin has no default on
// purpose: a missing value is a deployment error that must surface as
// a failed relay, never as a silent fallback origin.
type Config struct {
	BackendOrigin string        `env:"BACKEND_ORIGIN"`                             // scheme://host[:port] of the remote backend
	Prefix        string        `env:"PROXY_PREFIX" envDefault:"/api"`             // local path prefix the proxy answers under
	Timeout       time.Duration `env:"PROXY_TIMEOUT" envDefault:"30s"`             // per-relay timeout
	MaxBodyBytes  int64         `env:"PROXY_MAX_BODY_BYTES" envDefault:"10485760"` // inbound body cap
}
