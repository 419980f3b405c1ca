package guard

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/authclient"
)

// State is a guard state.
type State string

const (
	// StateChecking means the user lookup is still in flight; render
	// nothing.
	StateChecking State = "checking"
	// StateRedirecting means the visitor must be sent elsewhere;
	// render nothing.
	StateRedirecting State = "redirecting"
	// StateRendering means the wrapped subtree renders unchanged.
	StateRendering State = "rendering"
)

// Input is what the external user-resolution collaborator yields.
type Input struct {
	Loading bool
	User    *authclient.User
}

// Decision is the guard's current verdict. Redirect is only set in
// StateRedirecting.
type Decision struct {
	State    State
	Redirect string
}

// Evaluate is the pure transition function.
//
// Exclusion guards (RequireAuth false) let anonymous visitors through:
// their purpose is keeping named identities out of a subtree, not
// authenticating anyone. Authentication guards additionally redirect
// when no user resolved at all.
func Evaluate(in Input, cfg Config) Decision {
	if in.Loading {
		return Decision{State: StateChecking}
	}

	if in.User != nil && slices.Contains(cfg.BlockedUsers, in.User.Usuario) {
		return Decision{State: StateRedirecting, Redirect: cfg.RedirectTo}
	}

	if cfg.RequireAuth && in.User == nil {
		return Decision{State: StateRedirecting, Redirect: cfg.RedirectTo}
	}

	return Decision{State: StateRendering}
}

// UserResolver yields the current identity. *authclient.Client
// satisfies it.
type UserResolver interface {
	CheckSession(ctx context.Context) (*authclient.User, error)
}

// RequestResolver yields the identity carried by an inbound request's
// Cookie header values. *authclient.Client satisfies it.
type RequestResolver interface {
	CheckSessionWithCookies(ctx context.Context, cookies []string) (*authclient.User, error)
}

// Guard holds the latest decision for one protected subtree.
type Guard struct {
	cfg Config

	mu       sync.Mutex
	gen      uint64
	decision Decision
}

// New returns a guard in the Checking state.
func New(cfg Config) *Guard {
	return &Guard{
		cfg:      cfg,
		decision: Evaluate(Input{Loading: true}, cfg),
	}
}

// Current returns the latest decision.
func (g *Guard) Current() Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.decision
}

// Update re-evaluates from the given inputs. Each call supersedes any
// resolution still in flight.
func (g *Guard) Update(in Input) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen++
	g.decision = Evaluate(in, g.cfg)
	return g.decision
}

// Resolve drives the guard from Checking to a terminal state using the
// resolver. If Update ran while the lookup was in flight, the stale
// result is discarded and the newer decision stands.
func (g *Guard) Resolve(ctx context.Context, resolver UserResolver) (Decision, error) {
	g.mu.Lock()
	g.gen++
	token := g.gen
	g.decision = Evaluate(Input{Loading: true}, g.cfg)
	g.mu.Unlock()

	user, err := resolver.CheckSession(ctx)
	if err != nil && !errors.Is(err, authclient.ErrNoSession) {
		// Transport failure: the lookup did not complete, so the guard
		// stays in Checking for the caller to retry.
		return g.Current(), err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gen != token {
		return g.decision, nil
	}
	g.decision = Evaluate(Input{Loading: false, User: user}, g.cfg)
	return g.decision, nil
}
