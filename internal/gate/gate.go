// Package gate decides, before a navigation, whether the destination needs
// a session and, if so, whether one exists.
package gate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jaekwang-park/doit-client/internal/nav"
)

// Prober asks the backend whether the current credential is still valid.
// *api.Client satisfies it.
type Prober interface {
	IsLoggedIn(ctx context.Context) (bool, error)
}

// Policy decides what a failed probe means.
type Policy int

const (
	// FailClosed treats a probe error as "no session" and redirects.
	FailClosed Policy = iota
	// FailOpen lets the navigation through when the probe errors.
	FailOpen
)

// DefaultPolicy is the policy used when none is configured.
const DefaultPolicy = FailClosed

func (p Policy) String() string {
	switch p {
	case FailClosed:
		return "fail-closed"
	case FailOpen:
		return "fail-open"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy accepts "fail-closed" and "fail-open"; an empty string gives
// DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "":
		return DefaultPolicy, nil
	case "fail-closed":
		return FailClosed, nil
	case "fail-open":
		return FailOpen, nil
	default:
		return 0, fmt.Errorf("unknown gate policy %q: must be fail-closed or fail-open", s)
	}
}

const DefaultLoginPath = "/login"

// DefaultPublicPaths are reachable without a session.
var DefaultPublicPaths = []string{DefaultLoginPath}

// State is a step of a single navigation check.
type State int

const (
	Evaluating State = iota
	Checking
	Allowed
	Denied
)

func (s State) String() string {
	switch s {
	case Evaluating:
		return "evaluating"
	case Checking:
		return "checking"
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Decision is the terminal outcome of Evaluate. Redirect is set when the
// navigation must go to the login path instead. Err records a probe
// failure, whatever the policy made of it.
type Decision struct {
	State    State
	Redirect string
	Probed   bool
	Err      error
}

type Config struct {
	Prober      Prober
	PublicPaths []string
	LoginPath   string
	Policy      Policy
	Logger      *slog.Logger
}

type Gate struct {
	prober    Prober
	public    map[string]bool
	loginPath string
	policy    Policy
	logger    *slog.Logger
}

func New(cfg Config) (*Gate, error) {
	if cfg.Prober == nil {
		return nil, errors.New("gate: Prober is required")
	}
	if cfg.Policy != FailClosed && cfg.Policy != FailOpen {
		return nil, fmt.Errorf("gate: invalid policy %v", cfg.Policy)
	}

	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}
	paths := cfg.PublicPaths
	if paths == nil {
		paths = DefaultPublicPaths
	}
	public := make(map[string]bool, len(paths)+1)
	for _, p := range paths {
		public[p] = true
	}
	// The login page must stay reachable or every denial would loop.
	public[loginPath] = true

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Gate{
		prober:    cfg.Prober,
		public:    public,
		loginPath: loginPath,
		policy:    cfg.Policy,
		logger:    logger,
	}, nil
}

func (g *Gate) LoginPath() string {
	return g.loginPath
}

func (g *Gate) Policy() Policy {
	return g.policy
}

func (g *Gate) IsPublic(path string) bool {
	return g.public[path]
}

// Evaluate runs one navigation check for path. It blocks until the probe
// settles or ctx is done; a cancelled probe counts as a probe failure.
func (g *Gate) Evaluate(ctx context.Context, path string) Decision {
	if g.IsPublic(path) {
		return Decision{State: Allowed}
	}

	ok, err := g.prober.IsLoggedIn(ctx)
	switch {
	case err != nil:
		g.logger.WarnContext(ctx, "session probe failed",
			"path", path,
			"policy", g.policy.String(),
			"error", err,
		)
		if g.policy == FailOpen {
			return Decision{State: Allowed, Probed: true, Err: err}
		}
		return Decision{State: Denied, Redirect: g.loginPath, Probed: true, Err: err}
	case !ok:
		g.logger.DebugContext(ctx, "no session, redirecting", "path", path, "redirect", g.loginPath)
		return Decision{State: Denied, Redirect: g.loginPath, Probed: true}
	default:
		return Decision{State: Allowed, Probed: true}
	}
}

// Guard adapts the gate to a router guard. It never aborts a navigation;
// denials become redirects.
func (g *Gate) Guard() nav.GuardFunc {
	return func(ctx context.Context, to, from nav.Location) (string, error) {
		return g.Evaluate(ctx, to.Path).Redirect, nil
	}
}
