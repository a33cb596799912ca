package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"

	"pingscope/internal/model"
	"pingscope/internal/platform"
)

// ErrUnsupportedPlatform means no reachability-command syntax is known
// for the host. This is the only error Probe surfaces; every other
// failure degrades to a logged false.
var ErrUnsupportedPlatform = errors.New("unsupported platform family")

// echoCount is the number of echo requests sent per probe.
const echoCount = "6"

// DefaultTimeout bounds a single probe. It comfortably exceeds six
// sequential echoes while still cutting off a hung network path.
const DefaultTimeout = 30 * time.Second

// Command builds the reachability command for the given platform family
// and address.
func Command(family platform.Family, address string) ([]string, error) {
	switch family {
	case platform.FamilyPOSIX:
		return []string{"ping", "-c", echoCount, address}, nil
	case platform.FamilyWindows:
		return []string{"ping", "-n", echoCount, address}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, family)
	}
}

// Executor runs the reachability utility and returns its captured
// standard output and standard error. A nonzero exit or a missing
// executable surfaces through err.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

type execExecutor struct{}

func (execExecutor) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Observer is notified of every probe outcome.
type Observer interface {
	ObserveProbe(server string, reachable bool)
}

// Prober executes reachability checks against servers using the family's
// ping syntax. It is synchronous; a call blocks up to the timeout.
type Prober struct {
	family   platform.Family
	executor Executor
	logger   *log.Logger
	observer Observer
	timeout  time.Duration
}

// Option configures a Prober.
type Option func(*Prober)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Prober) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// WithExecutor substitutes the process executor, mainly for tests.
func WithExecutor(executor Executor) Option {
	return func(p *Prober) {
		if executor != nil {
			p.executor = executor
		}
	}
}

// WithObserver attaches a probe-outcome observer.
func WithObserver(observer Observer) Option {
	return func(p *Prober) {
		p.observer = observer
	}
}

// NewProber returns a Prober for the given platform family. A nil logger
// means the default logger.
func NewProber(family platform.Family, logger *log.Logger, opts ...Option) *Prober {
	if logger == nil {
		logger = log.Default()
	}

	p := &Prober{
		family:   family,
		executor: execExecutor{},
		logger:   logger,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe runs a reachability check against the server and reports whether
// it answered. It fails closed: an unset or placeholder address, a
// nonzero exit, a timeout, or a missing ping utility all log a reason
// and return false. The only surfaced error is ErrUnsupportedPlatform,
// since callers must not confuse "unreachable" with "cannot probe here".
func (p *Prober) Probe(server model.Server) (bool, error) {
	if server.Address == "" {
		p.logger.Printf("no address configured for server %s", server.Name)
		return p.observe(server, false), nil
	}

	if !server.Probeable() {
		p.logger.Printf("address undefined for server %s", server.Name)
		return p.observe(server, false), nil
	}

	args, err := Command(p.family, server.Address)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	stdout, stderr, err := p.executor.Run(ctx, args[0], args[1:]...)

	// Raw tool output is reported once the run completes, not streamed.
	if strings.TrimSpace(stdout) != "" {
		p.logger.Printf("%s", stdout)
	}

	switch {
	case err == nil:
		return p.observe(server, true), nil
	case ctx.Err() == context.DeadlineExceeded:
		p.logger.Printf("probe timeout for server %s after %s", server.Name, p.timeout)
	case errors.Is(err, exec.ErrNotFound):
		p.logger.Printf("probe failed for server %s: %v", server.Name, err)
	default:
		reason := strings.TrimSpace(stderr)
		if reason == "" {
			reason = err.Error()
		}
		p.logger.Printf("probe failed for server %s: %s", server.Name, reason)
	}

	return p.observe(server, false), nil
}

func (p *Prober) observe(server model.Server, reachable bool) bool {
	if p.observer != nil {
		p.observer.ObserveProbe(server.Name, reachable)
	}
	return reachable
}
