package cli

import (
	"errors"

	"github.com/grantcarthew/wdctl/internal/config"
	"github.com/grantcarthew/wdctl/internal/executor"
	"github.com/grantcarthew/wdctl/internal/transport"
	"github.com/grantcarthew/wdctl/internal/webdriver"
)

// ExecutorFactory creates executors and supplies the effective configuration.
type ExecutorFactory interface {
	NewExecutor() (executor.Executor, error)
	Config() (config.Config, error)
}

// defaultFactory sends commands to the configured WebDriver server.
type defaultFactory struct{}

func (f defaultFactory) Config() (config.Config, error) {
	cfg, err := config.Load(ConfigPath)
	if err != nil {
		return cfg, err
	}
	applyFlags(&cfg)
	return cfg, config.Validate(cfg)
}

func (f defaultFactory) NewExecutor() (executor.Executor, error) {
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}
	ch, err := transport.FromConfig(cfg, logger())
	if err != nil {
		return nil, err
	}
	debugf("server %s, strategy %s, extractor %s", ch.Addr(), cfg.Drain.Strategy, cfg.Extractor)
	return executor.NewChannelExecutor(ch), nil
}

// applyFlags overlays explicitly set global flags on cfg.
func applyFlags(cfg *config.Config) {
	if Host != "" {
		cfg.Host = Host
	}
	if Port != 0 {
		cfg.Port = Port
	}
	if SessionID != "" {
		cfg.Session = SessionID
	}
	if Strategy != "" {
		cfg.Drain.Strategy = Strategy
	}
}

// DirectExecutorFactory answers every command in process. Used by tests and
// for dry runs against canned responses.
type DirectExecutorFactory struct {
	handler executor.Handler
	cfg     config.Config
}

// NewDirectExecutorFactory creates a factory around handler with the default
// configuration plus any global flags.
func NewDirectExecutorFactory(handler executor.Handler) *DirectExecutorFactory {
	cfg := config.Default()
	applyFlags(&cfg)
	return &DirectExecutorFactory{handler: handler, cfg: cfg}
}

func (f *DirectExecutorFactory) NewExecutor() (executor.Executor, error) {
	return executor.NewDirectExecutor(f.handler), nil
}

func (f *DirectExecutorFactory) Config() (config.Config, error) {
	return f.cfg, nil
}

// execFactory is the package-level factory, replaceable for testing.
var execFactory ExecutorFactory = defaultFactory{}

// SetExecutorFactory sets the executor factory (for testing).
func SetExecutorFactory(f ExecutorFactory) {
	execFactory = f
}

// ResetExecutorFactory resets to the default factory.
func ResetExecutorFactory() {
	execFactory = defaultFactory{}
}

// newClient returns a command client from the current factory.
func newClient() (*webdriver.Client, error) {
	exec, err := execFactory.NewExecutor()
	if err != nil {
		return nil, err
	}
	return webdriver.New(exec), nil
}

// errNoSession is reported when a command needs a session and none is set.
var errNoSession = errors.New("no session. Start one with: wdctl session new, then pass --session or set WDCTL_SESSION")

// currentSession resolves the session to drive.
func currentSession() (*webdriver.Session, error) {
	cfg, err := execFactory.Config()
	if err != nil {
		return nil, err
	}
	if cfg.Session == "" {
		return nil, errNoSession
	}
	c, err := newClient()
	if err != nil {
		return nil, err
	}
	debugf("session %s", cfg.Session)
	return c.Session(cfg.Session), nil
}
