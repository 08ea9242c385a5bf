package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pweza/pweza-admin/internal/auth"
	"github.com/pweza/pweza-admin/internal/config"
	"github.com/pweza/pweza-admin/internal/logging"
	"github.com/pweza/pweza-admin/internal/tui"
	"github.com/pweza/pweza-admin/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options are the persistent flags shared by every command.
type options struct {
	configFile string
	apiURL     string
	logLevel   string
	storeKind  string
}

// overrides maps set flags to config keys.
func (o *options) overrides() map[string]any {
	m := map[string]any{}
	if o.apiURL != "" {
		m["api.base_url"] = o.apiURL
	}
	if o.logLevel != "" {
		m["log.level"] = o.logLevel
	}
	if o.storeKind != "" {
		m["store.backend"] = o.storeKind
	}
	return m
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "pweza",
		Short:         "Pweza admin console",
		Long:          "Terminal console for managing tipsters, predictions, subscriptions and payouts.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd.Context(), opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default ~/.pweza/config.yaml)")
	pf.StringVar(&opts.apiURL, "api-url", "", "backend base URL")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&opts.storeKind, "store", "", "credential store: file or sqlite")

	root.AddCommand(
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newVersionCmd(),
		newConfigCmd(opts),
	)
	return root
}

// loadConfig reads and validates the effective configuration.
func loadConfig(o *options) (*config.Config, error) {
	if err := config.LoadDotenv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.Load(o.configFile, o.overrides())
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// env is everything a command needs to talk to the backend as the stored
// admin.
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	store    auth.CredentialStore
	manager  *auth.Manager
	closeLog func() error
}

func setup(o *options) (*env, error) {
	cfg, err := loadConfig(o)
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	store, err := auth.OpenStore(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	c := client.New(cfg.API.BaseURL, "")
	c.SetTimeout(cfg.API.Timeout)
	if cfg.API.RateLimit > 0 {
		c.SetLimiter(rate.NewLimiter(rate.Limit(cfg.API.RateLimit), cfg.API.Burst))
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("api", cfg.API.BaseURL),
		zap.String("store", cfg.Store.Backend),
		zap.String("config_file", cfg.File),
	)
	return &env{
		cfg:      cfg,
		log:      logger,
		store:    store,
		manager:  auth.NewManager(store, c, logger),
		closeLog: closeLog,
	}, nil
}

func (e *env) Close() error {
	return errors.Join(e.store.Close(), e.closeLog())
}

// restore returns the stored session, or nil when there is none.
func (e *env) restore(ctx context.Context) (*auth.Session, error) {
	s, err := e.manager.Restore(ctx)
	if errors.Is(err, auth.ErrNoSession) {
		return nil, nil
	}
	return s, err
}

func runConsole(ctx context.Context, o *options) error {
	e, err := setup(o)
	if err != nil {
		return err
	}
	defer e.Close() //nolint:errcheck

	s, err := e.restore(ctx)
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Options{
		Auth:    e.manager,
		Session: s,
		Idle:    e.cfg.Idle.Guard(),
		Logger:  e.log,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
