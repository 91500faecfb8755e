package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/evanraalte/nstimes/internal/infra/config"
	"github.com/evanraalte/nstimes/internal/infra/logger"
	"github.com/evanraalte/nstimes/internal/infra/nsapi"
	"github.com/evanraalte/nstimes/internal/infra/pricecache"
	"github.com/evanraalte/nstimes/internal/ports"
	"github.com/evanraalte/nstimes/internal/stations"
	"github.com/evanraalte/nstimes/internal/ui/tui"
	"github.com/evanraalte/nstimes/internal/usecase"
)

// app holds the wiring shared by the subcommands.
type app struct {
	cfg      domain.Config
	log      *slog.Logger
	client   *nsapi.Client
	resolver ports.StationResolver

	cleanup func() error
}

type appOptions struct {
	// logWriter sends logs to a stream instead of the log directory.
	logWriter io.Writer
	override  func(*domain.Config)
}

func loadConfig(g *globalFlags, override func(*domain.Config)) (domain.Config, error) {
	cfg, err := config.Load(config.Options{File: g.configPath})
	if err != nil {
		return cfg, err
	}

	if v := strings.TrimSpace(g.cachePath); v != "" {
		cfg.Cache.Path = v
	}
	if v := strings.TrimSpace(g.stations); v != "" {
		cfg.Stations.File = v
	}
	if v := strings.TrimSpace(g.resolver); v != "" {
		cfg.Resolver = domain.ResolverMode(strings.ToLower(v))
	}
	if g.debug {
		cfg.Log.Debug = true
	}
	if override != nil {
		override(&cfg)
	}

	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newApp(g *globalFlags, opts appOptions) (*app, error) {
	cfg, err := loadConfig(g, opts.override)
	if err != nil {
		return nil, err
	}

	lc := logger.Config{Debug: cfg.Log.Debug, Writer: opts.logWriter}
	if opts.logWriter == nil {
		lc.Dir = cfg.Log.Dir
		if lc.Dir == "" {
			lc.Dir = defaultLogDir()
		}
	}
	// Logging is best effort for the CLI; a failed setup leaves a discard logger.
	cleanup, lerr := logger.Setup(lc)
	if cleanup == nil {
		cleanup = func() error { return nil }
	}
	if cfg.Log.Debug && opts.logWriter == nil {
		if lerr != nil {
			fmt.Fprintf(os.Stderr, "logging disabled: %v\n", lerr)
		} else if logger.IsReady() == nil {
			fmt.Fprintf(os.Stderr, "debug log: %s\n", logger.Path())
		}
	}
	log := logger.L()

	client := nsapi.New(cfg.API, nsapi.WithLogger(log))

	resolver, err := newResolver(cfg, client)
	if err != nil {
		_ = cleanup()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		log:      log,
		client:   client,
		resolver: resolver,
		cleanup:  cleanup,
	}, nil
}

func (a *app) Close() {
	_ = a.cleanup()
}

func newResolver(cfg domain.Config, client *nsapi.Client) (ports.StationResolver, error) {
	if cfg.Resolver == domain.ResolverRemote {
		return nsapi.NewRemoteResolver(client), nil
	}
	dir, err := loadDirectory(cfg)
	if err != nil {
		return nil, err
	}
	return stations.NewLocalResolver(dir), nil
}

// loadDirectory returns the configured stations file, or the built-in table
// when none is configured.
func loadDirectory(cfg domain.Config) (*stations.Directory, error) {
	if cfg.Stations.File == "" {
		return stations.Default(), nil
	}
	return stations.LoadFile(cfg.Stations.File)
}

// openCache returns nil when no cache path is configured.
func (a *app) openCache() (*pricecache.Cache, error) {
	if a.cfg.Cache.Path == "" {
		return nil, nil
	}
	return pricecache.Open(a.cfg.Cache.Path, pricecache.WithLogger(a.log))
}

// chooser returns the interactive station picker, or nil when the picker was
// not requested or the session is not a terminal.
func (a *app) chooser(interactive bool) usecase.ChooseFunc {
	if !interactive || !isatty.IsTerminal(os.Stdout.Fd()) || !isatty.IsTerminal(os.Stdin.Fd()) {
		return nil
	}
	return tui.NewPicker(tui.Deps{Logger: a.log, Output: os.Stderr}).Choose
}

func defaultLogDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".nstimes", "logs")
	}
	return filepath.Join(base, "nstimes", "logs")
}

func requireCache(c *pricecache.Cache) error {
	if c != nil {
		return nil
	}
	return &domain.OpError{
		Op:   "cli.cache",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("no cache file configured (use --cache or %s): %w", config.EnvCache, domain.ErrInvalidConfig),
	}
}
