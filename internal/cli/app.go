// Package cli wires configuration, logging and use cases for the urlkit
// command line.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/bnema/urlkit/internal/application/usecase"
	"github.com/bnema/urlkit/internal/cli/styles"
	"github.com/bnema/urlkit/internal/domain/build"
	"github.com/bnema/urlkit/internal/infrastructure/config"
	"github.com/bnema/urlkit/internal/infrastructure/filesystem"
	"github.com/bnema/urlkit/internal/logging"
)

// Options controls how the App is built.
type Options struct {
	// ConfigFile overrides the XDG lookup. A missing or invalid explicit
	// file is an error.
	ConfigFile string
	// Out is where results are written; defaults to stdout.
	Out io.Writer
	// LogOutput is where logs are written; defaults to stderr.
	LogOutput io.Writer
}

// App holds CLI dependencies.
type App struct {
	Config     *config.Config
	ConfigFile string
	Theme      *styles.Theme
	Renderer   *styles.ResultRenderer
	BuildInfo  build.Info

	// Use cases
	ResolvePathUC    *usecase.ResolvePathUseCase
	ResolveURLsUC    *usecase.ResolveURLsUseCase
	CheckCanonicalUC *usecase.CheckCanonicalUseCase
	DedupeURLsUC     *usecase.DedupeURLsUseCase

	// Context with logger
	ctx context.Context
}

// NewApp creates a new CLI application with all dependencies.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	// Environment-only logger until the config is known.
	bootLogger := logging.NewFromEnv().Output(zerolog.ConsoleWriter{Out: opts.LogOutput})

	cfg, file, err := loadConfig(opts.ConfigFile)
	if err != nil {
		if opts.ConfigFile != "" {
			return nil, err
		}
		bootLogger.Warn().Err(err).Msg("ignoring configuration, using defaults")
	}

	logCfg := cfg.LoggingConfig()
	logCfg.Output = opts.LogOutput
	logger := logging.New(logCfg)
	ctx = logging.WithContext(ctx, logger)
	logger.Debug().Str("config_file", file).Msg("configuration loaded")

	theme := styles.NewTheme(styles.NewRenderer(opts.Out, cfg.Output.Color))

	return &App{
		Config:           cfg,
		ConfigFile:       file,
		Theme:            theme,
		Renderer:         styles.NewResultRenderer(theme),
		ResolvePathUC:    usecase.NewResolvePathUseCase(filesystem.New()),
		ResolveURLsUC:    usecase.NewResolveURLsUseCase(cfg.Batch.Workers),
		CheckCanonicalUC: usecase.NewCheckCanonicalUseCase(),
		DedupeURLsUC:     usecase.NewDedupeURLsUseCase(),
		ctx:              ctx,
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// loadConfig loads configuration from path or the standard locations.
// The defaults are returned alongside any error.
func loadConfig(path string) (*config.Config, string, error) {
	var (
		mgr *config.Manager
		err error
	)
	if path != "" {
		mgr, err = config.NewManagerForFile(path)
	} else {
		mgr, err = config.NewManager()
	}
	if err != nil {
		return config.DefaultConfig(), "", err
	}

	if err := mgr.Load(); err != nil {
		return config.DefaultConfig(), "", err
	}
	return mgr.Get(), mgr.GetConfigFile(), nil
}
