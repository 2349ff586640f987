package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ssafy-wtd/wtd/internal/activity"
	"github.com/ssafy-wtd/wtd/internal/config"
	"github.com/ssafy-wtd/wtd/internal/logging"
	"github.com/ssafy-wtd/wtd/internal/prefs"
	"github.com/ssafy-wtd/wtd/internal/session"
	"github.com/ssafy-wtd/wtd/internal/state"
	"github.com/ssafy-wtd/wtd/internal/ui"
)

// Options configure the wtd application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/wtd/prefs.toml
	LogLevel   string // overrides the config file when set
	SessionID  string // overrides the config file when set
	Once       bool   // run one search and print JSON instead of the TUI
	Out        io.Writer
}

// Run boots wtd until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	deps, err := build(ctx, opts)
	if err != nil {
		return err
	}
	defer deps.close()

	if opts.Once {
		return searchOnce(ctx, deps, opts.Out)
	}

	return ui.Run(ui.Options{
		Context:   logging.WithLogger(ctx, deps.logger),
		Client:    deps.client,
		Store:     deps.store,
		Config:    &deps.cfg,
		Prefs:     prefs.Load(opts.PrefsPath),
		PrefsPath: opts.PrefsPath,
	})
}

type dependencies struct {
	cfg     config.Config
	logger  *zap.Logger
	storage session.Storage
	store   *state.Store
	client  *activity.Client
}

func (d *dependencies) close() {
	closeStorage(d.storage)
	_ = d.logger.Sync()
}

func closeStorage(s session.Storage) {
	if c, ok := s.(io.Closer); ok {
		_ = c.Close()
	}
}

// Replaced in tests.
var (
	openStorage = session.Open
	newClient   = buildClient
)

func buildClient(cfg config.Config, logger *zap.Logger) (*activity.Client, error) {
	return activity.NewClient(cfg.APIBaseURL,
		activity.WithTimeout(cfg.RequestTimeout),
		activity.WithLogger(logger.Named("activity")),
	)
}

func build(ctx context.Context, opts Options) (*dependencies, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.SessionID != "" {
		cfg.Storage.SessionID = opts.SessionID
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	storage, err := openStorage(cfg.SessionOptions())
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}

	store, err := state.NewStore(ctx, storage, state.WithLogger(logger.Named("state")))
	if err != nil {
		closeStorage(storage)
		return nil, fmt.Errorf("init filter store: %w", err)
	}

	client, err := newClient(cfg, logger)
	if err != nil {
		closeStorage(storage)
		return nil, fmt.Errorf("init activity client: %w", err)
	}

	logger.Info("wtd started",
		zap.String("api", client.BaseURL()),
		zap.String("storage", cfg.Storage.Driver),
	)

	return &dependencies{
		cfg:     cfg,
		logger:  logger,
		storage: storage,
		store:   store,
		client:  client,
	}, nil
}

// searchOnce runs a single recommendation request with the persisted
// filters, stores the results and prints them as JSON.
func searchOnce(ctx context.Context, deps *dependencies, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if err := deps.store.MarkSearched(ctx); err != nil {
		return err
	}
	snap := deps.store.Snapshot()
	req := snap.Filters.Request(deps.cfg.UserIDInt(), deps.cfg.Latitude, deps.cfg.Longitude)

	res, err := deps.client.Recommend(ctx, req)
	if err != nil {
		return err
	}
	if err := deps.store.SetRecommendations(ctx, res.Recommendations); err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
