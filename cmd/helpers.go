package cmd

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/yash-srivastava19/docstudio/internal/config"
	"github.com/yash-srivastava19/docstudio/internal/kv"
	"github.com/yash-srivastava19/docstudio/internal/logging"
	"github.com/yash-srivastava19/docstudio/internal/notes"
	"github.com/yash-srivastava19/docstudio/internal/settings"
)

// env is everything a command needs, opened from the config file.
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	docs     *notes.Store
	settings *settings.Store
}

func setup() (*env, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}
	store, err := kv.Open(cfg.StoreDir())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	e := &env{
		cfg:      cfg,
		log:      log,
		docs:     notes.NewStore(store),
		settings: settings.NewStore(store),
	}
	if err := e.seedAPI(); err != nil {
		log.Warn("seeding api settings failed", zap.Error(err))
	}
	return e, nil
}

// seedAPI stores API settings from the environment when none are saved yet.
func (e *env) seedAPI() error {
	if _, ok := e.settings.API(); ok {
		return nil
	}
	seed, ok := e.cfg.SeedAPI()
	if !ok {
		return nil
	}
	e.log.Info("api settings seeded from environment", zap.String("endpoint", seed.APIEndpoint), zap.String("model", seed.Model))
	return e.settings.SaveAPI(seed)
}

func (e *env) close() {
	_ = e.log.Sync()
}

// docIndex parses a 1-based document number.
func docIndex(arg string, c *notes.Collection) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > c.Len() {
		return 0, fmt.Errorf("document %q not found (have %d)", arg, c.Len())
	}
	return n - 1, nil
}
