package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"cinelog/internal/catalog"
	"cinelog/internal/config"
	"cinelog/internal/logging"
	"cinelog/internal/services"
	"cinelog/internal/tmdb"
	"cinelog/internal/workflow"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolvedPath, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolvedPath
	})
	return c.config, c.configErr
}

// configLocation returns the resolved configuration path, even when the file
// does not exist yet. Credential saves write here.
func (c *commandContext) configLocation() string {
	_, _ = c.ensureConfig()
	return c.configPath
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// withStore opens the catalog for the duration of fn. The store holds the
// single-instance lock, so commands open it late and close it eagerly.
func (c *commandContext) withStore(fn func(*catalog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := catalog.Open(cfg)
	if err != nil {
		if errors.Is(err, catalog.ErrCatalogLocked) {
			return fmt.Errorf("catalog at %s is in use by another cinelog process", cfg.DatabasePath())
		}
		return err
	}
	defer store.Close()
	return fn(store)
}

// lookupFactory builds TMDB clients lazily so a credential saved moments ago
// is picked up.
func (c *commandContext) lookupFactory() workflow.LookupFactory {
	return func() (tmdb.Searcher, error) {
		cfg, err := c.ensureConfig()
		if err != nil {
			return nil, err
		}
		if !cfg.HasAPIKey() {
			return nil, services.Wrap(services.ErrCredentialMissing, "tmdb", "build client",
				"set tmdb.api_key in the config file or export TMDB_API_KEY", nil)
		}
		return tmdb.New(
			cfg.TMDB.APIKey,
			cfg.TMDB.BaseURL,
			cfg.TMDB.Language,
			tmdb.WithTimeout(time.Duration(cfg.TMDB.RequestTimeout)*time.Second),
		)
	}
}

// configCredentials adapts the loaded config to the add workflow's
// credential surface.
type configCredentials struct {
	cfg  *config.Config
	path string
}

func (c configCredentials) HasAPIKey() bool { return c.cfg.HasAPIKey() }

func (c configCredentials) SaveAPIKey(key string) error {
	return c.cfg.SaveAPIKey(c.path, key)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
