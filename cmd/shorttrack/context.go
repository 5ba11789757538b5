package main

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"

	"shorttrack/internal/blobstore"
	"shorttrack/internal/config"
	"shorttrack/internal/logging"
	"shorttrack/internal/notifications"
	"shorttrack/internal/store"
	"shorttrack/internal/tracker"
)

type commandContext struct {
	configFlag *string
	actorFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, actorFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		actorFlag:  actorFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// actorID resolves the acting user from the --actor flag or the
// SHORTTRACK_ACTOR environment variable.
func (c *commandContext) actorID() (string, error) {
	if c.actorFlag != nil {
		if id := strings.TrimSpace(*c.actorFlag); id != "" {
			return id, nil
		}
	}
	if id := strings.TrimSpace(os.Getenv("SHORTTRACK_ACTOR")); id != "" {
		return id, nil
	}
	return "", errors.New("no acting user: pass --actor or set SHORTTRACK_ACTOR")
}

// cliServices bundles the wired collaborators for one command invocation.
type cliServices struct {
	cfg      *config.Config
	store    *store.Store
	blobs    *blobstore.Store
	notifier notifications.Service
	tracker  *tracker.Tracker
}

// withServices wires the full stack for one command and tears it down
// afterwards.
func (c *commandContext) withServices(ctx context.Context, fn func(context.Context, *cliServices) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	blobs, err := blobstore.New(cfg)
	if err != nil {
		return err
	}
	notifier := notifications.NewService(cfg)

	return fn(ctx, &cliServices{
		cfg:      cfg,
		store:    st,
		blobs:    blobs,
		notifier: notifier,
		tracker:  tracker.New(cfg, st, notifier, blobs, logger),
	})
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
