package app

import (
	"context"
	"fmt"
	"time"

	"github.com/skyhook/neotrack/internal/config"
	"github.com/skyhook/neotrack/internal/neows"
	"github.com/skyhook/neotrack/internal/prefs"
	"github.com/skyhook/neotrack/internal/ui"
)

// Options configure the neotrack application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/neotrack/prefs.toml

	// TypingDelayMS overrides the prefs value when non-negative.
	TypingDelayMS int
}

// Run boots the tracker session until it completes or fails.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	client, err := neows.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout)
	if err != nil {
		return fmt.Errorf("init neows client: %w", err)
	}

	delayMS := userPrefs.TypingDelayMS
	if opts.TypingDelayMS >= 0 {
		delayMS = opts.TypingDelayMS
	}

	uiOpts := ui.Options{
		Context:     ctx,
		Fetcher:     client,
		ThemeName:   userPrefs.Theme,
		TypingDelay: time.Duration(delayMS) * time.Millisecond,
	}
	return ui.Run(uiOpts)
}
