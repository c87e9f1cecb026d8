package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/five82/lifter/internal/catalog"
	"github.com/five82/lifter/internal/config"
	"github.com/five82/lifter/internal/kv"
	"github.com/five82/lifter/internal/logging"
	"github.com/five82/lifter/internal/prefs"
	"github.com/five82/lifter/internal/state"
	"github.com/five82/lifter/internal/ui"
)

// Options configure the lifter application. Empty fields keep the config
// file values.
type Options struct {
	ConfigPath    string
	DataDir       string
	CatalogSource string
}

// Run boots the lifter TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Override(opts.DataDir, opts.CatalogSource)

	closer, err := logging.Setup(logging.LoggerSetupParams{
		LogFileName: cfg.LogFile,
		LogLevel:    cfg.LogLevel,
		MaxSizeMB:   cfg.LogMaxSizeMB,
		MaxBackups:  cfg.LogMaxBackups,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	session, err := openSession(cfg, time.Now())
	if err != nil {
		return err
	}

	userPrefs, err := prefs.Load(cfg.PrefsPath())
	if err != nil {
		log.WithError(err).Warn("load prefs; using defaults")
	}

	log.WithFields(log.Fields{
		"data_dir": cfg.DataDir,
		"catalog":  cfg.CatalogSource,
	}).Info("lifter starting")

	err = ui.Run(ui.Options{
		Context:       ctx,
		Session:       session,
		LoadCatalog:   catalogLoader(cfg.CatalogSource),
		LogPath:       cfg.LogFile,
		ThemeName:     userPrefs.Theme,
		PrefsPath:     cfg.PrefsPath(),
		LibraryFilter: userPrefs.LibraryFilter,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		log.Info("lifter stopped by signal")
		return nil
	}
	return err
}

// catalogLoader loads source once. A failure is final for the session.
func catalogLoader(source string) func(context.Context) (*catalog.Index, error) {
	loader := catalog.NewLoader()
	return func(ctx context.Context) (*catalog.Index, error) {
		idx, err := loader.Load(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("load catalog %q: %w", source, err)
		}
		return idx, nil
	}
}

// openSession opens the data directory and loads the persisted state.
func openSession(cfg config.Config, now time.Time) (*state.Session, error) {
	store, err := kv.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open data dir: %w", err)
	}
	session, err := state.Open(store, now)
	if err != nil {
		return nil, fmt.Errorf("load saved data: %w", err)
	}
	return session, nil
}
