package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/duebook-dev/duebook/internal/activitylog"
	"github.com/duebook-dev/duebook/internal/config"
	"github.com/duebook-dev/duebook/internal/dateutil"
	"github.com/duebook-dev/duebook/internal/series"
	"github.com/duebook-dev/duebook/internal/store"
)

// defaultConfigFile is the config looked up in the working directory when
// --config is not given.
const defaultConfigFile = "duebook.yaml"

// app bundles the collaborators every command needs: config, the series
// store, and the service over it.
type app struct {
	cfg    *config.Config
	store  *store.Store
	series *series.Service
}

// openApp loads config and opens the store. Callers must Close.
func openApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s (run `duebook init` first?): %w", configPath, err)
	}

	st, err := store.Open(cfg.Data.Path)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		store:  st,
		series: series.NewService(st, nil),
	}, nil
}

func (a *app) Close() {
	_ = a.store.Close()
}

// dataDir is where the activity log lives, next to the database.
func (a *app) dataDir() string {
	return filepath.Dir(a.cfg.Data.Path)
}

// logActivity records a mutation in the activity log. Logging failures are
// reported but never fail the command; the mutation already committed.
func (a *app) logActivity(now time.Time, action, seriesID, dayKey, details string) {
	err := activitylog.Append(a.dataDir(), []activitylog.Entry{{
		Timestamp: now,
		Action:    action,
		SeriesID:  seriesID,
		Date:      dayKey,
		Details:   details,
	}})
	if err != nil {
		fmt.Printf("warning: recording activity: %v\n", err)
	}
}

// parseDateArg parses a YYYY-MM-DD command argument.
func parseDateArg(arg string) (time.Time, error) {
	d, err := dateutil.ParseDayKey(arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", arg)
	}
	return d, nil
}

// today returns the current calendar date; every command reads the clock
// exactly once, here, and passes it down.
func today() time.Time {
	return dateutil.Date(time.Now().UTC())
}
