package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"
	_ "time/tzdata"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/strata/internal/apiclient"
	"github.com/alexanderramin/strata/internal/cache"
	"github.com/alexanderramin/strata/internal/cli"
	"github.com/alexanderramin/strata/internal/config"
	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	configPath := config.DefaultPath(home)
	cfg, err := config.Load(home, configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// The API client stays a nil interface when no URL is configured so
	// services report apiclient.ErrNotConfigured.
	var api apiclient.Client
	if cfg.APIURL != "" {
		var c cache.Cache = cache.NewMemoryCache()
		if cfg.RedisURL != "" {
			rc, err := cache.NewRedisCache(cfg.RedisURL)
			if err != nil {
				return fmt.Errorf("opening cache: %w", err)
			}
			c = rc
		}
		defer c.Close()

		var observer apiclient.Observer = apiclient.NoopObserver{}
		if cfg.LogUseCases {
			observer = apiclient.NewLogObserver(os.Stderr)
		}
		api = apiclient.New(apiclient.Config{
			BaseURL:    cfg.APIURL,
			Token:      cfg.APIToken,
			TimeoutMs:  cfg.TimeoutMs,
			MaxRetries: cfg.MaxRetries,
			CacheTTL:   cfg.CacheTTL(),
		}, c, observer)
	}

	clock := service.Clock(time.Now)
	tz := cfg.Timezone

	a := &cli.App{
		Snapshot:   service.NewSnapshotService(api, uow, tz, "api", clock, observers...),
		Timeline:   service.NewTimelineService(uow, tz, clock, observers...),
		Calendar:   service.NewCalendarService(uow, tz, clock, observers...),
		Actions:    service.NewActionService(api, uow, tz, clock, observers...),
		Dashboard:  service.NewDashboardService(uow, tz, clock, observers...),
		Profile:    service.NewProfileService(uow, tz, observers...),
		ConfigPath: configPath,
	}

	// Detect interactive terminal for spinners, prompts and the full-screen timeline.
	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(a).ExecuteContext(ctx)
}
