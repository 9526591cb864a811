// Command pcfsim plays a synthetic league season: a double round-robin
// through the worker pool, then the season-end development pass.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	app "github.com/jsmcel/androidfutbol5-sub000/internal/app"
	"github.com/jsmcel/androidfutbol5-sub000/internal/config"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/development"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/matchsim"
	"github.com/jsmcel/androidfutbol5-sub000/pkg/logger"
	"github.com/jsmcel/androidfutbol5-sub000/pkg/metrics"
)

const (
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 10 * time.Second
	systemMetricsInterval = 10 * time.Second
	managedTeamID         = 1
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// logger is not available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.Init(logger.WithLevel(cfg.LogLevel), logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()
	go startSystemMetricsUpdater(ctx)

	var srv *http.Server
	if cfg.MetricsAddr != "" {
		srv = serveMetrics(ctx, cfg.MetricsAddr, log)
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "season failed", logger.Error(err))
		os.Exit(1)
	}

	if srv == nil {
		return
	}
	log.Info(ctx, "season finished; serving metrics until interrupted", logger.String("addr", cfg.MetricsAddr))
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "metrics server shutdown failed", logger.Error(err))
	}
}

// run plays one season with the given configuration.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	teams := syntheticLeague(cfg.TeamCount, cfg.SeasonSeed, cfg.SeasonStartYear)

	sim := matchsim.New(
		matchsim.WithHomeAdvantage(cfg.HomeAdvantage),
		matchsim.WithVARRates(cfg.VARReviewProb, cfg.VARDisallowProb),
		matchsim.WithInjuryRate(cfg.InjuryRate),
	)
	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithSeason(cfg.SeasonStartYear, cfg.SeasonSeed),
		app.WithSimulator(sim),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer func() {
		if err := svc.Stop(context.Background()); err != nil {
			log.Warn(ctx, "service stop failed", logger.Error(err))
		}
	}()

	if err := svc.StartSeason(ctx, cfg.SeasonStartYear, teamInputs(teams)); err != nil {
		return fmt.Errorf("start season: %w", err)
	}

	calendar := app.DoubleRoundRobin(teamInputs(teams), cfg.SeasonSeed)
	for md, fixtures := range calendar {
		if _, err := svc.PlayMatchday(ctx, md+1, fixtures); err != nil {
			return fmt.Errorf("matchday %d: %w", md+1, err)
		}
	}

	table, err := svc.Standings(ctx)
	if err != nil {
		return fmt.Errorf("standings: %w", err)
	}
	for _, row := range table {
		log.Info(ctx, "standing",
			logger.Int("rank", row.Rank),
			logger.String("team", row.TeamName),
			logger.Int("points", row.Points),
			logger.Int("played", row.Played),
			logger.Int("won", row.Won),
			logger.Int("drawn", row.Drawn),
			logger.Int("lost", row.Lost),
			logger.Int("gd", row.GoalDifference()),
		)
	}

	end := app.SeasonEnd{
		SeasonStartYear: cfg.SeasonStartYear,
		Seed:            cfg.SeasonSeed,
		Rosters:         make(map[int][]development.DevelopmentPlayer, len(teams)),
		Contexts:        make(map[int]development.DevelopmentContext, len(teams)),
		ManagedTeamID:   managedTeamID,
	}
	for _, t := range teams {
		end.Rosters[t.match.TeamID] = t.roster
		end.Contexts[t.match.TeamID] = t.dev
	}
	report, err := svc.EndSeason(ctx, end)
	if err != nil {
		return fmt.Errorf("end season: %w", err)
	}
	for _, y := range report.Youth {
		log.Info(ctx, "academy signing",
			logger.String("id", y.ID.String()),
			logger.String("name", y.Name),
			logger.String("position", y.Position.String()),
			logger.Int("birth_year", y.BirthYear),
		)
	}
	return nil
}

func serveMetrics(ctx context.Context, addr string, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		log.Info(ctx, "serving metrics", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "metrics server failed", logger.Error(err))
		}
	}()
	return srv
}

// startSystemMetricsUpdater refreshes process metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
