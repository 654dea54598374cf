package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/herm409/activity-tracker-app-sub000/internal/api"
	"github.com/herm409/activity-tracker-app-sub000/internal/app/pipeline"
	"github.com/herm409/activity-tracker-app-sub000/internal/app/team"
	"github.com/herm409/activity-tracker-app-sub000/internal/app/tracker"
	"github.com/herm409/activity-tracker-app-sub000/internal/health"
	_ "github.com/herm409/activity-tracker-app-sub000/internal/infra/metrics" // Register Prometheus metrics
	"github.com/herm409/activity-tracker-app-sub000/internal/infra/sqlite"
)

// Daemon is the tracker runtime. It wires together all services.
type Daemon struct {
	Config   Config
	DB       *sqlite.DB
	Tracker  *tracker.Service
	Pipeline *pipeline.Service
	Teams    *team.Service
	Server   *api.Server
	Health   *health.Checker
	cancel   context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(cfg.Tracker.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	trk := tracker.NewService(db, cfg.Tracker.DefaultPar)
	pipe := pipeline.NewService(db)
	teams := team.NewService(db)

	srv := api.NewServer(trk, pipe, teams)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	chk := health.NewChecker(db, cfg.Tracker.DataDir)
	srv.SetHealth(chk)

	return &Daemon{
		Config:   cfg,
		DB:       db,
		Tracker:  trk,
		Pipeline: pipe,
		Teams:    teams,
		Server:   srv,
		Health:   chk,
	}, nil
}

// Serve runs the HTTP server until ctx is cancelled or a signal arrives.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Health checker (always runs)
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.Server.Host, d.Config.Server.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("partrack serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
