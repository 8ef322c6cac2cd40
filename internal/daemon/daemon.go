package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dailycheck-app/dailycheck/internal/api"
	"github.com/dailycheck-app/dailycheck/internal/app/engagement"
	"github.com/dailycheck-app/dailycheck/internal/app/tracker"
	"github.com/dailycheck-app/dailycheck/internal/domain"
	"github.com/dailycheck-app/dailycheck/internal/health"
	"github.com/dailycheck-app/dailycheck/internal/infra/cloudsync"
	_ "github.com/dailycheck-app/dailycheck/internal/infra/metrics" // Register Prometheus metrics
	"github.com/dailycheck-app/dailycheck/internal/infra/sqlite"
)

const goalsSettingKey = "goals"

// Daemon is the core Daily Check runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Server *api.Server

	Tracker      *tracker.Service
	Achievement  *engagement.AchievementService
	Notification *engagement.NotificationService
	Sync         *cloudsync.Client
	Health       *health.Checker

	cancel context.CancelFunc
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
	db, err := sqlite.Open(dailycheckHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	logs, err := db.LoadLogs(context.Background())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load logs: %w", err)
	}

	startDay := cfg.Tracker.CommercialMonthStartDay

	// Goals set through the API are stored in the settings table and take
	// precedence over the config file.
	goals := cfg.GoalSet()
	if stored, ok := loadStoredGoals(db); ok {
		goals = stored
	}

	policy := domain.NotificationPolicy{
		MaxPerDay:  cfg.Notifications.MaxPerDay,
		QuietStart: cfg.Notifications.QuietStart,
		QuietEnd:   cfg.Notifications.QuietEnd,
	}

	d := &Daemon{
		Config:       cfg,
		DB:           db,
		Achievement:  engagement.NewAchievementService(db, startDay),
		Notification: engagement.NewNotificationService(db, policy),
	}

	if cfg.Sync.Enabled && cfg.Sync.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		sync, err := cloudsync.Connect(ctx, cfg.Sync.MongoURI, cfg.Sync.Database, cfg.Sync.Collection, cfg.Sync.UserID)
		if err != nil {
			log.Printf("[daemon] WARNING: cloud sync unavailable, running local-only: %v", err)
		} else {
			d.Sync = sync
			restored, err := restoreFromReplica(ctx, db, sync, logs)
			if err != nil {
				log.Printf("[daemon] WARNING: cloud restore failed, keeping local state: %v", err)
			} else {
				if len(restored) != len(logs) {
					log.Printf("[daemon] restored %d log(s) from cloud replica", len(restored))
				}
				logs = restored
			}
		}
		cancel()
	}

	d.Tracker = tracker.New(logs, goals, startDay, db, engagement.NewGoalChecker(), d.Achievement, d.Notification)
	if d.Sync != nil {
		d.Tracker.SetSyncer(d.Sync)
	}
	d.Health = health.NewChecker(db, dailycheckHome())

	d.Server = api.NewServer(api.Deps{
		Tracker:               d.Tracker,
		Achievements:          d.Achievement,
		Notifications:         d.Notification,
		CommissionStatus:      domain.CommissionStatus(cfg.Profile.CommissionStatus),
		QualificationOverride: cfg.Profile.QualificationOverride,
		CORSOrigins:           cfg.API.CORSOrigins,
		SaveGoals:             d.SaveGoals,
		Health:                d.Health,
	})

	if cfg.Telemetry.Prometheus {
		d.Server.EnableMetrics()
	}

	return d, nil
}

// puller fetches the remote log snapshot.
type puller interface {
	Pull(ctx context.Context) ([]domain.ActivityLog, error)
}

// restoreFromReplica seeds an empty local database from the cloud snapshot.
// A device with local history never pulls — local state always wins.
func restoreFromReplica(ctx context.Context, db *sqlite.DB, p puller, local []domain.ActivityLog) ([]domain.ActivityLog, error) {
	if len(local) > 0 {
		return local, nil
	}
	remote, err := p.Pull(ctx)
	if err != nil {
		return nil, fmt.Errorf("pull snapshot: %w", err)
	}
	if len(remote) == 0 {
		return local, nil
	}
	if err := db.ReplaceLogs(ctx, remote); err != nil {
		return nil, fmt.Errorf("persist restored logs: %w", err)
	}
	return remote, nil
}

// PushNow synchronously replicates the current collection to the cloud.
func (d *Daemon) PushNow(ctx context.Context) error {
	if d.Sync == nil {
		return domain.ErrSyncDisabled
	}
	return d.Sync.Push(ctx, d.Tracker.Logs())
}

// SaveGoals persists a goal update so it survives restarts.
func (d *Daemon) SaveGoals(g domain.Goals) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return d.DB.SetSetting(goalsSettingKey, string(raw))
}

func loadStoredGoals(db *sqlite.DB) (domain.Goals, bool) {
	raw, err := db.GetSetting(goalsSettingKey)
	if err != nil || raw == "" {
		return domain.Goals{}, false
	}
	var g domain.Goals
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		log.Printf("[daemon] ignoring corrupt stored goals: %v", err)
		return domain.Goals{}, false
	}
	return g, true
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
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
		if d.Sync != nil {
			_ = d.Sync.Close(shutdownCtx)
		}
		_ = d.DB.Close()
	}()

	fmt.Printf("Daily Check serving on http://%s\n", addr)
	if d.Config.Sync.Enabled && d.Sync != nil {
		fmt.Printf("  Cloud sync: enabled (user %s)\n", d.Config.Sync.UserID)
	}
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
	if d.Sync != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = d.Sync.Close(ctx)
		cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
