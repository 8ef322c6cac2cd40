// Package daemon manages the Daily Check daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/dailycheck-app/dailycheck/internal/app/period"
	"github.com/dailycheck-app/dailycheck/internal/domain"
)

// Config holds all daemon configuration.
type Config struct {
	Tracker       TrackerConfig      `toml:"tracker"`
	Goals         GoalsConfig        `toml:"goals"`
	Profile       ProfileConfig      `toml:"profile"`
	API           APIConfig          `toml:"api"`
	Sync          SyncConfig         `toml:"sync"`
	Notifications NotificationConfig `toml:"notifications"`
	Telemetry     TelemetryConfig    `toml:"telemetry"`
}

// TrackerConfig controls period arithmetic.
type TrackerConfig struct {
	CommercialMonthStartDay int `toml:"commercial_month_start_day"`
}

// GoalsConfig carries per-activity targets. Daily targets drive the
// weekly/monthly derivation when the explicit maps are empty.
type GoalsConfig struct {
	Daily   map[string]int `toml:"daily"`
	Weekly  map[string]int `toml:"weekly"`
	Monthly map[string]int `toml:"monthly"`
}

// ProfileConfig is the user's commercial profile.
type ProfileConfig struct {
	CommissionStatus      string `toml:"commission_status"`
	QualificationOverride string `toml:"qualification_override"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// SyncConfig controls the optional MongoDB replica. The URI can come from
// the config file or the DAILYCHECK_MONGO_URI environment variable; the
// env var wins so the secret can stay out of the file.
type SyncConfig struct {
	Enabled    bool   `toml:"enabled"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
	UserID     string `toml:"user_id"`
}

// NotificationConfig controls the notification policy gates.
type NotificationConfig struct {
	MaxPerDay  int    `toml:"max_per_day"`
	QuietStart string `toml:"quiet_start"`
	QuietEnd   string `toml:"quiet_end"`
}

// TelemetryConfig controls the /metrics endpoint.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Tracker: TrackerConfig{
			CommercialMonthStartDay: period.DefaultStartDay,
		},
		Goals: GoalsConfig{
			Daily: map[string]int{
				string(domain.ActContacts):     10,
				string(domain.ActVideosSent):   5,
				string(domain.ActAppointments): 2,
			},
		},
		Profile: ProfileConfig{
			CommissionStatus: string(domain.StatusStandard),
		},
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        7227,
			CORSOrigins: []string{"*"},
		},
		Sync: SyncConfig{
			Database:   "dailycheck",
			Collection: "activity_logs",
			UserID:     "default",
		},
		Notifications: NotificationConfig{
			MaxPerDay:  domain.DefaultNotificationPolicy().MaxPerDay,
			QuietStart: domain.DefaultNotificationPolicy().QuietStart,
			QuietEnd:   domain.DefaultNotificationPolicy().QuietEnd,
		},
	}
}

// LoadConfig reads config from ~/.dailycheck/config.toml, falling back to
// defaults. A .env file in the data directory is loaded first so secrets
// like the Mongo URI never need to live in the TOML file.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(filepath.Join(dailycheckHome(), ".env"))

	cfg := DefaultConfig()
	path := filepath.Join(dailycheckHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		applyEnv(&cfg)
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Tracker.CommercialMonthStartDay = period.ClampStartDay(cfg.Tracker.CommercialMonthStartDay)
	applyEnv(&cfg)
	return cfg, nil
}

// SaveConfig writes the config to ~/.dailycheck/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(dailycheckHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// GoalSet resolves the effective goals: explicit maps win, missing weekly
// and monthly targets are derived from the daily ones.
func (c Config) GoalSet() domain.Goals {
	goals := domain.Goals{
		Daily:   parseGoalMap(c.Goals.Daily),
		Weekly:  parseGoalMap(c.Goals.Weekly),
		Monthly: parseGoalMap(c.Goals.Monthly),
	}
	derived := domain.DeriveFromDaily(goals.Daily)
	if len(goals.Weekly) == 0 {
		goals.Weekly = derived.Weekly
	}
	if len(goals.Monthly) == 0 {
		goals.Monthly = derived.Monthly
	}
	return goals
}

func parseGoalMap(raw map[string]int) map[domain.ActivityType]int {
	out := make(map[domain.ActivityType]int, len(raw))
	for k, v := range raw {
		a, err := domain.ParseActivity(k)
		if err != nil {
			continue // unknown keys in the file are ignored, not fatal
		}
		out[a] = v
	}
	return out
}

func applyEnv(cfg *Config) {
	if uri := os.Getenv("DAILYCHECK_MONGO_URI"); uri != "" {
		cfg.Sync.MongoURI = uri
	}
}

// dailycheckHome returns the Daily Check data directory.
func dailycheckHome() string {
	if env := os.Getenv("DAILYCHECK_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".dailycheck")
}

// Home is exported for use by other packages.
func Home() string {
	return dailycheckHome()
}
