package domain

import "time"

// ─── Progress ───────────────────────────────────────────────────────────────

// Progress is one activity's summed counts across the four period buckets,
// computed against "now". Each bucket scopes to exactly one period
// definition — no log is double-counted within a bucket.
type Progress struct {
	Daily             int `json:"daily"`
	Weekly            int `json:"weekly"`
	Monthly           int `json:"monthly"`
	CommercialMonthly int `json:"commercial_monthly"`
}

// ByPeriod returns the bucket value for a goal period. Goals are evaluated
// against daily, weekly, and calendar-monthly buckets only.
func (p Progress) ByPeriod(period GoalPeriod) int {
	switch period {
	case PeriodDaily:
		return p.Daily
	case PeriodWeekly:
		return p.Weekly
	case PeriodMonthly:
		return p.Monthly
	}
	return 0
}

// ─── Goal Events ────────────────────────────────────────────────────────────

// GoalEventKind distinguishes the three edge-triggered thresholds.
type GoalEventKind string

const (
	EventGoalReached GoalEventKind = "goal_reached"
	EventMilestone80 GoalEventKind = "milestone_80"
	EventMilestone50 GoalEventKind = "milestone_50"
)

// GoalEvent fires once on the step across a threshold, never while staying
// above it. A single increment can fire at most one event per period.
type GoalEvent struct {
	Kind     GoalEventKind `json:"kind"`
	Period   GoalPeriod    `json:"period"`
	Activity ActivityType  `json:"activity"`
	Goal     int           `json:"goal"`
	After    int           `json:"after"`
}

// ─── Achievements ───────────────────────────────────────────────────────────

// StatsSnapshot feeds achievement predicates. It is rebuilt from the full
// log collection on every evaluation — stateless, never incremental.
type StatsSnapshot struct {
	CurrentStreak      int  `json:"current_streak"`
	LongestStreak      int  `json:"longest_streak"`
	ContactsThisCM     int  `json:"contacts_this_cm"`
	VideosThisCM       int  `json:"videos_this_cm"`
	AppointmentsThisCM int  `json:"appointments_this_cm"`
	TotalContacts      int  `json:"total_contacts"`
	TotalContracts     int  `json:"total_contracts"`
	TotalFamilyUtility int  `json:"total_family_utility"`
	HasPerfectDay      bool `json:"has_perfect_day"`
}

// AchievementDef defines a badge and its stat-based predicate.
type AchievementDef struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Icon        string                   `json:"icon"`
	Description string                   `json:"description"`
	Predicate   func(StatsSnapshot) bool `json:"-"`
}

// UnlockedAchievement records a permanently earned badge. The unlocked set
// only grows — badges are never revoked.
type UnlockedAchievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
	Notified   bool      `json:"notified"`
}

// ─── Notifications ──────────────────────────────────────────────────────────

// NotificationSeverity matches the advisory sink contract: success or info.
type NotificationSeverity string

const (
	SeveritySuccess NotificationSeverity = "success"
	SeverityInfo    NotificationSeverity = "info"
)

// Notification is a user-facing advisory message. No acknowledgement, no
// backpressure.
type Notification struct {
	ID        int64                `json:"id"`
	Severity  NotificationSeverity `json:"severity"`
	Message   string               `json:"message"`
	CreatedAt time.Time            `json:"created_at"`
	Shown     bool                 `json:"shown"`
}

// NotificationPolicy caps how often the sink surfaces messages.
type NotificationPolicy struct {
	MaxPerDay  int    `toml:"max_per_day" json:"max_per_day"`
	QuietStart string `toml:"quiet_start" json:"quiet_start"` // "22:00"
	QuietEnd   string `toml:"quiet_end" json:"quiet_end"`     // "08:00"
}

// DefaultNotificationPolicy allows a handful of messages per day outside
// quiet hours.
func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{
		MaxPerDay:  10,
		QuietStart: "22:00",
		QuietEnd:   "08:00",
	}
}
