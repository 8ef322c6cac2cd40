package engagement

import (
	"time"

	"github.com/dailycheck-app/dailycheck/internal/app/period"
	"github.com/dailycheck-app/dailycheck/internal/app/tracker"
	"github.com/dailycheck-app/dailycheck/internal/domain"
	"github.com/dailycheck-app/dailycheck/internal/infra/sqlite"
)

// AchievementService manages the badge catalog. Every check is a stateless
// re-scan of the full log history against stat-based predicates; the
// unlocked set in SQLite only grows.
type AchievementService struct {
	db          *sqlite.DB
	startDay    int
	definitions []domain.AchievementDef
}

// NewAchievementService creates an achievement service with the full catalog.
func NewAchievementService(db *sqlite.DB, startDay int) *AchievementService {
	return &AchievementService{
		db:          db,
		startDay:    startDay,
		definitions: Catalog(),
	}
}

// BuildSnapshot aggregates the stats that achievement predicates read.
func BuildSnapshot(logs []domain.ActivityLog, goals domain.Goals, now time.Time, startDay int) domain.StatsSnapshot {
	current, longest := StreakStats(logs, now)

	inCM := func(d time.Time) bool {
		return period.InCommercialMonth(d, now, startDay)
	}

	return domain.StatsSnapshot{
		CurrentStreak:      current,
		LongestStreak:      longest,
		ContactsThisCM:     tracker.SumActivity(logs, domain.ActContacts, inCM),
		VideosThisCM:       tracker.SumActivity(logs, domain.ActVideosSent, inCM),
		AppointmentsThisCM: tracker.SumActivity(logs, domain.ActAppointments, inCM),
		TotalContacts:      tracker.TotalAllTime(logs, domain.ActContacts),
		TotalContracts:     tracker.TotalAllTime(logs, domain.ActNewContracts),
		TotalFamilyUtility: tracker.TotalAllTime(logs, domain.ActNewFamilyUtility),
		HasPerfectDay:      hasPerfectDay(logs, goals),
	}
}

// hasPerfectDay reports whether any single day meets every non-zero daily
// goal. A configuration with no daily goals never produces a perfect day —
// the vacuous case is excluded explicitly.
func hasPerfectDay(logs []domain.ActivityLog, goals domain.Goals) bool {
	hasGoal := false
	for _, n := range goals.Daily {
		if n > 0 {
			hasGoal = true
			break
		}
	}
	if !hasGoal {
		return false
	}

	for _, l := range logs {
		perfect := true
		for a, goal := range goals.Daily {
			if goal > 0 && l.Count(a) < goal {
				perfect = false
				break
			}
		}
		if perfect {
			return true
		}
	}
	return false
}

// CheckAndUnlock evaluates all achievements against the given history.
// Returns newly unlocked achievements (already-unlocked are skipped).
func (a *AchievementService) CheckAndUnlock(logs []domain.ActivityLog, goals domain.Goals, now time.Time) ([]domain.AchievementDef, error) {
	stats := BuildSnapshot(logs, goals, now, a.startDay)

	var newlyUnlocked []domain.AchievementDef
	for _, def := range a.definitions {
		unlocked, err := a.db.IsAchievementUnlocked(def.ID)
		if err != nil {
			return nil, err
		}
		if unlocked {
			continue
		}

		if def.Predicate != nil && def.Predicate(stats) {
			isNew, err := a.db.UnlockAchievement(def.ID, now)
			if err != nil {
				return nil, err
			}
			if isNew {
				newlyUnlocked = append(newlyUnlocked, def)
			}
		}
	}
	return newlyUnlocked, nil
}

// MarkNotified records that the user has seen the unlock message for a badge.
func (a *AchievementService) MarkNotified(id string) error {
	return a.db.MarkAchievementNotified(id)
}

// ListUnlocked returns all earned badges.
func (a *AchievementService) ListUnlocked() ([]domain.UnlockedAchievement, error) {
	return a.db.ListUnlockedAchievements()
}

// UnlockedCount returns how many badges are unlocked.
func (a *AchievementService) UnlockedCount() (int, error) {
	return a.db.UnlockedAchievementCount()
}

// TotalCount returns the size of the catalog.
func (a *AchievementService) TotalCount() int {
	return len(a.definitions)
}

// Definitions returns the catalog (for display).
func (a *AchievementService) Definitions() []domain.AchievementDef {
	return a.definitions
}

// ─── Badge Catalog ──────────────────────────────────────────────────────────

// Catalog returns the fixed badge set. Each predicate reads the stats
// snapshot only — no predicate touches storage.
func Catalog() []domain.AchievementDef {
	return []domain.AchievementDef{
		{
			ID: "first_contact", Name: "Breaking the Ice", Icon: "🤝",
			Description: "Record your first contact.",
			Predicate:   func(s domain.StatsSnapshot) bool { return s.TotalContacts >= 1 },
		},
		{
			ID: "streak_7", Name: "Week Warrior", Icon: "🔥",
			Description: "Seven consecutive days with activity.",
			Predicate:   func(s domain.StatsSnapshot) bool { return s.LongestStreak >= 7 },
		},
		{
			ID: "streak_30", Name: "Relentless", Icon: "💪",
			Description: "Thirty consecutive days with activity.",
			Predicate:   func(s domain.StatsSnapshot) bool { return s.LongestStreak >= 30 },
		},
		{
			ID: "contacts_100_month", Name: "Century Club", Icon: "💯",
			Description: "100 contacts in one commercial month.",
			Predicate:   func(s domain.StatsSnapshot) bool { return s.ContactsThisCM >= 100 },
		},
		{
			ID: "videos_50_month", Name: "Screen Time", Icon: "🎬",
			Description: "50 videos sent in one commercial month.",
			Predicate:   func(s domain.StatsSnapshot) bool { return s.VideosThisCM >= 50 },
		},
		{
			ID: "appointments_20_month", Name: "Fully Booked", Icon: "📅",
			Description: "20 appointments in one commercial month.",
			Predicate:   func(s domain.StatsSnapshot) bool { return s.AppointmentsThisCM >= 20 },
		},
		{
			ID: "contracts_10", Name: "Closer", Icon: "✍️",
			Description: "Ten contracts signed all-time.",
			Predicate:   func(s domain.StatsSnapshot) bool { return s.TotalContracts >= 10 },
		},
		{
			ID: "perfect_day", Name: "Perfect Day", Icon: "⭐",
			Description: "Hit every daily goal in a single day.",
			Predicate:   func(s domain.StatsSnapshot) bool { return s.HasPerfectDay },
		},
	}
}
