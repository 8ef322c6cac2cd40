package domain

import "math"

// GoalPeriod is one of the three independent goal buckets.
type GoalPeriod string

const (
	PeriodDaily   GoalPeriod = "daily"
	PeriodWeekly  GoalPeriod = "weekly"
	PeriodMonthly GoalPeriod = "monthly"
)

// GoalPeriods returns the evaluation order for goal checks.
func GoalPeriods() []GoalPeriod {
	return []GoalPeriod{PeriodDaily, PeriodWeekly, PeriodMonthly}
}

// Goals holds per-period, per-activity targets. A zero or absent target
// means "no goal set" and all evaluators skip it.
type Goals struct {
	Daily   map[ActivityType]int `toml:"daily" json:"daily"`
	Weekly  map[ActivityType]int `toml:"weekly" json:"weekly"`
	Monthly map[ActivityType]int `toml:"monthly" json:"monthly"`
}

// Target returns the goal for a period/activity pair, zero when unset.
func (g Goals) Target(p GoalPeriod, a ActivityType) int {
	switch p {
	case PeriodDaily:
		return g.Daily[a]
	case PeriodWeekly:
		return g.Weekly[a]
	case PeriodMonthly:
		return g.Monthly[a]
	}
	return 0
}

// DeriveFromDaily fills weekly and monthly targets from daily ones using the
// app convention: weekly = 6 × daily, monthly = round(weekly × 4.5).
// It is a convenience, not an invariant — callers may set any combination.
func DeriveFromDaily(daily map[ActivityType]int) Goals {
	g := Goals{
		Daily:   make(map[ActivityType]int, len(daily)),
		Weekly:  make(map[ActivityType]int, len(daily)),
		Monthly: make(map[ActivityType]int, len(daily)),
	}
	for a, n := range daily {
		if n <= 0 {
			continue
		}
		g.Daily[a] = n
		weekly := n * 6
		g.Weekly[a] = weekly
		g.Monthly[a] = int(math.Round(float64(weekly) * 4.5))
	}
	return g
}
