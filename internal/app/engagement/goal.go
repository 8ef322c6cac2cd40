// Package engagement implements the Daily Check engagement engine:
// edge-triggered goal milestones, streaks, achievements, and the
// policy-gated notification sink.
package engagement

import "github.com/dailycheck-app/dailycheck/internal/domain"

// GoalChecker evaluates goal thresholds for one activity across the three
// goal periods. Stateless — edge detection comes entirely from the
// before/after pair the mutation transaction snapshots.
type GoalChecker struct{}

// NewGoalChecker creates a goal checker.
func NewGoalChecker() GoalChecker { return GoalChecker{} }

// Evaluate returns the threshold events crossed by one update, at most one
// per period. Crossing 50%, 80%, and the goal in a single step fires only
// the goal-reached event; staying above a threshold never re-fires.
func (GoalChecker) Evaluate(before, after domain.Progress, goals domain.Goals, activity domain.ActivityType) []domain.GoalEvent {
	var events []domain.GoalEvent

	for _, p := range domain.GoalPeriods() {
		goal := goals.Target(p, activity)
		if goal <= 0 {
			continue // no goal set — skip evaluation entirely
		}

		b := float64(before.ByPeriod(p))
		a := float64(after.ByPeriod(p))
		g := float64(goal)

		var kind domain.GoalEventKind
		switch {
		case a >= g && b < g:
			kind = domain.EventGoalReached
		case a >= 0.8*g && b < 0.8*g && a < g:
			kind = domain.EventMilestone80
		case a >= 0.5*g && b < 0.5*g && a < 0.8*g:
			kind = domain.EventMilestone50
		default:
			continue
		}

		events = append(events, domain.GoalEvent{
			Kind:     kind,
			Period:   p,
			Activity: activity,
			Goal:     goal,
			After:    after.ByPeriod(p),
		})
	}

	return events
}
