// Package tracker implements the activity-log aggregation engine and the
// mutation transaction that is the only write path into the log collection.
package tracker

import (
	"time"

	"github.com/dailycheck-app/dailycheck/internal/app/period"
	"github.com/dailycheck-app/dailycheck/internal/domain"
)

// SumActivity sums one activity's counts over logs whose date satisfies the
// predicate. Logs with unparseable date keys are skipped — the mutation path
// rejects them, so they can only come from hand-edited storage.
func SumActivity(logs []domain.ActivityLog, activity domain.ActivityType, pred func(time.Time) bool) int {
	total := 0
	for _, l := range logs {
		day, err := l.Day()
		if err != nil {
			continue
		}
		if pred(day) {
			total += l.Count(activity)
		}
	}
	return total
}

// ProgressForActivity sums one activity across the four period buckets,
// each scoped to exactly one period definition relative to now.
func ProgressForActivity(logs []domain.ActivityLog, activity domain.ActivityType, now time.Time, startDay int) domain.Progress {
	todayKey := domain.FormatDateKey(now)
	weekID := period.WeekID(now)
	monthID := period.MonthID(now)

	return domain.Progress{
		Daily: SumActivity(logs, activity, func(d time.Time) bool {
			return domain.FormatDateKey(d) == todayKey
		}),
		Weekly: SumActivity(logs, activity, func(d time.Time) bool {
			return period.WeekID(d) == weekID
		}),
		Monthly: SumActivity(logs, activity, func(d time.Time) bool {
			return period.MonthID(d) == monthID
		}),
		CommercialMonthly: SumActivity(logs, activity, func(d time.Time) bool {
			return period.InCommercialMonth(d, now, startDay)
		}),
	}
}

// TotalsForRange sums every activity across logs whose date falls in
// [start, end], bounds inclusive by calendar date.
func TotalsForRange(logs []domain.ActivityLog, start, end time.Time) map[domain.ActivityType]int {
	startKey := domain.FormatDateKey(start)
	endKey := domain.FormatDateKey(end)

	totals := make(map[domain.ActivityType]int)
	for _, l := range logs {
		if l.Date < startKey || l.Date > endKey {
			continue
		}
		for _, a := range domain.AllActivities() {
			if n := l.Count(a); n > 0 {
				totals[a] += n
			}
		}
	}
	return totals
}

// TotalAllTime sums one activity over the whole history.
func TotalAllTime(logs []domain.ActivityLog, activity domain.ActivityType) int {
	total := 0
	for _, l := range logs {
		total += l.Count(activity)
	}
	return total
}
