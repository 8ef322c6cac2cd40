package engagement

import (
	"sort"
	"time"

	"github.com/dailycheck-app/dailycheck/internal/domain"
)

// StreakStats derives streaks from the full log history. A day counts when
// any activity count is positive; a gap of any size resets the run.
// Current is the run ending today (or yesterday, when today has no
// activity yet); longest is the best run anywhere in the history.
func StreakStats(logs []domain.ActivityLog, now time.Time) (current, longest int) {
	active := make(map[string]bool)
	for _, l := range logs {
		if !l.HasActivity() {
			continue
		}
		if _, err := l.Day(); err != nil {
			continue
		}
		active[l.Date] = true
	}
	if len(active) == 0 {
		return 0, 0
	}

	days := make([]string, 0, len(active))
	for d := range active {
		days = append(days, d)
	}
	sort.Strings(days)

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		prev, _ := domain.ParseDateKey(days[i-1])
		if domain.FormatDateKey(prev.AddDate(0, 0, 1)) == days[i] {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	// Current streak walks back from today; a day not yet logged doesn't
	// break a run that ended yesterday.
	day := now
	if !active[domain.FormatDateKey(day)] {
		day = day.AddDate(0, 0, -1)
	}
	for active[domain.FormatDateKey(day)] {
		current++
		day = day.AddDate(0, 0, -1)
	}
	return current, longest
}
