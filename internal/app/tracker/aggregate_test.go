package tracker_test

import (
	"testing"
	"time"

	"github.com/dailycheck-app/dailycheck/internal/app/tracker"
	"github.com/dailycheck-app/dailycheck/internal/domain"
)

func contactLog(date string, n int) domain.ActivityLog {
	return domain.ActivityLog{
		Date:   date,
		Counts: map[domain.ActivityType]int{domain.ActContacts: n},
	}
}

func TestSumActivitySkipsBadDates(t *testing.T) {
	logs := []domain.ActivityLog{
		contactLog("2025-03-10", 5),
		contactLog("garbage", 100),
		contactLog("2025-03-11", 2),
	}
	got := tracker.SumActivity(logs, domain.ActContacts, func(time.Time) bool { return true })
	if got != 7 {
		t.Errorf("sum = %d, want 7 (unparseable key skipped)", got)
	}
}

func TestProgressForActivityBuckets(t *testing.T) {
	// now: Wed 2025-03-12. ISO week Mon 03-10 .. Sun 03-16.
	// Commercial month (start day 16): 2025-02-16 .. 2025-03-15.
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, time.Local)
	logs := []domain.ActivityLog{
		contactLog("2025-03-12", 3), // today
		contactLog("2025-03-10", 2), // this week
		contactLog("2025-03-02", 4), // this calendar month, this CM
		contactLog("2025-02-20", 5), // this CM only
		contactLog("2025-02-10", 7), // previous CM
	}

	p := tracker.ProgressForActivity(logs, domain.ActContacts, now, 16)
	if p.Daily != 3 {
		t.Errorf("daily = %d, want 3", p.Daily)
	}
	if p.Weekly != 5 {
		t.Errorf("weekly = %d, want 5", p.Weekly)
	}
	if p.Monthly != 9 {
		t.Errorf("monthly = %d, want 9", p.Monthly)
	}
	if p.CommercialMonthly != 14 {
		t.Errorf("commercial monthly = %d, want 14", p.CommercialMonthly)
	}
}

func TestTotalsForRangeInclusive(t *testing.T) {
	logs := []domain.ActivityLog{
		contactLog("2025-03-09", 1),
		contactLog("2025-03-10", 2),
		contactLog("2025-03-11", 4),
		contactLog("2025-03-12", 8),
	}
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 3, 11, 0, 0, 0, 0, time.Local)
	totals := tracker.TotalsForRange(logs, start, end)
	if totals[domain.ActContacts] != 6 {
		t.Errorf("range total = %d, want 6 (both endpoints included)", totals[domain.ActContacts])
	}
}

func TestTotalAllTime(t *testing.T) {
	logs := []domain.ActivityLog{
		contactLog("2025-01-01", 1),
		contactLog("2025-06-30", 2),
	}
	if got := tracker.TotalAllTime(logs, domain.ActContacts); got != 3 {
		t.Errorf("total = %d, want 3", got)
	}
	if got := tracker.TotalAllTime(logs, domain.ActVideosSent); got != 0 {
		t.Errorf("videos total = %d, want 0", got)
	}
}
