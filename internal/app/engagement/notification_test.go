package engagement

import (
	"testing"
	"time"

	"github.com/dailycheck-app/dailycheck/internal/domain"
)

func fixedClock(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, 3, 10, hour, minute, 0, 0, time.Local)
	}
}

func TestCreateStoresNotification(t *testing.T) {
	svc := NewNotificationService(testDB(t), domain.NotificationPolicy{MaxPerDay: 10})
	svc.SetClock(fixedClock(12, 0))

	id, err := svc.Create(domain.SeveritySuccess, "Daily goal reached!")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == 0 {
		t.Fatal("id = 0, want stored notification")
	}

	pending, err := svc.Pending(10)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Message != "Daily goal reached!" {
		t.Fatalf("pending = %+v", pending)
	}

	if err := svc.MarkShown(id); err != nil {
		t.Fatalf("MarkShown: %v", err)
	}
	pending, _ = svc.Pending(10)
	if len(pending) != 0 {
		t.Errorf("pending after shown = %d, want 0", len(pending))
	}
}

func TestDailyCap(t *testing.T) {
	svc := NewNotificationService(testDB(t), domain.NotificationPolicy{MaxPerDay: 2})
	svc.SetClock(fixedClock(12, 0))

	for i := 0; i < 2; i++ {
		if id, err := svc.Create(domain.SeverityInfo, "msg"); err != nil || id == 0 {
			t.Fatalf("notification %d: id=%d err=%v", i, id, err)
		}
	}

	id, err := svc.Create(domain.SeverityInfo, "over the cap")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != 0 {
		t.Errorf("id = %d, want 0 (suppressed by daily cap)", id)
	}
}

func TestQuietHours(t *testing.T) {
	policy := domain.NotificationPolicy{MaxPerDay: 10, QuietStart: "22:00", QuietEnd: "08:00"}

	cases := []struct {
		name       string
		hour       int
		suppressed bool
	}{
		{"midday", 12, false},
		{"late evening", 23, true},
		{"early morning", 7, true},
		{"just after quiet end", 8, false},
		{"just before quiet start", 21, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewNotificationService(testDB(t), policy)
			svc.SetClock(fixedClock(tc.hour, 30))

			id, err := svc.Create(domain.SeverityInfo, "msg")
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if tc.suppressed && id != 0 {
				t.Errorf("id = %d, want suppressed", id)
			}
			if !tc.suppressed && id == 0 {
				t.Error("suppressed outside quiet hours")
			}
		})
	}
}

func TestNoQuietWindow(t *testing.T) {
	svc := NewNotificationService(testDB(t), domain.NotificationPolicy{MaxPerDay: 10})
	svc.SetClock(fixedClock(3, 0))

	id, err := svc.Create(domain.SeverityInfo, "msg")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == 0 {
		t.Error("suppressed with no quiet window configured")
	}
}
