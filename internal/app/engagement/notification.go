package engagement

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/dailycheck-app/dailycheck/internal/domain"
	"github.com/dailycheck-app/dailycheck/internal/infra/metrics"
	"github.com/dailycheck-app/dailycheck/internal/infra/sqlite"
)

// NotificationService is the advisory notification sink. Policy gates:
// a daily cap and local quiet hours. Suppression is silent — the sink has
// no acknowledgement and no backpressure.
type NotificationService struct {
	db     *sqlite.DB
	policy domain.NotificationPolicy
	now    func() time.Time
}

// NewNotificationService creates a sink with the given policy.
func NewNotificationService(db *sqlite.DB, policy domain.NotificationPolicy) *NotificationService {
	return &NotificationService{db: db, policy: policy, now: time.Now}
}

// SetClock overrides the policy clock. Test hook.
func (n *NotificationService) SetClock(now func() time.Time) { n.now = now }

// Notify implements the fire-and-forget sink contract. Policy suppression
// and storage failures are not surfaced to the caller.
func (n *NotificationService) Notify(severity domain.NotificationSeverity, message string) {
	if _, err := n.Create(severity, message); err != nil {
		log.Printf("[notify] drop %q: %v", message, err)
	}
}

// Create records a notification if policy allows it.
// Returns the notification ID (0 if suppressed by policy) and any error.
func (n *NotificationService) Create(severity domain.NotificationSeverity, message string) (int64, error) {
	now := n.now()

	if n.policy.MaxPerDay > 0 {
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		todayCount, err := n.db.NotificationCountSince(midnight)
		if err != nil {
			return 0, err
		}
		if todayCount >= n.policy.MaxPerDay {
			metrics.NotificationsSuppressed.WithLabelValues("daily_limit").Inc()
			return 0, nil
		}
	}

	if n.isQuietHour(now) {
		metrics.NotificationsSuppressed.WithLabelValues("quiet_hours").Inc()
		return 0, nil
	}

	return n.db.InsertNotification(domain.Notification{
		Severity:  severity,
		Message:   message,
		CreatedAt: now,
		Shown:     false,
	})
}

// Pending returns unshown notifications.
func (n *NotificationService) Pending(limit int) ([]domain.Notification, error) {
	return n.db.ListPendingNotifications(limit)
}

// MarkShown marks a notification as shown.
func (n *NotificationService) MarkShown(id int64) error {
	return n.db.MarkNotificationShown(id)
}

// Policy returns the active notification policy.
func (n *NotificationService) Policy() domain.NotificationPolicy {
	return n.policy
}

// isQuietHour returns true if t falls within the policy's quiet window.
func (n *NotificationService) isQuietHour(t time.Time) bool {
	startHour, startMin := parseHHMM(n.policy.QuietStart)
	endHour, endMin := parseHHMM(n.policy.QuietEnd)
	if startHour == endHour && startMin == endMin {
		return false // zero-length window
	}

	timeMinutes := t.Hour()*60 + t.Minute()
	startMinutes := startHour*60 + startMin
	endMinutes := endHour*60 + endMin

	if startMinutes > endMinutes {
		// Wraps midnight: e.g., 22:00 – 08:00
		return timeMinutes >= startMinutes || timeMinutes < endMinutes
	}
	return timeMinutes >= startMinutes && timeMinutes < endMinutes
}

// parseHHMM parses "HH:MM" into hour and minute.
func parseHHMM(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}
