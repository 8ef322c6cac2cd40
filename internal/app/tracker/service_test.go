package tracker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dailycheck-app/dailycheck/internal/app/engagement"
	"github.com/dailycheck-app/dailycheck/internal/app/tracker"
	"github.com/dailycheck-app/dailycheck/internal/domain"
)

type fakeStore struct {
	calls int
	fail  bool
	last  []domain.ActivityLog
}

func (f *fakeStore) ReplaceLogs(ctx context.Context, logs []domain.ActivityLog) error {
	f.calls++
	f.last = logs
	if f.fail {
		return errors.New("disk full")
	}
	return nil
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Notify(severity domain.NotificationSeverity, message string) {
	f.messages = append(f.messages, message)
}

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

const testDate = "2025-03-10"

func newService(t *testing.T, logs []domain.ActivityLog, goals domain.Goals) (*tracker.Service, *fakeStore, *fakeNotifier) {
	t.Helper()
	store := &fakeStore{}
	notify := &fakeNotifier{}
	svc := tracker.New(logs, goals, 16, store, engagement.NewGoalChecker(), nil, notify)
	svc.SetClock(func() time.Time { return testNow })
	return svc, store, notify
}

func TestApplyIncrement(t *testing.T) {
	svc, store, _ := newService(t, nil, domain.Goals{})

	result, err := svc.Apply(context.Background(), []tracker.CountUpdate{
		{Activity: domain.ActContacts, Delta: 3},
	}, testDate)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if result.Log.Count(domain.ActContacts) != 3 {
		t.Errorf("count = %d, want 3", result.Log.Count(domain.ActContacts))
	}
	if store.calls != 1 {
		t.Errorf("store calls = %d, want 1", store.calls)
	}
}

func TestApplyBatchSingleWrite(t *testing.T) {
	svc, store, _ := newService(t, nil, domain.Goals{})

	_, err := svc.Apply(context.Background(), []tracker.CountUpdate{
		{Activity: domain.ActContacts, Delta: 2},
		{Activity: domain.ActVideosSent, Delta: 1},
		{Activity: domain.ActAppointments, Delta: 1},
	}, testDate)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if store.calls != 1 {
		t.Errorf("store calls = %d, want 1 for the whole batch", store.calls)
	}
}

func TestApplyClampsAtZero(t *testing.T) {
	logs := []domain.ActivityLog{{
		Date:   testDate,
		Counts: map[domain.ActivityType]int{domain.ActContacts: 2},
	}}
	svc, _, _ := newService(t, logs, domain.Goals{})

	result, err := svc.Apply(context.Background(), []tracker.CountUpdate{
		{Activity: domain.ActContacts, Delta: -5},
	}, testDate)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := result.Log.Count(domain.ActContacts); got != 0 {
		t.Errorf("count = %d, want clamped 0", got)
	}
}

func TestApplyZeroDeltaIsNoOp(t *testing.T) {
	goals := domain.Goals{Daily: map[domain.ActivityType]int{domain.ActContacts: 3}}
	logs := []domain.ActivityLog{{
		Date: testDate,
		Counts: map[domain.ActivityType]int{
			domain.ActContacts:   3,
			domain.ActVideosSent: 1,
		},
	}}
	svc, store, notify := newService(t, logs, goals)

	result, err := svc.Apply(context.Background(), []tracker.CountUpdate{
		{Activity: domain.ActContacts, Delta: 0},
		{Activity: domain.ActVideosSent, Delta: 0},
	}, testDate)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got := result.Log.Count(domain.ActContacts); got != 3 {
		t.Errorf("contacts = %d, want unchanged 3", got)
	}
	if got := result.Log.Count(domain.ActVideosSent); got != 1 {
		t.Errorf("videos = %d, want unchanged 1", got)
	}
	if len(result.Events) != 0 {
		t.Errorf("events = %+v, want none for zero deltas at the goal", result.Events)
	}
	if len(notify.messages) != 0 {
		t.Errorf("notifications = %v, want none", notify.messages)
	}
	if store.calls != 1 {
		t.Errorf("store calls = %d, want the batch still persisted once", store.calls)
	}
	if got := len(svc.Logs()); got != 1 {
		t.Errorf("collection has %d logs, want 1", got)
	}
}

func TestApplyValidation(t *testing.T) {
	svc, store, _ := newService(t, nil, domain.Goals{})
	ctx := context.Background()

	if _, err := svc.Apply(ctx, nil, testDate); !errors.Is(err, domain.ErrEmptyUpdates) {
		t.Errorf("empty updates err = %v", err)
	}
	if _, err := svc.Apply(ctx, []tracker.CountUpdate{{Activity: domain.ActContacts, Delta: 1}}, "10/03/2025"); !errors.Is(err, domain.ErrBadDateKey) {
		t.Errorf("bad date err = %v", err)
	}
	if _, err := svc.Apply(ctx, []tracker.CountUpdate{{Activity: "pushups", Delta: 1}}, testDate); !errors.Is(err, domain.ErrUnknownActivity) {
		t.Errorf("bad activity err = %v", err)
	}
	if store.calls != 0 {
		t.Errorf("store calls = %d, want 0 after rejected input", store.calls)
	}
}

func TestGoalReachedFiresOnce(t *testing.T) {
	goals := domain.Goals{Daily: map[domain.ActivityType]int{domain.ActContacts: 10}}
	logs := []domain.ActivityLog{{
		Date:   testDate,
		Counts: map[domain.ActivityType]int{domain.ActContacts: 9},
	}}
	svc, _, _ := newService(t, logs, goals)
	ctx := context.Background()

	result, err := svc.Apply(ctx, []tracker.CountUpdate{{Activity: domain.ActContacts, Delta: 1}}, testDate)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Events) != 1 {
		t.Fatalf("events = %d, want 1: %+v", len(result.Events), result.Events)
	}
	if result.Events[0].Kind != domain.EventGoalReached {
		t.Errorf("kind = %s, want goal_reached", result.Events[0].Kind)
	}

	// Already above the goal: staying there fires nothing.
	result, err = svc.Apply(ctx, []tracker.CountUpdate{{Activity: domain.ActContacts, Delta: 1}}, testDate)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Events) != 0 {
		t.Errorf("events = %d after re-crossing, want 0", len(result.Events))
	}
}

func TestMilestone50(t *testing.T) {
	goals := domain.Goals{Daily: map[domain.ActivityType]int{domain.ActContacts: 10}}
	logs := []domain.ActivityLog{{
		Date:   testDate,
		Counts: map[domain.ActivityType]int{domain.ActContacts: 4},
	}}
	svc, _, _ := newService(t, logs, goals)

	result, err := svc.Apply(context.Background(), []tracker.CountUpdate{{Activity: domain.ActContacts, Delta: 1}}, testDate)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Events) != 1 || result.Events[0].Kind != domain.EventMilestone50 {
		t.Fatalf("events = %+v, want one milestone_50", result.Events)
	}
}

func TestBigJumpFiresOnlyGoalReached(t *testing.T) {
	goals := domain.Goals{Daily: map[domain.ActivityType]int{domain.ActContacts: 10}}
	svc, _, _ := newService(t, nil, goals)

	// 0 → 12 crosses 50%, 80%, and the goal in one step.
	result, err := svc.Apply(context.Background(), []tracker.CountUpdate{{Activity: domain.ActContacts, Delta: 12}}, testDate)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Events) != 1 || result.Events[0].Kind != domain.EventGoalReached {
		t.Fatalf("events = %+v, want only goal_reached", result.Events)
	}
}

func TestDecrementFiresNoEvents(t *testing.T) {
	goals := domain.Goals{Daily: map[domain.ActivityType]int{domain.ActContacts: 10}}
	logs := []domain.ActivityLog{{
		Date:   testDate,
		Counts: map[domain.ActivityType]int{domain.ActContacts: 15},
	}}
	svc, _, _ := newService(t, logs, goals)

	result, err := svc.Apply(context.Background(), []tracker.CountUpdate{{Activity: domain.ActContacts, Delta: -10}}, testDate)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Events) != 0 {
		t.Errorf("events = %+v, want none for a decrement", result.Events)
	}
}

func TestContractSubtypeDetails(t *testing.T) {
	svc, _, _ := newService(t, nil, domain.Goals{})

	result, err := svc.Apply(context.Background(), []tracker.CountUpdate{
		{Activity: domain.ActNewContracts, Delta: 2, Subtype: domain.SubtypeGreen},
		{Activity: domain.ActNewContracts, Delta: 1, Subtype: domain.SubtypeLight},
	}, testDate)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := result.Log.Count(domain.ActNewContracts); got != 3 {
		t.Errorf("contracts = %d, want 3", got)
	}
	if got := result.Log.ContractDetails[domain.SubtypeGreen]; got != 2 {
		t.Errorf("green = %d, want 2", got)
	}
	if got := result.Log.ContractDetails[domain.SubtypeLight]; got != 1 {
		t.Errorf("light = %d, want 1", got)
	}
}

func TestStoreFailureKeepsMemoryState(t *testing.T) {
	store := &fakeStore{fail: true}
	notify := &fakeNotifier{}
	svc := tracker.New(nil, domain.Goals{}, 16, store, engagement.NewGoalChecker(), nil, notify)
	svc.SetClock(func() time.Time { return testNow })

	result, err := svc.Apply(context.Background(), []tracker.CountUpdate{
		{Activity: domain.ActContacts, Delta: 1},
	}, testDate)
	if err != nil {
		t.Fatalf("Apply returned error despite in-memory success: %v", err)
	}
	if result.Log.Count(domain.ActContacts) != 1 {
		t.Errorf("result count = %d, want 1", result.Log.Count(domain.ActContacts))
	}

	// The failed write must not roll back the collection.
	log, err := svc.DayLog(testDate)
	if err != nil {
		t.Fatalf("DayLog: %v", err)
	}
	if log.Count(domain.ActContacts) != 1 {
		t.Errorf("in-memory count = %d, want 1", log.Count(domain.ActContacts))
	}
	if len(notify.messages) == 0 {
		t.Error("expected an advisory notification about the failed save")
	}
}

func TestDeleteRange(t *testing.T) {
	logs := []domain.ActivityLog{
		{Date: "2025-03-08", Counts: map[domain.ActivityType]int{domain.ActContacts: 1}},
		{Date: "2025-03-09", Counts: map[domain.ActivityType]int{domain.ActContacts: 1}},
		{Date: "2025-03-10", Counts: map[domain.ActivityType]int{domain.ActContacts: 1}},
	}
	svc, store, _ := newService(t, logs, domain.Goals{})

	removed, err := svc.DeleteRange(context.Background(), "2025-03-08", "2025-03-09")
	if err != nil {
		t.Fatalf("DeleteRange: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if store.calls != 1 {
		t.Errorf("store calls = %d, want 1", store.calls)
	}
	if got := len(svc.Logs()); got != 1 {
		t.Errorf("remaining logs = %d, want 1", got)
	}

	// Empty range is a no-op, not an error.
	removed, err = svc.DeleteRange(context.Background(), "2020-01-01", "2020-01-31")
	if err != nil {
		t.Fatalf("DeleteRange: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
	if store.calls != 1 {
		t.Errorf("store calls = %d after no-op, want still 1", store.calls)
	}
}

func TestCaptureLead(t *testing.T) {
	svc, _, _ := newService(t, nil, domain.Goals{})
	ctx := context.Background()

	result, err := svc.CaptureLead(ctx, testDate, domain.Lead{
		Name:     "Maria Rossi",
		Activity: domain.ActContacts,
	})
	if err != nil {
		t.Fatalf("CaptureLead: %v", err)
	}
	if result.Log.Count(domain.ActContacts) != 1 {
		t.Errorf("contacts = %d, want 1 (lead implies an increment)", result.Log.Count(domain.ActContacts))
	}
	if len(result.Log.Leads) != 1 {
		t.Fatalf("leads = %d, want 1", len(result.Log.Leads))
	}
	lead := result.Log.Leads[0]
	if lead.ID == "" {
		t.Error("lead ID not assigned")
	}
	if lead.Status != domain.LeadNew {
		t.Errorf("status = %s, want new", lead.Status)
	}

	if err := svc.UpdateLeadStatus(ctx, testDate, lead.ID, domain.LeadContacted); err != nil {
		t.Fatalf("UpdateLeadStatus: %v", err)
	}
	log, _ := svc.DayLog(testDate)
	if log.Leads[0].Status != domain.LeadContacted {
		t.Errorf("status = %s, want contacted", log.Leads[0].Status)
	}

	if err := svc.UpdateLeadStatus(ctx, testDate, "missing-id", domain.LeadLost); !errors.Is(err, domain.ErrLeadNotFound) {
		t.Errorf("missing lead err = %v", err)
	}
	if err := svc.UpdateLeadStatus(ctx, testDate, lead.ID, "archived"); !errors.Is(err, domain.ErrUnknownLeadStatus) {
		t.Errorf("bad status err = %v", err)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	svc, _, _ := newService(t, nil, domain.Goals{})

	_, err := svc.Apply(context.Background(), []tracker.CountUpdate{
		{Activity: domain.ActContacts, Delta: 1},
	}, testDate)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	logs := svc.Logs()
	logs[0].Counts[domain.ActContacts] = 999

	fresh, _ := svc.DayLog(testDate)
	if fresh.Count(domain.ActContacts) != 1 {
		t.Error("mutating a returned copy leaked into service state")
	}
}
