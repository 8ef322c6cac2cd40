package tracker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dailycheck-app/dailycheck/internal/domain"
	"github.com/dailycheck-app/dailycheck/internal/infra/metrics"
)

// CountUpdate is one {activity, delta, optional subtype} change in a batch.
type CountUpdate struct {
	Activity domain.ActivityType    `json:"activity"`
	Delta    int                    `json:"delta"`
	Subtype  domain.ContractSubtype `json:"subtype,omitempty"`
}

// TxResult reports what one mutation transaction did.
type TxResult struct {
	DateKey  string                  `json:"date_key"`
	Log      domain.ActivityLog      `json:"log"`
	Events   []domain.GoalEvent      `json:"events,omitempty"`
	Unlocked []domain.AchievementDef `json:"unlocked,omitempty"`
}

// ─── Collaborator contracts ─────────────────────────────────────────────────

// Store persists the whole log collection. Called exactly once per
// completed transaction — a compound update is one persisted transition.
type Store interface {
	ReplaceLogs(ctx context.Context, logs []domain.ActivityLog) error
}

// Syncer pushes the collection to a remote replica. Fire-and-forget: the
// transaction neither waits for it nor rolls back on its failure.
type Syncer interface {
	Push(ctx context.Context, logs []domain.ActivityLog) error
}

// GoalEvaluator decides which threshold events an update crossed.
type GoalEvaluator interface {
	Evaluate(before, after domain.Progress, goals domain.Goals, activity domain.ActivityType) []domain.GoalEvent
}

// AchievementChecker re-scans the full history for newly earned badges and
// records which unlocks the user has already been told about.
type AchievementChecker interface {
	CheckAndUnlock(logs []domain.ActivityLog, goals domain.Goals, now time.Time) ([]domain.AchievementDef, error)
	MarkNotified(id string) error
}

// Notifier is the advisory notification sink. No acknowledgement.
type Notifier interface {
	Notify(severity domain.NotificationSeverity, message string)
}

// ─── Service ────────────────────────────────────────────────────────────────

// Service owns the in-memory log collection and serializes every mutation.
// Reads hand out copies; the collection reference is swapped after a
// transaction, never mutated in place.
type Service struct {
	mu       sync.Mutex
	logs     []domain.ActivityLog
	goals    domain.Goals
	startDay int

	store    Store
	syncer   Syncer // nil = local-only mode
	goalEval GoalEvaluator
	achieve  AchievementChecker
	notify   Notifier

	now func() time.Time
}

// New creates the tracker service around an initial collection loaded from
// the store.
func New(logs []domain.ActivityLog, goals domain.Goals, startDay int, store Store, goalEval GoalEvaluator, achieve AchievementChecker, notify Notifier) *Service {
	sorted := domain.CloneLogs(logs)
	domain.SortLogsDesc(sorted)
	return &Service{
		logs:     sorted,
		goals:    goals,
		startDay: startDay,
		store:    store,
		goalEval: goalEval,
		achieve:  achieve,
		notify:   notify,
		now:      time.Now,
	}
}

// SetSyncer enables the optional cloud replica.
func (s *Service) SetSyncer(sy Syncer) { s.syncer = sy }

// SetClock overrides the transaction clock. Test hook.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Logs returns a copy of the collection, newest first.
func (s *Service) Logs() []domain.ActivityLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneLogs(s.logs)
}

// DayLog returns the log for one date key.
func (s *Service) DayLog(dateKey string) (domain.ActivityLog, error) {
	if _, err := domain.ParseDateKey(dateKey); err != nil {
		return domain.ActivityLog{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := domain.FindLog(s.logs, dateKey); i >= 0 {
		return s.logs[i].Clone(), nil
	}
	return domain.ActivityLog{}, domain.ErrLogNotFound
}

// Goals returns the configured goals.
func (s *Service) Goals() domain.Goals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goals
}

// SetGoals replaces the goal configuration.
func (s *Service) SetGoals(g domain.Goals) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = g
}

// StartDay returns the commercial month start day.
func (s *Service) StartDay() int { return s.startDay }

// Progress computes one activity's period sums against now.
func (s *Service) Progress(activity domain.ActivityType) domain.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ProgressForActivity(s.logs, activity, s.now(), s.startDay)
}

// Apply runs one mutation transaction: snapshot, clamped batch update,
// re-aggregate, goal and achievement evaluation, then a single store write.
func (s *Service) Apply(ctx context.Context, updates []CountUpdate, dateKey string) (TxResult, error) {
	return s.apply(ctx, updates, dateKey, nil)
}

// CaptureLead attaches a lead record to a count increment for the given
// activity. The increment and the lead land in the same transaction.
func (s *Service) CaptureLead(ctx context.Context, dateKey string, lead domain.Lead) (TxResult, error) {
	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.Status == "" {
		lead.Status = domain.LeadNew
	}
	lead.CapturedAt = s.now()

	updates := []CountUpdate{{Activity: lead.Activity, Delta: 1}}
	return s.apply(ctx, updates, dateKey, &lead)
}

func (s *Service) apply(ctx context.Context, updates []CountUpdate, dateKey string, lead *domain.Lead) (TxResult, error) {
	if len(updates) == 0 {
		return TxResult{}, domain.ErrEmptyUpdates
	}
	if _, err := domain.ParseDateKey(dateKey); err != nil {
		return TxResult{}, err
	}
	for _, u := range updates {
		if _, err := domain.ParseActivity(string(u.Activity)); err != nil {
			return TxResult{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	now := s.now()

	// Step 1: "before" progress per distinct activity, against current logs.
	before := make(map[domain.ActivityType]domain.Progress)
	for _, u := range updates {
		if _, ok := before[u.Activity]; !ok {
			before[u.Activity] = ProgressForActivity(s.logs, u.Activity, now, s.startDay)
		}
	}

	// Steps 2–3: copy-on-write batch update with zero-floor clamping.
	newLogs := domain.CloneLogs(s.logs)
	idx := domain.FindLog(newLogs, dateKey)
	if idx < 0 {
		newLogs = append(newLogs, domain.ActivityLog{
			Date:   dateKey,
			Counts: make(map[domain.ActivityType]int),
		})
		idx = len(newLogs) - 1
	}
	entry := &newLogs[idx]
	if entry.Counts == nil {
		entry.Counts = make(map[domain.ActivityType]int)
	}
	for _, u := range updates {
		oldCount := entry.Counts[u.Activity]
		newCount := oldCount + u.Delta
		if newCount < 0 {
			metrics.CountsClamped.Inc()
			newCount = 0
		}
		entry.Counts[u.Activity] = newCount

		if u.Subtype != "" {
			if entry.ContractDetails == nil {
				entry.ContractDetails = make(map[domain.ContractSubtype]int)
			}
			detail := entry.ContractDetails[u.Subtype] + u.Delta
			if detail < 0 {
				detail = 0
			}
			entry.ContractDetails[u.Subtype] = detail
		}
	}
	if lead != nil {
		entry.Leads = append(entry.Leads, *lead)
	}

	// Step 4: "after" progress against the new collection.
	after := make(map[domain.ActivityType]domain.Progress)
	for a := range before {
		after[a] = ProgressForActivity(newLogs, a, now, s.startDay)
	}

	// Step 5: goal events for positive deltas, then a full achievement rescan.
	var events []domain.GoalEvent
	seen := make(map[domain.ActivityType]bool)
	for _, u := range updates {
		if u.Delta <= 0 || seen[u.Activity] {
			continue
		}
		seen[u.Activity] = true
		evs := s.goalEval.Evaluate(before[u.Activity], after[u.Activity], s.goals, u.Activity)
		events = append(events, evs...)
	}
	for _, ev := range events {
		metrics.GoalEvents.WithLabelValues(string(ev.Kind), string(ev.Period)).Inc()
		if s.notify != nil {
			s.notify.Notify(domain.SeveritySuccess, goalEventMessage(ev))
		}
	}

	var unlocked []domain.AchievementDef
	if s.achieve != nil {
		var err error
		unlocked, err = s.achieve.CheckAndUnlock(newLogs, s.goals, now)
		if err != nil {
			log.Printf("[tracker] achievement check failed: %v", err)
		}
		for _, def := range unlocked {
			metrics.AchievementsUnlocked.Inc()
			if s.notify != nil {
				s.notify.Notify(domain.SeveritySuccess, "Achievement unlocked: "+def.Name)
				if err := s.achieve.MarkNotified(def.ID); err != nil {
					log.Printf("[tracker] mark achievement notified: %v", err)
				}
			}
		}
	}

	// Step 6: sort and persist the whole batch as one write. The in-memory
	// state advances even if the write fails — accepted inconsistency
	// window for a local-first tool.
	domain.SortLogsDesc(newLogs)
	s.logs = newLogs

	result := TxResult{
		DateKey:  dateKey,
		Log:      newLogs[domain.FindLog(newLogs, dateKey)].Clone(),
		Events:   events,
		Unlocked: unlocked,
	}

	metrics.MutationsApplied.Inc()
	metrics.TxDuration.Observe(time.Since(started).Seconds())

	if err := s.store.ReplaceLogs(ctx, newLogs); err != nil {
		metrics.StoreWriteFailures.Inc()
		log.Printf("[tracker] store write failed (in-memory state kept): %v", err)
		if s.notify != nil {
			s.notify.Notify(domain.SeverityInfo, "Saving failed — changes kept in memory only")
		}
		return result, nil
	}

	s.pushAsync(newLogs)
	return result, nil
}

// UpdateLeadStatus moves a captured lead through the pipeline.
func (s *Service) UpdateLeadStatus(ctx context.Context, dateKey, leadID string, status domain.LeadStatus) error {
	switch status {
	case domain.LeadNew, domain.LeadContacted, domain.LeadConverted, domain.LeadLost:
	default:
		return domain.ErrUnknownLeadStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newLogs := domain.CloneLogs(s.logs)
	idx := domain.FindLog(newLogs, dateKey)
	if idx < 0 {
		return domain.ErrLogNotFound
	}
	found := false
	for i := range newLogs[idx].Leads {
		if newLogs[idx].Leads[i].ID == leadID {
			newLogs[idx].Leads[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return domain.ErrLeadNotFound
	}

	s.logs = newLogs
	if err := s.store.ReplaceLogs(ctx, newLogs); err != nil {
		metrics.StoreWriteFailures.Inc()
		log.Printf("[tracker] store write failed: %v", err)
		return nil
	}
	s.pushAsync(newLogs)
	return nil
}

// DeleteRange removes all logs with dates in [startKey, endKey] inclusive.
// Individual days are never deleted — bulk range removal is the only way out.
func (s *Service) DeleteRange(ctx context.Context, startKey, endKey string) (int, error) {
	if _, err := domain.ParseDateKey(startKey); err != nil {
		return 0, err
	}
	if _, err := domain.ParseDateKey(endKey); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []domain.ActivityLog
	removed := 0
	for _, l := range s.logs {
		if l.Date >= startKey && l.Date <= endKey {
			removed++
			continue
		}
		kept = append(kept, l.Clone())
	}
	if removed == 0 {
		return 0, nil
	}

	s.logs = kept
	if err := s.store.ReplaceLogs(ctx, kept); err != nil {
		metrics.StoreWriteFailures.Inc()
		log.Printf("[tracker] store write failed: %v", err)
		return removed, nil
	}
	s.pushAsync(kept)
	return removed, nil
}

// pushAsync replicates to the cloud syncer without blocking the caller.
func (s *Service) pushAsync(logs []domain.ActivityLog) {
	if s.syncer == nil {
		return
	}
	snapshot := domain.CloneLogs(logs)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := s.syncer.Push(ctx, snapshot); err != nil {
			metrics.SyncFailures.Inc()
			log.Printf("[tracker] cloud sync push failed: %v", err)
			return
		}
		metrics.SyncPushes.Inc()
	}()
}

func goalEventMessage(ev domain.GoalEvent) string {
	label := activityLabel(ev.Activity)
	switch ev.Kind {
	case domain.EventGoalReached:
		return label + ": " + string(ev.Period) + " goal reached!"
	case domain.EventMilestone80:
		return label + ": 80% of the " + string(ev.Period) + " goal"
	case domain.EventMilestone50:
		return label + ": halfway to the " + string(ev.Period) + " goal"
	}
	return label
}

func activityLabel(a domain.ActivityType) string {
	switch a {
	case domain.ActContacts:
		return "Contacts"
	case domain.ActVideosSent:
		return "Videos sent"
	case domain.ActAppointments:
		return "Appointments"
	case domain.ActNewContracts:
		return "New contracts"
	case domain.ActNewFamilyUtility:
		return "Family utility"
	}
	return string(a)
}
