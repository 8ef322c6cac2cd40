// Package domain holds the Daily Check core types.
// One ActivityLog per local calendar date; all derived state (progress,
// career, achievements) is recomputed from the log collection.
package domain

import (
	"sort"
	"time"
)

// DateKeyLayout is the canonical log key format. Keys are local calendar
// dates — all period arithmetic uses time.Local, never UTC.
const DateKeyLayout = "2006-01-02"

// ─── Activity Types ─────────────────────────────────────────────────────────

// ActivityType is the closed set of trackable actions.
type ActivityType string

const (
	ActContacts         ActivityType = "contacts"
	ActVideosSent       ActivityType = "videos_sent"
	ActAppointments     ActivityType = "appointments"
	ActNewContracts     ActivityType = "new_contracts"
	ActNewFamilyUtility ActivityType = "new_family_utility"
)

// AllActivities returns the closed activity enum in display order.
func AllActivities() []ActivityType {
	return []ActivityType{
		ActContacts,
		ActVideosSent,
		ActAppointments,
		ActNewContracts,
		ActNewFamilyUtility,
	}
}

// ParseActivity validates an activity name from config, CLI, or API input.
func ParseActivity(s string) (ActivityType, error) {
	for _, a := range AllActivities() {
		if string(a) == s {
			return a, nil
		}
	}
	return "", ErrUnknownActivity
}

// ContractSubtype classifies a new contract for commission purposes.
type ContractSubtype string

const (
	SubtypeGreen ContractSubtype = "GREEN"
	SubtypeLight ContractSubtype = "LIGHT"
)

// ─── Leads ──────────────────────────────────────────────────────────────────

// LeadStatus tracks a captured lead through the pipeline.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadConverted LeadStatus = "converted"
	LeadLost      LeadStatus = "lost"
)

// Lead is optional detail attached to a count increment. A count can exist
// without a lead (anonymous quick-tap entries).
type Lead struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Phone      string       `json:"phone"`
	Note       string       `json:"note"`
	Activity   ActivityType `json:"activity"`
	CapturedAt time.Time    `json:"captured_at"`
	Status     LeadStatus   `json:"status"`
}

// ─── Activity Log ───────────────────────────────────────────────────────────

// ActivityLog is one day's record. Absent count keys mean zero; counts are
// never negative (the mutation transaction clamps at zero).
type ActivityLog struct {
	Date            string                  `json:"date"`
	Counts          map[ActivityType]int    `json:"counts"`
	ContractDetails map[ContractSubtype]int `json:"contract_details,omitempty"`
	Leads           []Lead                  `json:"leads,omitempty"`
}

// Count returns the count for an activity, zero when unset.
func (l ActivityLog) Count(a ActivityType) int {
	return l.Counts[a]
}

// HasActivity reports whether any count is positive.
func (l ActivityLog) HasActivity() bool {
	for _, n := range l.Counts {
		if n > 0 {
			return true
		}
	}
	return false
}

// Day parses the log's date key in the local timezone.
func (l ActivityLog) Day() (time.Time, error) {
	return ParseDateKey(l.Date)
}

// Clone returns a deep copy. Mutation code works on copies only — the log
// collection is replaced wholesale, never spliced in place.
func (l ActivityLog) Clone() ActivityLog {
	out := ActivityLog{Date: l.Date}
	if l.Counts != nil {
		out.Counts = make(map[ActivityType]int, len(l.Counts))
		for k, v := range l.Counts {
			out.Counts[k] = v
		}
	}
	if l.ContractDetails != nil {
		out.ContractDetails = make(map[ContractSubtype]int, len(l.ContractDetails))
		for k, v := range l.ContractDetails {
			out.ContractDetails[k] = v
		}
	}
	if l.Leads != nil {
		out.Leads = append([]Lead(nil), l.Leads...)
	}
	return out
}

// ParseDateKey parses a YYYY-MM-DD key as a local calendar date.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, ErrBadDateKey
	}
	return t, nil
}

// FormatDateKey renders a time as a local YYYY-MM-DD log key.
func FormatDateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// CloneLogs deep-copies a log collection.
func CloneLogs(logs []ActivityLog) []ActivityLog {
	out := make([]ActivityLog, len(logs))
	for i, l := range logs {
		out[i] = l.Clone()
	}
	return out
}

// SortLogsDesc orders logs newest-first by date key. Keys are lexically
// ordered, so string comparison is date comparison.
func SortLogsDesc(logs []ActivityLog) {
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date > logs[j].Date
	})
}

// FindLog returns the index of the log with the given key, -1 if absent.
func FindLog(logs []ActivityLog, dateKey string) int {
	for i := range logs {
		if logs[i].Date == dateKey {
			return i
		}
	}
	return -1
}
