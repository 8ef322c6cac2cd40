// Package share encodes progress summaries as portable share codes.
// A code is base64(JSON) of a summary snapshot; there is no signature,
// codes are bragging rights, not credentials.
package share

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/dailycheck-app/dailycheck/internal/app/period"
	"github.com/dailycheck-app/dailycheck/internal/app/tracker"
	"github.com/dailycheck-app/dailycheck/internal/domain"
)

// Summary is the payload behind a share code.
type Summary struct {
	GeneratedAt    string         `json:"generated_at"`
	Level          string         `json:"level"`
	CurrentStreak  int            `json:"current_streak"`
	MonthContacts  int            `json:"month_contacts"`
	MonthVideos    int            `json:"month_videos"`
	MonthContracts int            `json:"month_contracts"`
	Achievements   []SharedBadge  `json:"achievements"`
	Totals         map[string]int `json:"totals"`
}

// SharedBadge is a badge reference inside a summary.
type SharedBadge struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Build assembles a summary from the current state.
func Build(logs []domain.ActivityLog, status domain.CareerStatus, currentStreak int, unlocked []domain.AchievementDef, now time.Time, startDay int) Summary {
	inCM := func(d time.Time) bool {
		return period.InCommercialMonth(d, now, startDay)
	}

	badges := make([]SharedBadge, 0, len(unlocked))
	for _, def := range unlocked {
		badges = append(badges, SharedBadge{ID: def.ID, Name: def.Name, Icon: def.Icon})
	}

	totals := make(map[string]int, len(domain.AllActivities()))
	for _, a := range domain.AllActivities() {
		totals[string(a)] = tracker.TotalAllTime(logs, a)
	}

	return Summary{
		GeneratedAt:    domain.FormatDateKey(now),
		Level:          status.Level,
		CurrentStreak:  currentStreak,
		MonthContacts:  tracker.SumActivity(logs, domain.ActContacts, inCM),
		MonthVideos:    tracker.SumActivity(logs, domain.ActVideosSent, inCM),
		MonthContracts: tracker.SumActivity(logs, domain.ActNewContracts, inCM),
		Achievements:   badges,
		Totals:         totals,
	}
}

// Encode turns a summary into a share code.
func Encode(s Summary) (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode parses a share code back into a summary. Any malformed input,
// base64 or JSON level, maps to ErrBadShareCode.
func Decode(code string) (Summary, error) {
	raw, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return Summary{}, domain.ErrBadShareCode
	}
	var s Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return Summary{}, domain.ErrBadShareCode
	}
	return s, nil
}
