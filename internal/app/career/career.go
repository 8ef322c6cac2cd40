// Package career derives the agent's career level and commission earnings
// from the log history. Everything here is pure — levels and rates are
// fixed business rules, the only inputs are logs and profile settings.
package career

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dailycheck-app/dailycheck/internal/app/tracker"
	"github.com/dailycheck-app/dailycheck/internal/domain"
)

// Status computes the career level from cumulative contract counts.
// overrideQualification, when non-empty, replaces the computed level
// outright: no progress bar, the level is manually fixed.
func Status(logs []domain.ActivityLog, overrideQualification string) domain.CareerStatus {
	totalClients := tracker.TotalAllTime(logs, domain.ActNewContracts)
	totalFamilyUtility := tracker.TotalAllTime(logs, domain.ActNewFamilyUtility)

	status := domain.CareerStatus{
		TotalClients:   totalClients,
		TotalContracts: totalClients, // contracts and clients are synonyms here
	}

	if overrideQualification != "" {
		status.Level = overrideQualification
		status.ManualOverride = true
		status.ProgressPct = 100
		return status
	}

	levels := domain.MetricLevels()
	idx := 0
	for i, lvl := range levels {
		if totalClients >= lvl.MinClients {
			idx = i
		}
	}
	status.Level = levels[idx].Name

	if idx+1 < len(levels) {
		next := levels[idx+1]
		status.Next = &next
		span := next.MinClients - levels[idx].MinClients
		status.ProgressPct = clampPct(float64(totalClients-levels[idx].MinClients) / float64(span) * 100)
	} else {
		status.ProgressPct = 100 // top of the ladder
	}

	// Family Pro override: agents still in the two lowest tiers who have
	// built a family-utility book of 10+ jump to the special tier. The
	// metric-based progress toward the next regular tier is kept.
	if idx <= 1 && totalFamilyUtility >= domain.FamilyProThreshold {
		status.Level = domain.FamilyProLevel
		status.SpecialStatus = true
	}

	return status
}

// Earnings sums commissions over the logs matched by the date predicate.
// Only subtype-attributed contracts earn: a day with counts but no
// contract details contributes zero, even if new_contracts is positive
// (legacy undetailed entries are invisible to earnings).
func Earnings(logs []domain.ActivityLog, pred func(time.Time) bool, status domain.CommissionStatus, table domain.RateTable) decimal.Decimal {
	total := decimal.Zero
	for _, l := range logs {
		day, err := l.Day()
		if err != nil {
			continue
		}
		if !pred(day) {
			continue
		}
		for subtype, count := range l.ContractDetails {
			if count <= 0 {
				continue
			}
			rate := table.Rate(status, subtype)
			total = total.Add(rate.Mul(decimal.NewFromInt(int64(count))))
		}
	}
	return total
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
